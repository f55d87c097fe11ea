package knowledgebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/trivia"
)

func sampleTable() domain.CardTable {
	f1, f2 := 1000.0, 2000.0
	paris, tokyo, rome, madrid := "Paris", "Tokyo", "Rome", "Madrid"
	return domain.CardTable{
		Cards: []domain.Card{
			{Title: "France", Popularity: 1}, {Title: "Japan", Popularity: 1},
			{Title: "Italy", Popularity: 1}, {Title: "Spain", Popularity: 1},
		},
		TagDefs: []domain.TagDef{{
			Label:  "Continent",
			Values: [][]string{{"Europe"}, {"Asia"}, {"Europe"}, {"Europe"}},
		}},
		StatDefs: []domain.StatDef{{
			Label: "Population",
			Data:  domain.StatArray{Kind: domain.StatKindNumber, NumberValues: []*float64{&f1, &f2, nil, &f1}},
		}, {
			Label: "Capital",
			Data:  domain.StatArray{Kind: domain.StatKindString, StringValues: []*string{&paris, &tokyo, &rome, &madrid}},
		}},
		Pairings: []domain.Pairing{{
			Label: "Border", IsSymmetric: true,
			Data: []domain.Edge{{Left: 0, Right: 2}},
		}},
	}
}

func TestCreateCardStatSuccess(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	def, err := b.CreateCardStat(1, nil, `R"Capital"`, "What is the capital of {}?", common)
	require.NoError(t, err)
	assert.Equal(t, KindMCCardStat, def.Kind)

	kb := b.Build()
	require.Len(t, kb.TriviaDefs, 1)
	_, _, err = kb.TriviaDefs[0].GetTrivia(kb, 0)
	require.NoError(t, err)
}

func TestCreateCardStatInvalidDeckID(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	_, err := b.CreateCardStat(99, nil, `R"Population"`, "q", common)
	require.Error(t, err)
	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "InvalidDeckId", be.Kind)
}

func TestCreateCardTagInvalidTagName(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	_, err := b.CreateCardTag(1, "Nonexistent", "q", common)
	require.Error(t, err)
	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "InvalidTagName", be.Kind)
}

func TestCreatePairingInvalidPairingName(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	_, err := b.CreatePairing(1, "Nonexistent", `R"Population" == R"Population"`, "+", "q", common)
	require.Error(t, err)
	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "InvalidPairingName", be.Kind)
}

func TestCreateCardStatTinylangSyntaxError(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	_, err := b.CreateCardStat(1, nil, `R"Population" +`, "q", common)
	require.Error(t, err)
	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "TinylangSyntaxError", be.Kind)
}

func TestCreateCardStatTinylangTypeError(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	_, err := b.CreateCardStat(1, nil, `R"Nonexistent"`, "q", common)
	require.Error(t, err)
	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "TinylangTypeError", be.Kind)
}

func TestCreatePairingPredicateMustBeBool(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	_, err := b.CreatePairing(1, "Border", `R"Population"`, "+", "q", common)
	require.Error(t, err)
	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "TinylangTypeError", be.Kind)
}

func TestCreateRankingCardMustBeNumberOrDate(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.RankingCommon{RankingType: trivia.RankDesc, Total: 3}
	_, err := b.CreateRankingCard(1, nil, `R"Card"`, "q", common)
	require.Error(t, err)
}

func TestCreateHangmanStatMustBeStringOrStringArray(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.HangmanCommon{Lives: 6}
	_, err := b.CreateHangmanStat(1, nil, `R"Population"`, "q", common)
	require.Error(t, err)
}

func TestCreateCardStatInvalidCommonParams(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	bad := trivia.MultipleChoiceCommon{MinTrue: 3, MaxTrue: 1, Total: 4}
	_, err := b.CreateCardStat(1, nil, `R"Population"`, "q", bad)
	require.Error(t, err)
	var be *domain.BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "InvalidParams", be.Kind)
}

func TestLoadTriviaDefsSkipsFailuresAndKeepsSuccesses(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	good := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4}
	specs := []TriviaDefSpec{
		{Label: "ok", Create: func(b *Builder) (*TriviaDef, error) {
			return b.CreateCardStat(1, nil, `R"Capital"`, "q", good)
		}},
		{Label: "bad-deck", Create: func(b *Builder) (*TriviaDef, error) {
			return b.CreateCardStat(404, nil, `R"Population"`, "q", good)
		}},
	}
	callouts := LoadTriviaDefs(b, specs)
	require.Len(t, callouts, 1)
	assert.True(t, callouts[0].IsError)

	kb := b.Build()
	require.Len(t, kb.TriviaDefs, 1)
}

func TestEndToEndPairingRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.AddDeck(1, sampleTable())

	common := trivia.MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 1}
	_, err := b.CreatePairing(1, "Border", `R"Population" == R"Population"`, "+", "Which pair shares a border?", common)
	require.NoError(t, err)

	kb := b.Build()
	tv, exps, err := kb.TriviaDefs[0].GetTrivia(kb, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, tv.Options)
	assert.NotEmpty(t, exps)
}

func TestResolveDeckHelperMissing(t *testing.T) {
	kb := &KnowledgeBase{}
	_, _, err := resolveDeck(kb, 1)
	require.Error(t, err)
}
