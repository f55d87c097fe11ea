package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/tinylang"
)

func strp(s string) *string { return &s }

func optimized(t *testing.T, src string, left, right *domain.CardTable) *tinylang.IntermediateExpr {
	t.Helper()
	ast, err := tinylang.Parse(src)
	require.NoError(t, err)
	ie, err := tinylang.Optimize(ast, left, right)
	require.NoError(t, err)
	return ie
}

// TestScenarioS1CardStat mirrors §8 scenario S1.
func TestScenarioS1CardStat(t *testing.T) {
	table := domain.CardTable{
		Cards: []domain.Card{{Title: "France"}, {Title: "Japan"}, {Title: "Italy"}, {Title: "Spain"}},
		StatDefs: []domain.StatDef{{
			Label: "Capital",
			Data: domain.StatArray{
				Kind:         domain.StatKindString,
				StringValues: []*string{strp("Paris"), strp("Tokyo"), strp("Rome"), strp("Madrid")},
			},
		}},
	}
	ad := deck.NewActiveDeck(table)
	stat := optimized(t, `R"Capital"`, &domain.CardTable{Cards: []domain.Card{{Title: "x"}}}, &ad.Data)

	common := MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4, IsInverted: false}
	require.NoError(t, common.Validate())

	tv, exps, err := CardStat(ad, 0, common, nil, stat, "What is the capital of {}?")
	require.NoError(t, err)

	require.Len(t, tv.Options, 4)
	require.Len(t, exps, 2)
	assert.Equal(t, ExpAll, exps[0].Kind)
	assert.Len(t, exps[0].IDs, 1)
	assert.Len(t, exps[1].IDs, 3)

	found := false
	for _, c := range table.Cards {
		if tv.Question == "What is the capital of "+c.Title+"?" {
			found = true
		}
	}
	assert.True(t, found, "question must substitute the subject's title")
}

// TestCardStatRejectsNonPluralCommonAtGenerationTime mirrors §8 scenario S1's
// common block but with min_true/max_true other than 1, which CardStat must
// reject at GetTrivia time rather than at build time.
func TestCardStatRejectsNonPluralCommonAtGenerationTime(t *testing.T) {
	table := domain.CardTable{
		Cards: []domain.Card{{Title: "France"}, {Title: "Japan"}},
		StatDefs: []domain.StatDef{{
			Label: "Capital",
			Data:  domain.StatArray{Kind: domain.StatKindString, StringValues: []*string{strp("Paris"), strp("Tokyo")}},
		}},
	}
	ad := deck.NewActiveDeck(table)
	stat := optimized(t, `R"Capital"`, &domain.CardTable{Cards: []domain.Card{{Title: "x"}}}, &ad.Data)

	common := MultipleChoiceCommon{MinTrue: 2, MaxTrue: 2, Total: 2}
	_, _, err := CardStat(ad, 0, common, nil, stat, "What is the capital of {}?")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotPlural)
}

// TestScenarioS2TagCard mirrors §8 scenario S2.
func TestScenarioS2TagCard(t *testing.T) {
	table := domain.CardTable{
		Cards: []domain.Card{{Title: "The Matrix"}, {Title: "Top Gun"}, {Title: "As Good as It Gets"}, {Title: "A Few Good Men"}},
		TagDefs: []domain.TagDef{{
			Label: "Director",
			Values: [][]string{
				{"Lana Wachowski", "Lilly Wachowski"},
				{"Tony Scott"},
				{"James L. Brooks"},
				{"Rob Reiner"},
			},
		}},
	}
	ad := deck.NewActiveDeck(table)

	common := MultipleChoiceCommon{MinTrue: 1, MaxTrue: 1, Total: 4, IsInverted: false}
	tv, exps, err := TagCard(ad, 0, common, 0, "Which film was directed by {}?")
	require.NoError(t, err)
	require.Len(t, tv.Options, 4)
	require.Len(t, exps, 2)
	assert.Len(t, exps[1].IDs, 3)
}

// TestScenarioS3RankingDesc mirrors §8 scenario S3 (tie handling).
func TestScenarioS3RankingDesc(t *testing.T) {
	f1, f2, f3 := 1200000.0, 800000.0, 1200000.0
	table := domain.CardTable{
		Cards: []domain.Card{{Title: "a"}, {Title: "b"}, {Title: "c"}},
		StatDefs: []domain.StatDef{{
			Label: "Plays",
			Data:  domain.StatArray{Kind: domain.StatKindNumber, NumberValues: []*float64{&f1, &f2, &f3}},
		}},
	}
	ad := deck.NewActiveDeck(table)
	stat := optimized(t, `R"Plays"`, &domain.CardTable{Cards: []domain.Card{{Title: "x"}}}, &ad.Data)

	common := RankingCommon{RankingType: RankDesc, Total: 3}
	tv, exps, err := Card(ad, 0, common, nil, stat, "Sort by plays")
	require.NoError(t, err)
	require.Len(t, tv.Options, 3)
	require.Len(t, exps, 2)
	assert.Equal(t, ExpAllPos, exps[0].Kind)
	assert.Len(t, exps[0].IDs, 2)
	assert.Equal(t, 0, exps[0].MinPos)
	assert.Equal(t, ExpAllPos, exps[1].Kind)
	assert.Len(t, exps[1].IDs, 1)
	assert.Equal(t, 2, exps[1].MinPos)
}

// TestScenarioS4RankingMin mirrors §8 scenario S4 (single-answer ranking by
// pairwise geodesic distance).
func TestScenarioS4RankingMin(t *testing.T) {
	table := domain.CardTable{
		Cards: []domain.Card{{Title: "A"}, {Title: "B"}, {Title: "C"}},
		StatDefs: []domain.StatDef{{
			Label: "Loc",
			Data: domain.StatArray{
				Kind: domain.StatKindLatLng,
				LatLngValues: []*domain.LatLng{
					{Lat: 0, Lng: 0},
					{Lat: 0, Lng: 0.001},
					{Lat: 0, Lng: 90},
				},
			},
		}},
	}
	ad := deck.NewActiveDeck(table)
	expr := optimized(t, `L"Loc" <-> R"Loc"`, &ad.Data, &ad.Data)

	common := RankingCommon{RankingType: RankMin, Total: 3}
	tv, exps, err := CardCard(ad, 0, common, expr, "and", "Which pair is closest?")
	require.NoError(t, err)
	require.Len(t, tv.Options, 3)
	require.Len(t, exps, 1)
	assert.Equal(t, ExpAny, exps[0].Kind)
	assert.Len(t, exps[0].IDs, 1)
}

// TestScenarioS5Hangman mirrors §8 scenario S5.
func TestScenarioS5Hangman(t *testing.T) {
	tv, exps, err := buildHangman("Paris", HangmanCommon{Lives: 6}, "Guess the word")
	require.NoError(t, err)
	require.Len(t, tv.Options, 26)
	require.Empty(t, tv.PrefilledAnswers)

	assert.Equal(t, ExpAll, exps[0].Kind)
	assert.Len(t, exps[0].IDs, 5)
	assert.Equal(t, ExpNoneLenient, exps[1].Kind)
	assert.Len(t, exps[1].IDs, 21)
	assert.Equal(t, uint8(6), exps[1].Max)
}

// TestScenarioS6PairingInverted mirrors §8 scenario S6.
func TestScenarioS6PairingInverted(t *testing.T) {
	pronounX, pronounY := "she", "he"
	table := domain.CardTable{
		Cards: []domain.Card{
			{Title: "X"}, {Title: "Y"}, {Title: "Z"}, {Title: "W"}, {Title: "U"}, {Title: "V"},
			{Title: "Fake1"}, {Title: "Fake2"},
		},
		StatDefs: []domain.StatDef{
			{Label: "Pronoun", Data: domain.StatArray{Kind: domain.StatKindString, StringValues: []*string{
				strp(pronounX), strp(pronounY), strp(pronounX), strp(pronounY), strp(pronounX), strp(pronounY),
				strp(pronounX), strp(pronounY),
			}}},
			{Label: "Partner pronoun", Data: domain.StatArray{Kind: domain.StatKindString, StringValues: []*string{
				strp(pronounY), strp(pronounX), strp(pronounY), strp(pronounX), strp(pronounY), strp(pronounX),
				strp(pronounY), strp(pronounX),
			}}},
		},
		Pairings: []domain.Pairing{{
			Label: "Couple", IsSymmetric: false,
			Data: []domain.Edge{{Left: 0, Right: 1}, {Left: 2, Right: 3}, {Left: 4, Right: 5}},
		}},
	}
	ad := deck.NewActiveDeck(table)
	predicate := optimized(t, `L"Pronoun" == R"Partner pronoun" and R"Pronoun" == L"Partner pronoun"`, &ad.Data, &ad.Data)

	common := MultipleChoiceCommon{MinTrue: 3, MaxTrue: 3, Total: 4, IsInverted: true}
	tv, exps, err := Pairing(ad, 0, common, 0, predicate, "+", "Find the fake couple")
	require.NoError(t, err)
	require.Len(t, tv.Options, 4)
	require.Len(t, exps, 2)
	assert.Equal(t, ExpAll, exps[0].Kind)
	assert.Len(t, exps[0].IDs, 1)
	assert.Equal(t, ExpNone, exps[1].Kind)
	assert.Len(t, exps[1].IDs, 3)
}

func TestRankingCommonValidateRejectsTotalOne(t *testing.T) {
	require.Error(t, RankingCommon{RankingType: RankDesc, Total: 1}.Validate())
	require.NoError(t, RankingCommon{RankingType: RankDesc, Total: 2}.Validate())
}

func TestBlendPreservesOrderAndCounts(t *testing.T) {
	trueItems := []string{"t0", "t1", "t2"}
	falseItems := []string{"f0", "f1"}
	blended, idsTrue, idsFalse := Blend(trueItems, falseItems, 2, 1)
	assert.Len(t, blended, 5)
	assert.Len(t, idsTrue, 3)
	assert.Len(t, idsFalse, 2)

	var gotTrue, gotFalse []string
	for _, id := range idsTrue {
		gotTrue = append(gotTrue, blended[id])
	}
	for _, id := range idsFalse {
		gotFalse = append(gotFalse, blended[id])
	}
	assert.Equal(t, trueItems, gotTrue)
	assert.Equal(t, falseItems, gotFalse)
}
