package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/tinylang"
)

func catp(s string) *string { return &s }

func placesTable() domain.CardTable {
	return domain.CardTable{
		Cards: []domain.Card{
			{Title: "France", Category: catp("Europe"), Popularity: 0.5},
			{Title: "Japan", Category: catp("Asia"), Popularity: 0.5},
			{Title: "Italy", Category: catp("Europe"), Popularity: 0.5},
			{Title: "Spain", Category: catp("Europe"), Popularity: 0.5},
		},
		TagDefs: []domain.TagDef{
			{Label: "Director", Values: [][]string{{"A"}, {"B"}, {"A"}, {"C"}}},
		},
		Pairings: []domain.Pairing{
			{
				Label: "Couple", IsSymmetric: false,
				Data: []domain.Edge{{Left: 0, Right: 1}},
			},
		},
	}
}

func TestSelectCardFiltersByCategory(t *testing.T) {
	ad := deck.NewActiveDeck(placesTable())
	matches := SelectCard(ad, 0, []CardCond{Category("Europe")}, nil, nil, 10)
	require.Len(t, matches, 3)
	for _, m := range matches {
		assert.Equal(t, "Europe", *ad.Data.Cards[m.Index].Category)
	}
}

func TestSelectCardDropsCardsWithNullStat(t *testing.T) {
	f1 := 1.0
	table := &domain.CardTable{
		Cards:    []domain.Card{{Title: "has"}, {Title: "missing"}},
		StatDefs: []domain.StatDef{{Label: "Pop", Data: domain.StatArray{Kind: domain.StatKindNumber, NumberValues: []*float64{&f1, nil}}}},
	}
	ad := deck.NewActiveDeck(*table)

	left := &domain.CardTable{Cards: []domain.Card{{Title: "x"}}}
	ast, err := tinylang.Parse(`R"Pop"`)
	require.NoError(t, err)
	ie, err := tinylang.Optimize(ast, left, &ad.Data)
	require.NoError(t, err)

	matches := SelectCard(ad, 0, nil, []StatRequest{{Label: "pop", Expr: ie}}, nil, 10)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Index)
}

func TestSelectCardNestedPairing(t *testing.T) {
	ad := deck.NewActiveDeck(placesTable())
	matches := SelectCard(ad, 0, nil, nil, &NestedPairing{Left: 0, Which: 0}, 5)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Index)
	assert.True(t, matches[0].HasEdge)
}

func TestSelectCategoryDistinct(t *testing.T) {
	ad := deck.NewActiveDeck(placesTable())
	cats := SelectCategory(ad, 0, 10)
	assert.ElementsMatch(t, []string{"Europe", "Asia"}, cats)
}

func TestSelectTagEdgeUniform(t *testing.T) {
	ad := deck.NewActiveDeck(placesTable())
	tags := SelectTag(ad, 0, 0, TagEdge(0), 10)
	assert.Equal(t, []string{"A"}, tags)
}

func TestSelectTagNoEdgeExcludesOwnTags(t *testing.T) {
	ad := deck.NewActiveDeck(placesTable())
	tags := SelectTag(ad, 0, 0, TagNoEdge(0), 10)
	assert.NotContains(t, tags, "A")
	assert.ElementsMatch(t, []string{"B", "C"}, tags)
}

func TestSelectStatSugar(t *testing.T) {
	f1, f2 := 10.0, 20.0
	table := &domain.CardTable{
		Cards:    []domain.Card{{Title: "a"}, {Title: "b"}},
		StatDefs: []domain.StatDef{{Label: "Pop", Data: domain.StatArray{Kind: domain.StatKindNumber, NumberValues: []*float64{&f1, &f2}}}},
	}
	ad := deck.NewActiveDeck(*table)

	ast, err := tinylang.Parse(`R"Pop"`)
	require.NoError(t, err)
	ie, err := tinylang.Optimize(ast, &domain.CardTable{Cards: []domain.Card{{Title: "x"}}}, &ad.Data)
	require.NoError(t, err)

	matches := SelectStat(ad, 0, ie, 10)
	require.Len(t, matches, 2)
}
