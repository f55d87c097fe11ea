package deck

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/trivially/internal/domain"
)

func TestScalePopularityMedianIsOneHalf(t *testing.T) {
	table := &domain.CardTable{
		Cards: []domain.Card{
			{Title: "a", Popularity: 1},
			{Title: "b", Popularity: 4},
			{Title: "c", Popularity: 9},
			{Title: "d", Popularity: 16},
			{Title: "e", Popularity: 25},
		},
	}
	ScalePopularity(table)

	pops := make([]float64, len(table.Cards))
	for i, c := range table.Cards {
		pops[i] = c.Popularity
	}
	sort.Float64s(pops)
	med := pops[2]
	assert.InDelta(t, 0.5, med, 1e-9)
}

func TestScalePopularityIgnoresDisabledForStats(t *testing.T) {
	table := &domain.CardTable{
		Cards: []domain.Card{
			{Title: "a", Popularity: 1},
			{Title: "b", Popularity: 2},
			{Title: "c", Popularity: 1000, IsDisabled: true},
		},
	}
	ScalePopularity(table)
	assert.GreaterOrEqual(t, table.Cards[0].Popularity, 0.0)
	assert.LessOrEqual(t, table.Cards[1].Popularity, 1.0)
}

func TestScalePopularityDegenerateRange(t *testing.T) {
	table := &domain.CardTable{
		Cards: []domain.Card{
			{Title: "a", Popularity: 5},
			{Title: "b", Popularity: 5},
			{Title: "c", Popularity: 5},
		},
	}
	assert.NotPanics(t, func() { ScalePopularity(table) })
}

func TestScalePopularityEmptyDeck(t *testing.T) {
	table := &domain.CardTable{}
	assert.NotPanics(t, func() { ScalePopularity(table) })
}
