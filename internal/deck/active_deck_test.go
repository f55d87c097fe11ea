package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/trivially/internal/domain"
)

func strp(s string) *string { return &s }

func sampleTable() domain.CardTable {
	return domain.CardTable{
		Cards: []domain.Card{
			{Title: "Paris", Popularity: 0.8},
			{Title: "France", Popularity: 0.8},
			{Title: "Berlin", Popularity: 0.2, IsDisabled: true},
			{Title: "Germany", Popularity: 0.5},
		},
		TagDefs: []domain.TagDef{
			{Label: "region", Values: [][]string{{"eu"}, {"eu"}, {"eu"}, {"eu"}}},
		},
		Pairings: []domain.Pairing{
			{
				Label:       "capital-of",
				IsSymmetric: true,
				Data: []domain.Edge{
					{Left: 0, Right: 1, Info: strp("capital")},
					{Left: 2, Right: 3, Info: strp("capital")}, // Berlin disabled, should drop
				},
			},
		},
	}
}

func TestActiveDeckPairingDropsDisabledEndpoints(t *testing.T) {
	ad := NewActiveDeck(sampleTable())
	p := ad.Pairings[0]

	_, ok := p.HasEdge(0, 1)
	assert.True(t, ok)
	_, ok = p.HasEdge(1, 0) // symmetric
	assert.True(t, ok)

	_, ok = p.HasEdge(2, 3)
	assert.False(t, ok, "edge touching a disabled card must be dropped")
}

func TestActiveDeckTagIndex(t *testing.T) {
	ad := NewActiveDeck(sampleTable())
	require.Len(t, ad.TagIndex, 1)
	assert.Equal(t, []int{0, 1, 2, 3}, ad.TagIndex[0]["eu"])
}

func TestActiveDeckWithViewSamplesEnabledOnly(t *testing.T) {
	ad := NewActiveDeck(sampleTable())
	seen := map[int]bool{}
	WithView(ad, 1.0, func(it *DeckViewIter) any {
		for {
			idx, ok := it.Next()
			if !ok {
				break
			}
			seen[idx] = true
		}
		return nil
	})
	assert.False(t, seen[2], "disabled card must never be sampled")
	assert.Len(t, seen, 3)
}

func TestActiveDeckViewIsCachedAndResetBetweenUses(t *testing.T) {
	ad := NewActiveDeck(sampleTable())

	count := func() int {
		n := 0
		WithView(ad, 2.0, func(it *DeckViewIter) any {
			for {
				_, ok := it.Next()
				if !ok {
					break
				}
				n++
			}
			return nil
		})
		return n
	}

	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count(), "view must be reset and fully resampleable on each WithView call")
}
