// Package deck implements ActiveDeck: a CardTable wrapped with pairing
// indexes, tag inverted indexes, and a lazily-cached DeckView per difficulty.
// Grounded on original_source/app/native/app_native/src/trivia/{types,mod}.rs.
package deck

import (
	"math"
	"sort"

	"github.com/smilemakc/trivially/internal/domain"
)

// ScalePopularity normalizes every card's popularity in place to roughly
// [0,1] with the enabled-card median at 0.5, per §4.6. Run exactly once per
// deck before it enters an ActiveDeck.
func ScalePopularity(table *domain.CardTable) {
	var enabled []float64
	for _, c := range table.Cards {
		if !c.IsDisabled {
			enabled = append(enabled, c.Popularity)
		}
	}
	if len(enabled) == 0 {
		return
	}
	sort.Float64s(enabled)

	min := enabled[0]
	max := enabled[len(enabled)-1]
	med := median(enabled)

	popRange := max - min
	if popRange < 1e-6 {
		popRange = 1e-6
	}
	relativeMed := (med - min) / popRange

	gamma := 1.0
	if relativeMed > 0 && relativeMed < 1 {
		gamma = -1.0 / math.Log2(relativeMed)
	}

	for i := range table.Cards {
		p := table.Cards[i].Popularity
		base := p - min
		if base < 0 {
			base = 0
		}
		table.Cards[i].Popularity = math.Pow(base, gamma) / math.Pow(popRange, gamma)
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
