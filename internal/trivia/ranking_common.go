package trivia

import "fmt"

// RankingCommon is the shared parameter block of §4.5's Ranking variants.
type RankingCommon struct {
	RankingType    RankingType
	Total          uint8
	StatAnnotation *StatAnnotation
}

// Validate checks the invariant named in §4.5: a ranking needs more than one
// candidate to be worth ordering.
func (c RankingCommon) Validate() error {
	if c.Total <= 1 {
		return fmt.Errorf("ranking: total must be > 1 (got %d)", c.Total)
	}
	return nil
}

// IsAsc reports the sort direction: Asc/Min sort ascending, Desc/Max sort
// descending, inverted when the stat is Age-axis annotated (per §4.5).
func (c RankingCommon) IsAsc() bool {
	base := c.RankingType == RankAsc || c.RankingType == RankMin
	if c.StatAnnotation != nil && c.StatAnnotation.AxisMod != nil && *c.StatAnnotation.AxisMod == AxisAge {
		return !base
	}
	return base
}

// IsSingleAnswer reports whether only the top tie-group is graded (Min/Max).
func (c RankingCommon) IsSingleAnswer() bool {
	return c.RankingType == RankMin || c.RankingType == RankMax
}
