package trivia

import (
	"fmt"

	"github.com/smilemakc/trivially/internal/domain"
)

// MultipleChoiceCommon is the shared parameter block of §4.5's MultipleChoice
// variants.
type MultipleChoiceCommon struct {
	MinTrue, MaxTrue, Total uint8
	IsInverted              bool
}

func (c MultipleChoiceCommon) MinFalse() uint8 { return c.Total - c.MaxTrue }
func (c MultipleChoiceCommon) MaxFalse() uint8 { return c.Total - c.MinTrue }

// Validate checks the invariants named in §4.5: total > 0 and
// min_true <= max_true <= total.
func (c MultipleChoiceCommon) Validate() error {
	if c.Total == 0 {
		return fmt.Errorf("multiple choice: total must be > 0")
	}
	if c.MinTrue > c.MaxTrue || c.MaxTrue > c.Total {
		return fmt.Errorf("multiple choice: min_true <= max_true <= total violated (%d, %d, %d)", c.MinTrue, c.MaxTrue, c.Total)
	}
	return nil
}

func minAnswers(c MultipleChoiceCommon) uint8 {
	if c.IsInverted {
		return c.Total - c.MaxTrue
	}
	return c.MinTrue
}

func maxAnswers(c MultipleChoiceCommon) uint8 {
	if c.IsInverted {
		return c.Total - c.MinTrue
	}
	return c.MaxTrue
}

func notEnoughData(need uint8) error { return domain.NewNotEnoughDataError(need) }
