package trivia

import (
	"strings"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/selector"
	"github.com/smilemakc/trivially/internal/tinylang"
)

// HangmanCard builds a §4.5 Hangman question from a card's title.
func HangmanCard(ad *deck.ActiveDeck, difficulty float64, common HangmanCommon, category *string, questionTemplate string) (Trivia, []TriviaExp, error) {
	var conds []selector.CardCond
	if category != nil {
		conds = append(conds, selector.Category(*category))
	}
	matches := selector.SelectCard(ad, difficulty, conds, nil, nil, 1)
	if len(matches) == 0 {
		return Trivia{}, nil, notEnoughData(1)
	}
	return buildHangman(ad.Data.Cards[matches[0].Index].Title, common, questionTemplate)
}

// HangmanStat builds a §4.5 Hangman question from a string-valued stat.
func HangmanStat(ad *deck.ActiveDeck, difficulty float64, common HangmanCommon, category *string, stat *tinylang.IntermediateExpr, questionTemplate string) (Trivia, []TriviaExp, error) {
	var conds []selector.CardCond
	if category != nil {
		conds = append(conds, selector.Category(*category))
	}
	matches := selector.SelectCard(ad, difficulty, conds, []selector.StatRequest{{Label: "v", Expr: stat}}, nil, 1)
	if len(matches) == 0 {
		return Trivia{}, nil, notEnoughData(1)
	}
	return buildHangman(valueToDisplayString(matches[0].Stats["v"]), common, questionTemplate)
}

// buildHangman expands answer into the fixed 26 ASCII-uppercase-letter
// option set plus one prefilled option per distinct character of the
// uppercased answer outside A-Z (accented letters included), per §4.5 and §9's second Open Question (the behavior is
// preserved as-is, not normalized).
func buildHangman(answer string, common HangmanCommon, questionTemplate string) (Trivia, []TriviaExp, error) {
	upper := strings.ToUpper(answer)
	runes := []rune(upper)

	var letterPositions [26][]int
	otherPositions := map[rune][]int{}
	var otherOrder []rune

	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			letterPositions[r-'A'] = append(letterPositions[r-'A'], i)
			continue
		}
		if _, seen := otherPositions[r]; !seen {
			otherOrder = append(otherOrder, r)
		}
		otherPositions[r] = append(otherPositions[r], i)
	}

	options := make([]TriviaAnswer, 26)
	var idsWithPositions, idsWithoutPositions []uint8
	for i := 0; i < 26; i++ {
		options[i] = TriviaAnswer{
			ID:            uint8(i),
			Answer:        string(rune('A' + i)),
			QuestionValue: tinylang.OwnedIntArray(toInt64s(letterPositions[i])),
		}
		if len(letterPositions[i]) > 0 {
			idsWithPositions = append(idsWithPositions, uint8(i))
		} else {
			idsWithoutPositions = append(idsWithoutPositions, uint8(i))
		}
	}

	prefilled := make([]TriviaAnswer, len(otherOrder))
	nextID := 26
	for i, r := range otherOrder {
		prefilled[i] = TriviaAnswer{
			ID:            uint8(nextID),
			Answer:        string(r),
			QuestionValue: tinylang.OwnedIntArray(toInt64s(otherPositions[r])),
		}
		nextID++
	}

	tv := Trivia{
		Question:          questionTemplate,
		AnswerType:         AnswerHangman,
		MinAnswers:         uint8(len(idsWithPositions)),
		MaxAnswers:         26,
		QuestionValueType:  tinylang.TypeIntArray,
		Options:            options,
		PrefilledAnswers:   prefilled,
	}
	return tv, []TriviaExp{All(idsWithPositions...), NoneLenient(idsWithoutPositions, common.Lives)}, nil
}

func toInt64s(v []int) []int64 {
	out := make([]int64, len(v))
	for i, n := range v {
		out[i] = int64(n)
	}
	return out
}
