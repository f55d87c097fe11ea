package trivia

import (
	"fmt"
	"sort"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/selector"
	"github.com/smilemakc/trivially/internal/tinylang"
)

// rankKey coerces a scalar Number/Date value to a comparable float, dates as
// epoch milliseconds, per §4.5's "dates coerced to epoch-milliseconds".
func rankKey(v tinylang.Value) float64 {
	if v.Type == tinylang.TypeDate {
		return float64(v.Date.UnixMilli())
	}
	return v.Number
}

// rankingExpectations groups candidates already sorted by rankKey into
// tie-groups and emits Any (single-answer) or AllPos (full ordering)
// expectations per §4.5.
func rankingExpectations(sortedKeys []float64, singleAnswer bool) []TriviaExp {
	n := len(sortedKeys)
	if n == 0 {
		return nil
	}
	var groups [][]uint8
	start := 0
	for i := 1; i <= n; i++ {
		if i == n || sortedKeys[i] != sortedKeys[start] {
			ids := make([]uint8, 0, i-start)
			for j := start; j < i; j++ {
				ids = append(ids, uint8(j))
			}
			groups = append(groups, ids)
			start = i
		}
	}
	if singleAnswer {
		return []TriviaExp{Any(groups[0]...)}
	}
	exps := make([]TriviaExp, 0, len(groups))
	pos := 0
	for _, g := range groups {
		exps = append(exps, AllPos(g, pos))
		pos += len(g)
	}
	return exps
}

// Card builds a §4.5 Ranking Card question: Total candidate cards, each
// contributing one non-null scalar stat value, sorted per common.IsAsc().
func Card(ad *deck.ActiveDeck, difficulty float64, common RankingCommon, category *string, stat *tinylang.IntermediateExpr, questionTemplate string) (Trivia, []TriviaExp, error) {
	var conds []selector.CardCond
	if category != nil {
		conds = append(conds, selector.Category(*category))
	}
	matches := selector.SelectCard(ad, difficulty, conds, []selector.StatRequest{{Label: "v", Expr: stat}}, nil, int(common.Total))
	if len(matches) < int(common.Total) {
		return Trivia{}, nil, notEnoughData(common.Total)
	}

	type candidate struct {
		title string
		v     tinylang.Value
		key   float64
	}
	cands := make([]candidate, len(matches))
	for i, m := range matches {
		v := m.Stats["v"]
		cands[i] = candidate{title: ad.Data.Cards[m.Index].Title, v: v, key: rankKey(v)}
	}
	asc := common.IsAsc()
	sort.SliceStable(cands, func(i, j int) bool {
		if asc {
			return cands[i].key < cands[j].key
		}
		return cands[i].key > cands[j].key
	})

	options := make([]TriviaAnswer, len(cands))
	keys := make([]float64, len(cands))
	for i, c := range cands {
		options[i] = TriviaAnswer{ID: uint8(i), Answer: c.title, QuestionValue: tinylang.OwnedFromValue(c.v)}
		keys[i] = c.key
	}

	tv := Trivia{
		Question:          questionTemplate,
		AnswerType:         AnswerRanking,
		RankingType:        common.RankingType,
		MinAnswers:         minRankAnswers(common, len(cands)),
		MaxAnswers:         maxRankAnswers(common, len(cands)),
		QuestionValueType:  rankValueType(cands[0].v),
		StatAnnotation:     common.StatAnnotation,
		Options:            options,
	}
	return tv, rankingExpectations(keys, common.IsSingleAnswer()), nil
}

// CardCard builds a §4.5 Ranking CardCard question: Total distinct card
// pairs, each satisfying ExpressionOut/ExpressionIn of a pairwise stat
// expression. A card is never paired with itself, and (a, b) and (b, a)
// count as the same pair.
func CardCard(ad *deck.ActiveDeck, difficulty float64, common RankingCommon, stat *tinylang.IntermediateExpr, separator, questionTemplate string) (Trivia, []TriviaExp, error) {
	type candidate struct {
		left, right int
		v           tinylang.Value
		key         float64
	}
	var cands []candidate
	seen := map[[2]int]bool{}

	for round := 0; round < 2 && len(cands) < int(common.Total); round++ {
		lefts := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.ExpressionOut(stat)}, nil, nil, int(common.Total))
		for _, lm := range lefts {
			if len(cands) >= int(common.Total) {
				break
			}
			rights := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.ExpressionIn(stat)}, nil, nil, len(ad.Data.Cards))
			for _, rm := range rights {
				pair := [2]int{min(lm.Index, rm.Index), max(lm.Index, rm.Index)}
				if rm.Index == lm.Index || seen[pair] {
					continue
				}
				v, ok := stat.GetValue(lm.Index, rm.Index)
				if !ok {
					continue
				}
				seen[pair] = true
				cands = append(cands, candidate{left: lm.Index, right: rm.Index, v: v, key: rankKey(v)})
				break
			}
		}
	}
	if len(cands) < int(common.Total) {
		return Trivia{}, nil, notEnoughData(common.Total)
	}

	asc := common.IsAsc()
	sort.SliceStable(cands, func(i, j int) bool {
		if asc {
			return cands[i].key < cands[j].key
		}
		return cands[i].key > cands[j].key
	})

	options := make([]TriviaAnswer, len(cands))
	keys := make([]float64, len(cands))
	for i, c := range cands {
		options[i] = TriviaAnswer{
			ID:            uint8(i),
			Answer:        fmt.Sprintf("%s %s %s", ad.Data.Cards[c.left].Title, separator, ad.Data.Cards[c.right].Title),
			QuestionValue: tinylang.OwnedFromValue(c.v),
		}
		keys[i] = c.key
	}

	tv := Trivia{
		Question:          questionTemplate,
		AnswerType:         AnswerRanking,
		RankingType:        common.RankingType,
		MinAnswers:         minRankAnswers(common, len(cands)),
		MaxAnswers:         maxRankAnswers(common, len(cands)),
		QuestionValueType:  rankValueType(cands[0].v),
		StatAnnotation:     common.StatAnnotation,
		Options:            options,
	}
	return tv, rankingExpectations(keys, common.IsSingleAnswer()), nil
}

func rankValueType(v tinylang.Value) tinylang.ExprType { return v.Type }

func minRankAnswers(c RankingCommon, n int) uint8 {
	if c.IsSingleAnswer() {
		return 1
	}
	return uint8(n)
}

func maxRankAnswers(c RankingCommon, n int) uint8 {
	return uint8(n)
}
