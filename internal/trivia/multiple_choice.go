package trivia

import (
	"fmt"
	"strings"

	"github.com/smilemakc/trivially/internal/deck"
	"github.com/smilemakc/trivially/internal/domain"
	"github.com/smilemakc/trivially/internal/sampling"
	"github.com/smilemakc/trivially/internal/selector"
	"github.com/smilemakc/trivially/internal/tinylang"
)

func withSubject(template, subject string) string {
	return strings.Replace(template, "{}", subject, 1)
}

// CardStat builds a §4.5 CardStat question: Total candidate cards are
// picked, the last becomes the subject, and every option's question_value
// is that candidate's own title (the thing a player answers about), not its
// evaluated stat. min_true == max_true == 1 is a generation-time invariant,
// checked here rather than at build time.
func CardStat(ad *deck.ActiveDeck, difficulty float64, common MultipleChoiceCommon, category *string, stat *tinylang.IntermediateExpr, questionTemplate string) (Trivia, []TriviaExp, error) {
	if common.MinTrue != 1 || common.MaxTrue != 1 {
		return Trivia{}, nil, domain.ErrNotPlural
	}

	var conds []selector.CardCond
	if category != nil {
		conds = append(conds, selector.Category(*category))
	}
	matches := selector.SelectCard(ad, difficulty, conds, []selector.StatRequest{{Label: "v", Expr: stat}}, nil, int(common.Total))
	if len(matches) < int(common.Total) {
		return Trivia{}, nil, notEnoughData(common.Total)
	}

	subject := matches[len(matches)-1]
	options := make([]TriviaAnswer, len(matches))
	for i, m := range matches {
		v := m.Stats["v"]
		options[i] = TriviaAnswer{
			ID:            uint8(i),
			Answer:        valueToDisplayString(v),
			QuestionValue: tinylang.OwnedString(ad.Data.Cards[m.Index].Title),
		}
	}
	subjectID := uint8(len(matches) - 1)
	var falseIDs []uint8
	for i := range matches[:len(matches)-1] {
		falseIDs = append(falseIDs, uint8(i))
	}

	tv := Trivia{
		Question:          withSubject(questionTemplate, ad.Data.Cards[subject.Index].Title),
		AnswerType:         AnswerSelection,
		MinAnswers:         1,
		MaxAnswers:         1,
		QuestionValueType:  tinylang.TypeString,
		Options:            options,
	}
	return tv, []TriviaExp{All(subjectID), None(falseIDs...)}, nil
}

// CardTag builds a §4.5 CardTag question: subject card with TagOut(which),
// true options are tags it carries, false options are tags it doesn't.
func CardTag(ad *deck.ActiveDeck, difficulty float64, common MultipleChoiceCommon, tagDefIdx int, questionTemplate string) (Trivia, []TriviaExp, error) {
	subjects := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.TagOut(tagDefIdx)}, nil, nil, 1)
	if len(subjects) == 0 {
		return Trivia{}, nil, notEnoughData(1)
	}
	subject := subjects[0].Index

	trueTags := selector.SelectTag(ad, difficulty, tagDefIdx, selector.TagEdge(subject), int(common.MaxTrue))
	if uint8(len(trueTags)) < common.MinTrue {
		return Trivia{}, nil, notEnoughData(common.MinTrue)
	}
	falseTags := selector.SelectTag(ad, difficulty, tagDefIdx, selector.TagNoEdge(subject), int(common.MaxFalse()))
	if uint8(len(falseTags)) < common.MinFalse() {
		return Trivia{}, nil, notEnoughData(common.MinFalse())
	}

	blended, idsTrue, idsFalse := Blend(trueTags, falseTags, int(common.MinTrue), int(common.MinFalse()))
	options := make([]TriviaAnswer, len(blended))
	for i, tagVal := range blended {
		exemplars := sampling.Unweighted(ad.TagIndex[tagDefIdx][tagVal], 2)
		titles := make([]string, len(exemplars))
		for j, ci := range exemplars {
			titles[j] = ad.Data.Cards[ci].Title
		}
		options[i] = TriviaAnswer{ID: uint8(i), Answer: tagVal, QuestionValue: tinylang.OwnedStringArray(titles)}
	}

	tv := Trivia{
		Question:          withSubject(questionTemplate, ad.Data.Cards[subject].Title),
		AnswerType:         AnswerSelection,
		MinAnswers:         minAnswers(common),
		MaxAnswers:         maxAnswers(common),
		QuestionValueType:  tinylang.TypeStringArray,
		Options:            options,
	}
	return tv, multipleChoiceExpectations(idsTrue, idsFalse, common.IsInverted), nil
}

// TagCard builds a §4.5 TagCard question: subject tag, true options are
// cards carrying it, false options are cards that don't.
func TagCard(ad *deck.ActiveDeck, difficulty float64, common MultipleChoiceCommon, tagDefIdx int, questionTemplate string) (Trivia, []TriviaExp, error) {
	subjectCards := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.TagOut(tagDefIdx)}, nil, nil, 1)
	if len(subjectCards) == 0 {
		return Trivia{}, nil, notEnoughData(1)
	}
	subjectTags := selector.SelectTag(ad, difficulty, tagDefIdx, selector.TagEdge(subjectCards[0].Index), 1)
	if len(subjectTags) == 0 {
		return Trivia{}, nil, notEnoughData(1)
	}
	subjectTag := subjectTags[0]

	trueCards := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.Tag(tagDefIdx, subjectTag)}, nil, nil, int(common.MaxTrue))
	if uint8(len(trueCards)) < common.MinTrue {
		return Trivia{}, nil, notEnoughData(common.MinTrue)
	}
	falseCards := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.NoTag(tagDefIdx, subjectTag)}, nil, nil, int(common.MaxFalse()))
	if uint8(len(falseCards)) < common.MinFalse() {
		return Trivia{}, nil, notEnoughData(common.MinFalse())
	}

	blended, idsTrue, idsFalse := Blend(trueCards, falseCards, int(common.MinTrue), int(common.MinFalse()))
	options := make([]TriviaAnswer, len(blended))
	for i, m := range blended {
		options[i] = TriviaAnswer{
			ID:            uint8(i),
			Answer:        ad.Data.Cards[m.Index].Title,
			QuestionValue: tinylang.OwnedStringArray(ad.Data.TagDefs[tagDefIdx].Values[m.Index]),
		}
	}

	tv := Trivia{
		Question:          withSubject(questionTemplate, subjectTag),
		AnswerType:         AnswerSelection,
		MinAnswers:         minAnswers(common),
		MaxAnswers:         maxAnswers(common),
		QuestionValueType:  tinylang.TypeStringArray,
		Options:            options,
	}
	return tv, multipleChoiceExpectations(idsTrue, idsFalse, common.IsInverted), nil
}

type pairEntry struct {
	Left, Right int
	Info        *string
}

// Pairing builds a §4.5 Pairing question. True options are real edges out of
// a set of left cards; false options are card pairs that satisfy the
// predicate but have no edge between them — the corrected behavior of §9's
// first Open Question (the false side explicitly excludes the pairing's own
// edges via NoEdge).
func Pairing(ad *deck.ActiveDeck, difficulty float64, common MultipleChoiceCommon, pairingIdx int, predicate *tinylang.IntermediateExpr, separator, questionTemplate string) (Trivia, []TriviaExp, error) {
	trueLefts := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.EdgeOut(pairingIdx)}, nil, nil, int(common.MaxTrue))
	var trueEntries []pairEntry
	for _, lm := range trueLefts {
		partners := selector.SelectCard(ad, difficulty, nil, nil, &selector.NestedPairing{Left: lm.Index, Which: pairingIdx}, 1)
		if len(partners) == 0 {
			continue
		}
		trueEntries = append(trueEntries, pairEntry{Left: lm.Index, Right: partners[0].Index, Info: partners[0].PairingInfo})
	}
	if uint8(len(trueEntries)) < common.MinTrue {
		return Trivia{}, nil, notEnoughData(common.MinTrue)
	}

	var falseEntries []pairEntry
	for round := 0; round < 2 && len(falseEntries) < int(common.MaxFalse()); round++ {
		remaining := int(common.MaxFalse()) - len(falseEntries)
		lefts := selector.SelectCard(ad, difficulty, []selector.CardCond{selector.ExpressionOut(predicate)}, nil, nil, remaining)
		for _, lm := range lefts {
			left := lm.Index
			rights := selector.SelectCard(ad, difficulty, []selector.CardCond{
				selector.NoEdge(left, pairingIdx),
				selector.Predicate(predicate, &left),
			}, nil, nil, 1)
			if len(rights) == 0 {
				continue
			}
			falseEntries = append(falseEntries, pairEntry{Left: left, Right: rights[0].Index})
			if len(falseEntries) >= int(common.MaxFalse()) {
				break
			}
		}
	}
	if uint8(len(falseEntries)) < common.MinFalse() {
		return Trivia{}, nil, notEnoughData(common.MinFalse())
	}

	blended, idsTrue, idsFalse := Blend(trueEntries, falseEntries, int(common.MinTrue), int(common.MinFalse()))
	options := make([]TriviaAnswer, len(blended))
	for i, e := range blended {
		info := ""
		if e.Info != nil {
			info = *e.Info
		}
		options[i] = TriviaAnswer{
			ID:            uint8(i),
			Answer:        fmt.Sprintf("%s %s %s", ad.Data.Cards[e.Left].Title, separator, ad.Data.Cards[e.Right].Title),
			QuestionValue: tinylang.OwnedString(info),
		}
	}

	tv := Trivia{
		Question:          questionTemplate,
		AnswerType:         AnswerSelection,
		MinAnswers:         minAnswers(common),
		MaxAnswers:         maxAnswers(common),
		QuestionValueType:  tinylang.TypeString,
		Options:            options,
	}
	return tv, multipleChoiceExpectations(idsTrue, idsFalse, common.IsInverted), nil
}
