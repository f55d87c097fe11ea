// Package trivia implements the eight TriviaDef generators (four
// MultipleChoice variants, two Ranking variants, two Hangman variants) that
// turn an ActiveDeck into a (Trivia, []TriviaExp) pair. Grounded on
// original_source/.../trivia/{multiple_choice,ranking,hangman}.rs.
package trivia

import (
	"strconv"

	"github.com/smilemakc/trivially/internal/tinylang"
)

// AnswerType is the top-level shape a Trivia's answer takes.
type AnswerType int

const (
	AnswerSelection AnswerType = iota
	AnswerHangman
	AnswerRanking
)

// RankingType names the four ranking question flavors; Min/Max are
// single-answer, Asc/Desc are full orderings.
type RankingType int

const (
	RankAsc RankingType = iota
	RankDesc
	RankMin
	RankMax
)

// AxisMod hints a UI how to render a ranking's numeric axis.
type AxisMod int

const (
	AxisAge AxisMod = iota
	AxisDistance
)

// StatAnnotation is an optional UI hint attached to a Trivia.
type StatAnnotation struct {
	AxisMod  *AxisMod
	AxisMin  *float64
	AxisMax  *float64
}

// QValue is the host-serializable payload type carried by a TriviaAnswer's
// question_value; it is the same tagged union TinyLang uses for fully
// materialized values (bool/number/latlng/date/string/intarray/stringarray),
// per §9's "Non-numeric mapping" design note.
type QValue = tinylang.OwnedValue

// TriviaAnswer is one selectable (or prefilled) option.
type TriviaAnswer struct {
	ID            uint8
	Answer        string
	QuestionValue QValue
}

// Trivia is the pure, serializable output of a generator call.
type Trivia struct {
	Question          string
	AnswerType        AnswerType
	RankingType        RankingType // meaningful only when AnswerType == AnswerRanking
	MinAnswers        uint8
	MaxAnswers        uint8
	QuestionValueType tinylang.ExprType
	StatAnnotation    *StatAnnotation
	Options           []TriviaAnswer
	PrefilledAnswers  []TriviaAnswer
}

// TriviaExpKind discriminates the grading-expectation variants of §3.
type TriviaExpKind int

const (
	ExpAll TriviaExpKind = iota
	ExpNone
	ExpNoneLenient
	ExpAny
	ExpAllPos
)

// TriviaExp is one grading expectation paired with a Trivia.
type TriviaExp struct {
	Kind   TriviaExpKind
	IDs    []uint8
	Max    uint8 // ExpNoneLenient
	MinPos int   // ExpAllPos
}

func All(ids ...uint8) TriviaExp          { return TriviaExp{Kind: ExpAll, IDs: ids} }
func None(ids ...uint8) TriviaExp         { return TriviaExp{Kind: ExpNone, IDs: ids} }
func Any(ids ...uint8) TriviaExp          { return TriviaExp{Kind: ExpAny, IDs: ids} }
func NoneLenient(ids []uint8, max uint8) TriviaExp {
	return TriviaExp{Kind: ExpNoneLenient, IDs: ids, Max: max}
}
func AllPos(ids []uint8, minPos int) TriviaExp {
	return TriviaExp{Kind: ExpAllPos, IDs: ids, MinPos: minPos}
}

// multipleChoiceExpectations builds the All/None pair from a blended id
// split, swapping roles when the question is inverted (the user is asked to
// pick the "false" side), per §4.5's blending paragraph.
func multipleChoiceExpectations(idsTrue, idsFalse []uint8, isInverted bool) []TriviaExp {
	if isInverted {
		return []TriviaExp{All(idsFalse...), None(idsTrue...)}
	}
	return []TriviaExp{All(idsTrue...), None(idsFalse...)}
}

func valueToDisplayString(v tinylang.Value) string {
	switch v.Type {
	case tinylang.TypeString:
		return v.Str
	case tinylang.TypeNumber:
		return formatNumber(v.Number)
	case tinylang.TypeDate:
		return v.Date.Format("2006-01-02")
	case tinylang.TypeBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case tinylang.TypeLatLng:
		return formatNumber(v.LatLng.Lat) + "," + formatNumber(v.LatLng.Lng)
	}
	return ""
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
