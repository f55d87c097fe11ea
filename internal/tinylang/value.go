package tinylang

import "time"

// ExprType is TinyLang's type system, per §4.3.
type ExprType int

const (
	TypeBool ExprType = iota
	TypeNumber
	TypeLatLng
	TypeDate
	TypeString
	TypeIntArray
	TypeStringArray
)

func (t ExprType) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeNumber:
		return "Number"
	case TypeLatLng:
		return "LatLng"
	case TypeDate:
		return "Date"
	case TypeString:
		return "String"
	case TypeIntArray:
		return "IntArray"
	case TypeStringArray:
		return "StringArray"
	default:
		return "?type?"
	}
}

// LatLng is a (lat, lng) pair in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Value is a fully evaluated TinyLang value (the original's ExprValue,
// borrowed at the core-evaluator level). Exactly one field is meaningful per
// Type.
type Value struct {
	Type ExprType

	Bool   bool
	Number float64
	LatLng LatLng
	Date   time.Time
	Str    string
}

func BoolValue(b bool) Value     { return Value{Type: TypeBool, Bool: b} }
func NumberValue(n float64) Value { return Value{Type: TypeNumber, Number: n} }
func LatLngValue(v LatLng) Value  { return Value{Type: TypeLatLng, LatLng: v} }
func DateValue(t time.Time) Value { return Value{Type: TypeDate, Date: t} }
func StringValue(s string) Value  { return Value{Type: TypeString, Str: s} }

// OwnedValue is the "owned" value representation exchanged with callers and
// embedded in QValue/Stat instances — unlike Value it additionally carries
// the IntArray/StringArray variants that only appear once a result has left
// the interpreter (e.g. Hangman's per-option character positions), grounded
// on trivia/types.rs's QValue encoder (Bool, Number, LatLng, Date, String,
// IntArray, StringArray).
type OwnedValue struct {
	Type ExprType

	Bool        bool
	Number      float64
	LatLng      LatLng
	Date        time.Time
	Str         string
	IntArray    []int64
	StringArray []string
}

func OwnedFromValue(v Value) OwnedValue {
	return OwnedValue{
		Type:   v.Type,
		Bool:   v.Bool,
		Number: v.Number,
		LatLng: v.LatLng,
		Date:   v.Date,
		Str:    v.Str,
	}
}

func OwnedIntArray(v []int64) OwnedValue {
	return OwnedValue{Type: TypeIntArray, IntArray: v}
}

func OwnedStringArray(v []string) OwnedValue {
	return OwnedValue{Type: TypeStringArray, StringArray: v}
}

func OwnedString(s string) OwnedValue {
	return OwnedValue{Type: TypeString, Str: s}
}
