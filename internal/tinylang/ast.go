package tinylang

import (
	"fmt"
	"strconv"
	"time"
)

// Side names which row (Left or Right) a Variable resolves against.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "L"
	}
	return "R"
}

// UnOp is a prefix or postfix unary operator.
type UnOp int

const (
	UnBool UnOp = iota // postfix "?": is-not-null
	UnNot
	UnNeg
)

func (op UnOp) String() string {
	switch op {
	case UnBool:
		return "?"
	case UnNot:
		return "not"
	case UnNeg:
		return "-"
	default:
		return "?unop?"
	}
}

// BinOp is a binary operator.
type BinOp int

const (
	BinEq BinOp = iota
	BinNeq
	BinLt
	BinLte
	BinGt
	BinGte
	BinAnd
	BinOr
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinPow
	BinDist
)

func (op BinOp) String() string {
	switch op {
	case BinEq:
		return "=="
	case BinNeq:
		return "!="
	case BinLt:
		return "<"
	case BinLte:
		return "<="
	case BinGt:
		return ">"
	case BinGte:
		return ">="
	case BinAnd:
		return "and"
	case BinOr:
		return "or"
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinPow:
		return "**"
	case BinDist:
		return "<->"
	default:
		return "?binop?"
	}
}

// ExprKind discriminates the Expression union.
type ExprKind int

const (
	ExprNumber ExprKind = iota
	ExprDate
	ExprVariable
	ExprUnary
	ExprBinary
)

// Expression is the TinyLang AST node. Exactly one set of fields is
// meaningful, per Kind — a closed tagged union.
type Expression struct {
	Kind ExprKind

	Number float64
	Date   time.Time

	Side Side
	Key  string

	UnOp  UnOp
	Child *Expression

	BinOp BinOp
	Lhs   *Expression
	Rhs   *Expression
}

// String pretty-prints the expression so that parsing the result yields an
// equal AST (§8 property 4).
func (e *Expression) String() string {
	switch e.Kind {
	case ExprNumber:
		return formatNumber(e.Number)
	case ExprDate:
		return fmt.Sprintf("D%q", e.Date.Format("2006-01-02"))
	case ExprVariable:
		prefix := "L"
		if e.Side == SideRight {
			prefix = "R"
		}
		return fmt.Sprintf("%s%q", prefix, e.Key)
	case ExprUnary:
		switch e.UnOp {
		case UnBool:
			return fmt.Sprintf("(%s)?", e.Child.String())
		case UnNot:
			return fmt.Sprintf("not %s", e.Child.String())
		case UnNeg:
			return fmt.Sprintf("-%s", e.Child.String())
		}
	case ExprBinary:
		return fmt.Sprintf("(%s %s %s)", e.Lhs.String(), e.BinOp.String(), e.Rhs.String())
	}
	return "?expr?"
}

func formatNumber(f float64) string {
	// Plain decimal notation: the lexer has no exponent syntax.
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func numberExpr(v float64) *Expression   { return &Expression{Kind: ExprNumber, Number: v} }
func dateExpr(v time.Time) *Expression   { return &Expression{Kind: ExprDate, Date: v} }
func variableExpr(side Side, key string) *Expression {
	return &Expression{Kind: ExprVariable, Side: side, Key: key}
}
func unaryExpr(op UnOp, child *Expression) *Expression {
	return &Expression{Kind: ExprUnary, UnOp: op, Child: child}
}
func binaryExpr(op BinOp, lhs, rhs *Expression) *Expression {
	return &Expression{Kind: ExprBinary, BinOp: op, Lhs: lhs, Rhs: rhs}
}
