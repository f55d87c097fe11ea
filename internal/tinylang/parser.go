package tinylang

import (
	"fmt"
	"time"
)

// Parse parses a TinyLang expression, per §4.2's grammar and binding-power
// table. Grounded on tinylang/parser.rs's expr_bp.
func Parse(input string) (*Expression, error) {
	lx, err := newLexer(input)
	if err != nil {
		return nil, err
	}
	e, err := exprBP(lx, 0)
	if err != nil {
		return nil, err
	}
	if lx.peek().Kind != TokEOF {
		return nil, fmt.Errorf("unexpected trailing token %q", lx.peek().Text)
	}
	return e, nil
}

func exprBP(lx *lexer, minBP int) (*Expression, error) {
	lhs, err := parseLHS(lx)
	if err != nil {
		return nil, err
	}

	for {
		tok := lx.peek()
		if tok.Kind == TokEOF || tok.Kind == TokRParen {
			break
		}
		if tok.Kind != TokOp {
			return nil, fmt.Errorf("expected operator, got %q", tok.Text)
		}

		if tok.Text == "?" {
			lBP, _ := postfixBindingPower(tok.Text)
			if lBP < minBP {
				break
			}
			lx.next()
			lhs = unaryExpr(UnBool, lhs)
			continue
		}

		lBP, rBP, ok := infixBindingPower(tok.Text)
		if !ok {
			return nil, fmt.Errorf("unexpected operator %q", tok.Text)
		}
		if lBP < minBP {
			break
		}
		lx.next()
		rhs, err := exprBP(lx, rBP)
		if err != nil {
			return nil, err
		}
		lhs = binaryExpr(opFromText(tok.Text), lhs, rhs)
	}

	return lhs, nil
}

func parseLHS(lx *lexer) (*Expression, error) {
	tok := lx.next()
	switch tok.Kind {
	case TokNumber:
		return numberExpr(tok.Number), nil
	case TokString:
		switch tok.Prefix {
		case 'l':
			return variableExpr(SideLeft, tok.Text), nil
		case 'r':
			return variableExpr(SideRight, tok.Text), nil
		case 'd':
			t, err := time.Parse("2006-01-02", tok.Text)
			if err != nil {
				return nil, fmt.Errorf("invalid date literal %q: %w", tok.Text, err)
			}
			return dateExpr(t), nil
		default:
			return nil, fmt.Errorf("unknown prefix letter %q", tok.Prefix)
		}
	case TokLParen:
		inner, err := exprBP(lx, 0)
		if err != nil {
			return nil, err
		}
		if lx.peek().Kind != TokRParen {
			return nil, fmt.Errorf("expected closing paren")
		}
		lx.next()
		return inner, nil
	case TokOp:
		_, rBP, ok := prefixBindingPower(tok.Text)
		if !ok {
			return nil, fmt.Errorf("unexpected operator %q in prefix position", tok.Text)
		}
		child, err := exprBP(lx, rBP)
		if err != nil {
			return nil, err
		}
		switch tok.Text {
		case "not":
			return unaryExpr(UnNot, child), nil
		case "-":
			return unaryExpr(UnNeg, child), nil
		case "+":
			return child, nil
		}
		return nil, fmt.Errorf("illegal prefix operator %q", tok.Text)
	default:
		return nil, fmt.Errorf("unexpected end of input")
	}
}

func prefixBindingPower(op string) (l, r int, ok bool) {
	switch op {
	case "not", "+", "-":
		return 0, 13, true
	}
	return 0, 0, false
}

func postfixBindingPower(op string) (l int, ok bool) {
	if op == "?" {
		return 15, true
	}
	return 0, false
}

func infixBindingPower(op string) (l, r int, ok bool) {
	switch op {
	case "or":
		return 1, 2, true
	case "and":
		return 3, 4, true
	case "==", "!=", "<", "<=", ">", ">=":
		return 5, 6, true
	case "+", "-", "<->":
		return 7, 8, true
	case "*", "/":
		return 9, 10, true
	case "**":
		return 11, 12, true
	}
	return 0, 0, false
}

func opFromText(s string) BinOp {
	switch s {
	case "==":
		return BinEq
	case "!=":
		return BinNeq
	case "<":
		return BinLt
	case "<=":
		return BinLte
	case ">":
		return BinGt
	case ">=":
		return BinGte
	case "and":
		return BinAnd
	case "or":
		return BinOr
	case "+":
		return BinAdd
	case "-":
		return BinSub
	case "*":
		return BinMul
	case "/":
		return BinDiv
	case "**":
		return BinPow
	case "<->":
		return BinDist
	}
	panic("unreachable: opFromText called with non-infix token " + s)
}
