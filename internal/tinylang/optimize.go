package tinylang

import (
	"fmt"
	"time"

	"github.com/smilemakc/trivially/internal/domain"
)

// IntermediateKind discriminates the optimized IntermediateExpr union.
type IntermediateKind int

const (
	INumber IntermediateKind = iota
	IDate
	IVariable
	IUnary
	IBinary
)

// IntermediateExpr is the result of Optimize: every Variable node has been
// resolved to a column slice, per §4.3. A TriviaDef builds its expressions
// once at create time and reuses them for every GetTrivia call; they share
// the deck's stat slices, so the deck's data must not change afterwards.
type IntermediateExpr struct {
	Kind IntermediateKind

	Number float64
	Date   time.Time

	// Variable fields: VarType names the column's element type; exactly one
	// of the slices is non-nil, selected by VarType.
	VarType     ExprType
	Side        Side
	NumberSlice []*float64
	LatLngSlice []*LatLng
	DateSlice   []*time.Time
	StringSlice []*string

	UnOp  UnOp
	Child *IntermediateExpr

	BinOp BinOp
	Lhs   *IntermediateExpr
	Rhs   *IntermediateExpr
}

// GetType reports the IntermediateExpr's static result type.
func (e *IntermediateExpr) GetType() ExprType {
	switch e.Kind {
	case INumber:
		return TypeNumber
	case IDate:
		return TypeDate
	case IVariable:
		return e.VarType
	case IUnary:
		if e.UnOp == UnNeg {
			return TypeNumber
		}
		return TypeBool
	case IBinary:
		switch e.BinOp {
		case BinEq, BinNeq, BinLt, BinLte, BinGt, BinGte, BinAnd, BinOr:
			return TypeBool
		default:
			return TypeNumber
		}
	}
	return TypeBool
}

// Optimize binds every Variable in ast to a column slice of leftTable or
// rightTable and type-checks the expression, per §4.3's rules. Fails with a
// descriptive error if a referenced stat is missing or the types don't
// compose.
func Optimize(ast *Expression, leftTable, rightTable *domain.CardTable) (*IntermediateExpr, error) {
	switch ast.Kind {
	case ExprNumber:
		return &IntermediateExpr{Kind: INumber, Number: ast.Number}, nil
	case ExprDate:
		return &IntermediateExpr{Kind: IDate, Date: ast.Date}, nil
	case ExprVariable:
		return optimizeVariable(ast.Side, ast.Key, leftTable, rightTable)
	case ExprUnary:
		child, err := Optimize(ast.Child, leftTable, rightTable)
		if err != nil {
			return nil, err
		}
		switch ast.UnOp {
		case UnBool:
			// "?" accepts any type.
		case UnNot:
			if child.GetType() != TypeBool {
				return nil, fmt.Errorf("'not' requires Bool, got %s", child.GetType())
			}
		case UnNeg:
			if child.GetType() != TypeNumber {
				return nil, fmt.Errorf("unary '-' requires Number, got %s", child.GetType())
			}
		}
		return &IntermediateExpr{Kind: IUnary, UnOp: ast.UnOp, Child: child}, nil
	case ExprBinary:
		lhs, err := Optimize(ast.Lhs, leftTable, rightTable)
		if err != nil {
			return nil, err
		}
		rhs, err := Optimize(ast.Rhs, leftTable, rightTable)
		if err != nil {
			return nil, err
		}
		if err := checkBinaryTypes(ast.BinOp, lhs.GetType(), rhs.GetType()); err != nil {
			return nil, err
		}
		return &IntermediateExpr{Kind: IBinary, BinOp: ast.BinOp, Lhs: lhs, Rhs: rhs}, nil
	}
	return nil, fmt.Errorf("unknown expression kind")
}

func checkBinaryTypes(op BinOp, lt, rt ExprType) error {
	switch op {
	case BinEq, BinNeq:
		if lt != rt {
			return fmt.Errorf("%s requires identical operand types, got %s and %s", op, lt, rt)
		}
	case BinLt, BinLte, BinGt, BinGte:
		if !(lt == TypeNumber && rt == TypeNumber) && !(lt == TypeDate && rt == TypeDate) {
			return fmt.Errorf("%s requires both Number or both Date, got %s and %s", op, lt, rt)
		}
	case BinAnd, BinOr:
		if lt != TypeBool || rt != TypeBool {
			return fmt.Errorf("%s requires both Bool, got %s and %s", op, lt, rt)
		}
	case BinAdd, BinMul, BinDiv, BinPow:
		if lt != TypeNumber || rt != TypeNumber {
			return fmt.Errorf("%s requires both Number, got %s and %s", op, lt, rt)
		}
	case BinSub:
		if !(lt == TypeNumber && rt == TypeNumber) && !(lt == TypeDate && rt == TypeDate) {
			return fmt.Errorf("'-' requires (Number,Number) or (Date,Date), got %s and %s", lt, rt)
		}
	case BinDist:
		if lt != TypeLatLng || rt != TypeLatLng {
			return fmt.Errorf("'<->' requires both LatLng, got %s and %s", lt, rt)
		}
	}
	return nil
}

func optimizeVariable(side Side, key string, leftTable, rightTable *domain.CardTable) (*IntermediateExpr, error) {
	table := leftTable
	if side == SideRight {
		table = rightTable
	}

	if key == "Card" {
		strs := make([]*string, len(table.Cards))
		for i := range table.Cards {
			title := table.Cards[i].Title
			strs[i] = &title
		}
		return &IntermediateExpr{Kind: IVariable, VarType: TypeString, Side: side, StringSlice: strs}, nil
	}

	for i := range table.StatDefs {
		sd := &table.StatDefs[i]
		if sd.Label != key {
			continue
		}
		switch sd.Data.Kind {
		case domain.StatKindNumber:
			return &IntermediateExpr{Kind: IVariable, VarType: TypeNumber, Side: side, NumberSlice: sd.Data.NumberValues}, nil
		case domain.StatKindDate:
			return &IntermediateExpr{Kind: IVariable, VarType: TypeDate, Side: side, DateSlice: sd.Data.DateValues}, nil
		case domain.StatKindString:
			return &IntermediateExpr{Kind: IVariable, VarType: TypeString, Side: side, StringSlice: sd.Data.StringValues}, nil
		case domain.StatKindLatLng:
			slice := make([]*LatLng, len(sd.Data.LatLngValues))
			for j, v := range sd.Data.LatLngValues {
				if v != nil {
					slice[j] = &LatLng{Lat: v.Lat, Lng: v.Lng}
				}
			}
			return &IntermediateExpr{Kind: IVariable, VarType: TypeLatLng, Side: side, LatLngSlice: slice}, nil
		}
	}
	return nil, fmt.Errorf("Stat %s not found", key)
}
