package tinylang

import "math"

// selectIndex picks left_idx or right_idx according to side.
func selectIndex(side Side, leftIdx, rightIdx int) int {
	if side == SideLeft {
		return leftIdx
	}
	return rightIdx
}

// GetValue evaluates the expression at (leftIdx, rightIdx), returning
// (value, true) or (zero, false) for null, per §4.3's null-propagation and
// short-circuit rules.
func (e *IntermediateExpr) GetValue(leftIdx, rightIdx int) (Value, bool) {
	switch e.Kind {
	case INumber:
		return NumberValue(e.Number), true
	case IDate:
		return DateValue(e.Date), true
	case IVariable:
		idx := selectIndex(e.Side, leftIdx, rightIdx)
		switch e.VarType {
		case TypeNumber:
			v := e.NumberSlice[idx]
			if v == nil {
				return Value{}, false
			}
			return NumberValue(*v), true
		case TypeDate:
			v := e.DateSlice[idx]
			if v == nil {
				return Value{}, false
			}
			return DateValue(*v), true
		case TypeString:
			v := e.StringSlice[idx]
			if v == nil {
				return Value{}, false
			}
			return StringValue(*v), true
		case TypeLatLng:
			v := e.LatLngSlice[idx]
			if v == nil {
				return Value{}, false
			}
			return LatLngValue(*v), true
		}
		return Value{}, false
	case IUnary:
		return e.getUnaryValue(leftIdx, rightIdx)
	case IBinary:
		return e.getBinaryValue(leftIdx, rightIdx)
	}
	return Value{}, false
}

func (e *IntermediateExpr) getUnaryValue(leftIdx, rightIdx int) (Value, bool) {
	switch e.UnOp {
	case UnBool:
		_, ok := e.Child.GetValue(leftIdx, rightIdx)
		return BoolValue(ok), true
	case UnNot:
		cv, ok := e.Child.GetValue(leftIdx, rightIdx)
		if !ok {
			return Value{}, false
		}
		return BoolValue(!cv.Bool), true
	case UnNeg:
		cv, ok := e.Child.GetValue(leftIdx, rightIdx)
		if !ok {
			return Value{}, false
		}
		return NumberValue(-cv.Number), true
	}
	return Value{}, false
}

func (e *IntermediateExpr) getBinaryValue(leftIdx, rightIdx int) (Value, bool) {
	if e.BinOp == BinAnd || e.BinOp == BinOr {
		lv, ok := e.Lhs.GetValue(leftIdx, rightIdx)
		if !ok {
			return Value{}, false
		}
		if e.BinOp == BinAnd && !lv.Bool {
			return BoolValue(false), true
		}
		if e.BinOp == BinOr && lv.Bool {
			return BoolValue(true), true
		}
		rv, ok := e.Rhs.GetValue(leftIdx, rightIdx)
		if !ok {
			return Value{}, false
		}
		return BoolValue(rv.Bool), true
	}

	lv, ok := e.Lhs.GetValue(leftIdx, rightIdx)
	if !ok {
		return Value{}, false
	}
	rv, ok := e.Rhs.GetValue(leftIdx, rightIdx)
	if !ok {
		return Value{}, false
	}

	switch e.BinOp {
	case BinEq:
		return BoolValue(valuesEqual(lv, rv)), true
	case BinNeq:
		return BoolValue(!valuesEqual(lv, rv)), true
	case BinLt:
		return BoolValue(compareOrdered(lv, rv) < 0), true
	case BinLte:
		return BoolValue(compareOrdered(lv, rv) <= 0), true
	case BinGt:
		return BoolValue(compareOrdered(lv, rv) > 0), true
	case BinGte:
		return BoolValue(compareOrdered(lv, rv) >= 0), true
	case BinAdd:
		return NumberValue(lv.Number + rv.Number), true
	case BinSub:
		if lv.Type == TypeDate {
			diffMS := float64(lv.Date.UnixMilli() - rv.Date.UnixMilli())
			return NumberValue(diffMS / 86_400_000.0), true
		}
		return NumberValue(lv.Number - rv.Number), true
	case BinMul:
		return NumberValue(lv.Number * rv.Number), true
	case BinDiv:
		return NumberValue(lv.Number / rv.Number), true
	case BinPow:
		return NumberValue(math.Pow(lv.Number, rv.Number)), true
	case BinDist:
		return NumberValue(lambertDistanceKm(lv.LatLng, rv.LatLng)), true
	}
	return Value{}, false
}

func valuesEqual(a, b Value) bool {
	switch a.Type {
	case TypeBool:
		return a.Bool == b.Bool
	case TypeNumber:
		return a.Number == b.Number
	case TypeDate:
		return a.Date.Equal(b.Date)
	case TypeString:
		return a.Str == b.Str
	case TypeLatLng:
		return a.LatLng == b.LatLng
	}
	return false
}

// compareOrdered returns -1, 0, or 1. Only called for Number/Number or
// Date/Date operands, enforced at optimize time.
func compareOrdered(a, b Value) int {
	if a.Type == TypeDate {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	}
	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	default:
		return 0
	}
}

// HasVars structurally checks that every variable referencing the given
// side(s) resolves to a non-null cell at the corresponding index, without
// evaluating operators. A nil index for a side means "don't constrain that
// side" — variables on that side are treated as vacuously satisfied, per the
// selector engine's ExpressionOut/ExpressionIn use (only one side's index is
// known at that point). Grounded on tinylang/interpreter.rs's has_vars.
func (e *IntermediateExpr) HasVars(leftIdx, rightIdx *int) bool {
	switch e.Kind {
	case INumber, IDate:
		return true
	case IVariable:
		var idx *int
		if e.Side == SideLeft {
			idx = leftIdx
		} else {
			idx = rightIdx
		}
		if idx == nil {
			return true
		}
		switch e.VarType {
		case TypeNumber:
			return e.NumberSlice[*idx] != nil
		case TypeDate:
			return e.DateSlice[*idx] != nil
		case TypeString:
			return e.StringSlice[*idx] != nil
		case TypeLatLng:
			return e.LatLngSlice[*idx] != nil
		}
		return false
	case IUnary:
		return e.Child.HasVars(leftIdx, rightIdx)
	case IBinary:
		return e.Lhs.HasVars(leftIdx, rightIdx) && e.Rhs.HasVars(leftIdx, rightIdx)
	}
	return true
}

const (
	earthFlattening = 1.0 / 298.257223563
	earthRadiusKm   = 6378.137
)

func hav(theta float64) float64 {
	s := math.Sin(theta / 2)
	return s * s
}

// lambertDistanceKm computes Lambert's formula for geodesic distance on the
// WGS-84 ellipsoid, returning kilometers. Grounded verbatim on
// tinylang/interpreter.rs's dist().
func lambertDistanceKm(a, b LatLng) float64 {
	lat1, lon1 := degToRad(a.Lat), degToRad(a.Lng)
	lat2, lon2 := degToRad(b.Lat), degToRad(b.Lng)

	f := earthFlattening
	b1 := math.Atan((1 - f) * math.Tan(lat1))
	b2 := math.Atan((1 - f) * math.Tan(lat2))

	central := 2 * math.Asin(math.Sqrt(hav(b2-b1)+hav(lon2-lon1)*(1-hav(b2-b1)-hav(lat1+lat2))))
	if central == 0 {
		return 0
	}

	p := (b1 + b2) / 2
	q := (b2 - b1) / 2

	sinP, cosP := math.Sin(p), math.Cos(p)
	sinQ, cosQ := math.Sin(q), math.Cos(q)

	x := (central - math.Sin(central)) * (sinP * sinP) * (cosQ * cosQ) / (math.Cos(central/2) * math.Cos(central/2))
	y := (central + math.Sin(central)) * (sinQ * sinQ) * (cosP * cosP) / (math.Sin(central/2) * math.Sin(central/2))

	return earthRadiusKm * (central - f/2*(x+y))
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
