package value

import (
	"fmt"
	"math"

	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/ops"
)

// IntPosInf and IntNegInf are the signed extremes of int64, used as Int's
// positive/negative infinity sentinels.
const (
	IntPosInf int64 = math.MaxInt64
	IntNegInf int64 = math.MinInt64
)

// Int is a 64-bit signed integer value.
type Int struct {
	Val int64
}

func NewInt(v int64) *Int { return &Int{Val: v} }

func (i *Int) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Int}
}

func (i *Int) Copy() Value { return &Int{Val: i.Val} }

func (i *Int) String() string { return fmt.Sprintf("%d", i.Val) }
func (i *Int) Repr() string   { return i.String() }

func (i *Int) Hash() (uint64, error) { return uint64(i.Val), nil }

func (i *Int) Equals(other Value) bool {
	o, ok := other.(*Int)
	return ok && o.Val == i.Val
}

func (i *Int) IsPosInf() bool { return i.Val == IntPosInf }
func (i *Int) IsNegInf() bool { return i.Val == IntNegInf }
func (i *Int) IsInf() bool    { return i.IsPosInf() || i.IsNegInf() }

func (i *Int) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.Int || rhsType.Primitive == basictype.Float {
		return allows(ops.Assign, ops.AddAssign, ops.SubtractAssign, ops.MultiplyAssign, ops.DivideAssign)
	}
	return noOps
}

func (i *Int) Apply(other Value, op ops.Op) error {
	switch o := other.(type) {
	case *Int:
		return i.applyInt(o.Val, op)
	case *Float:
		return i.applyFloat(o.Val, op)
	default:
		return fmt.Errorf("int apply: unsupported rhs kind")
	}
}

func (i *Int) applyInt(rhsVal int64, op ops.Op) error {
	lhsInf := intInfSign(i.Val)
	rhsInf := intInfSign(rhsVal)
	if lhsInf != 0 || rhsInf != 0 {
		res, err := applyXfloat(xfloat{inf: lhsInf, val: float64(i.Val)}, xfloat{inf: rhsInf, val: float64(rhsVal)}, op)
		if err != nil {
			return err
		}
		i.storeResult(res, op)
		return nil
	}

	switch op {
	case ops.Assign:
		i.Val = rhsVal
	case ops.AddAssign:
		i.Val += rhsVal
	case ops.SubtractAssign:
		i.Val -= rhsVal
	case ops.MultiplyAssign:
		i.Val *= rhsVal
	case ops.DivideAssign:
		if rhsVal == 0 {
			return ErrUndefinedArithmetic
		}
		i.Val /= rhsVal
	default:
		return fmt.Errorf("int: unsupported operation %s", op)
	}
	return nil
}

func (i *Int) applyFloat(rhsVal float64, op ops.Op) error {
	lhsInf := intInfSign(i.Val)
	rhsInf := floatInfSign(rhsVal)
	res, err := applyXfloat(xfloat{inf: lhsInf, val: float64(i.Val)}, xfloat{inf: rhsInf, val: rhsVal}, op)
	if err != nil {
		return err
	}
	if res.inf == 0 && op == ops.Assign {
		if res.val != math.Trunc(res.val) || res.val > float64(math.MaxInt64) || res.val < float64(math.MinInt64) {
			return fmt.Errorf("float-to-int assignment out of range")
		}
	}
	i.storeResult(res, op)
	return nil
}

func (i *Int) storeResult(res xfloat, op ops.Op) {
	if res.inf != 0 {
		if res.inf > 0 {
			i.Val = IntPosInf
		} else {
			i.Val = IntNegInf
		}
		return
	}
	i.Val = int64(res.val)
}

// Float is a double-precision floating point value, using IEEE infinity
// directly as its infinity sentinels.
type Float struct {
	Val float64
}

func NewFloat(v float64) *Float { return &Float{Val: v} }

func (f *Float) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Float}
}

func (f *Float) Copy() Value { return &Float{Val: f.Val} }

func (f *Float) String() string { return fmt.Sprintf("%g", f.Val) }
func (f *Float) Repr() string   { return f.String() }

func (f *Float) Hash() (uint64, error) { return math.Float64bits(f.Val), nil }

func (f *Float) Equals(other Value) bool {
	o, ok := other.(*Float)
	return ok && o.Val == f.Val
}

func (f *Float) IsPosInf() bool { return math.IsInf(f.Val, 1) }
func (f *Float) IsNegInf() bool { return math.IsInf(f.Val, -1) }
func (f *Float) IsInf() bool    { return f.IsPosInf() || f.IsNegInf() }

func (f *Float) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.Int || rhsType.Primitive == basictype.Float {
		return allows(ops.Assign, ops.AddAssign, ops.SubtractAssign, ops.MultiplyAssign, ops.DivideAssign)
	}
	return noOps
}

func (f *Float) Apply(other Value, op ops.Op) error {
	var rhsVal float64
	switch o := other.(type) {
	case *Int:
		rhsVal = intToFloat(o.Val)
	case *Float:
		rhsVal = o.Val
	default:
		return fmt.Errorf("float apply: unsupported rhs kind")
	}

	res, err := applyXfloat(xfloat{inf: floatInfSign(f.Val), val: f.Val}, xfloat{inf: floatInfSign(rhsVal), val: rhsVal}, op)
	if err != nil {
		return err
	}
	if res.inf != 0 {
		f.Val = math.Inf(int(res.inf))
		return nil
	}
	f.Val = res.val
	return nil
}

// xfloat is the shared infinity-aware representation applyXfloat computes
// over: inf is -1/0/+1 for negative-infinite/finite/positive-infinite,
// val holds the finite magnitude when inf == 0.
type xfloat struct {
	inf int8
	val float64
}

func intInfSign(v int64) int8 {
	switch v {
	case IntPosInf:
		return 1
	case IntNegInf:
		return -1
	default:
		return 0
	}
}

func floatInfSign(v float64) int8 {
	if math.IsInf(v, 1) {
		return 1
	}
	if math.IsInf(v, -1) {
		return -1
	}
	return 0
}

func intToFloat(v int64) float64 {
	switch v {
	case IntPosInf:
		return math.Inf(1)
	case IntNegInf:
		return math.Inf(-1)
	default:
		return float64(v)
	}
}

// applyXfloat implements the finite infinity-arithmetic table: both sides
// infinite, one side infinite, or neither.
func applyXfloat(lhs, rhs xfloat, op ops.Op) (xfloat, error) {
	switch op {
	case ops.Assign:
		return rhs, nil
	case ops.AddAssign:
		return addXfloat(lhs, rhs)
	case ops.SubtractAssign:
		neg := rhs
		if neg.inf != 0 {
			neg.inf = -neg.inf
		} else {
			neg.val = -neg.val
		}
		return addXfloat(lhs, neg)
	case ops.MultiplyAssign:
		return mulXfloat(lhs, rhs)
	case ops.DivideAssign:
		return divXfloat(lhs, rhs)
	default:
		return xfloat{}, fmt.Errorf("unsupported numeric operation %s", op)
	}
}

func addXfloat(a, b xfloat) (xfloat, error) {
	switch {
	case a.inf != 0 && b.inf != 0:
		if a.inf == b.inf {
			return xfloat{inf: a.inf}, nil
		}
		return xfloat{}, ErrUndefinedArithmetic
	case a.inf != 0:
		return xfloat{inf: a.inf}, nil
	case b.inf != 0:
		return xfloat{inf: b.inf}, nil
	default:
		return xfloat{val: a.val + b.val}, nil
	}
}

func mulXfloat(a, b xfloat) (xfloat, error) {
	switch {
	case a.inf != 0 && b.inf != 0:
		return xfloat{inf: a.inf * b.inf}, nil
	case a.inf != 0:
		if b.val == 0 {
			return xfloat{}, ErrUndefinedArithmetic
		}
		return xfloat{inf: a.inf * signOf(b.val)}, nil
	case b.inf != 0:
		if a.val == 0 {
			return xfloat{}, ErrUndefinedArithmetic
		}
		return xfloat{inf: b.inf * signOf(a.val)}, nil
	default:
		return xfloat{val: a.val * b.val}, nil
	}
}

func divXfloat(a, b xfloat) (xfloat, error) {
	switch {
	case a.inf != 0 && b.inf != 0:
		return xfloat{}, ErrUndefinedArithmetic
	case a.inf != 0:
		// Infinite LHS divided by a finite RHS stays unchanged.
		return xfloat{inf: a.inf}, nil
	case b.inf != 0:
		// Finite LHS divided by an infinite RHS collapses to zero.
		return xfloat{val: 0}, nil
	default:
		if b.val == 0 {
			return xfloat{}, ErrUndefinedArithmetic
		}
		return xfloat{val: a.val / b.val}, nil
	}
}

func signOf(v float64) int8 {
	if v < 0 {
		return -1
	}
	return 1
}
