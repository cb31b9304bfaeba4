package value

import (
	"errors"
	"testing"

	"github.com/sfttech/nyango/ops"
)

func TestIntFiniteArithmetic(t *testing.T) {
	i := NewInt(10)
	if err := i.Apply(NewInt(5), ops.AddAssign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Val != 15 {
		t.Errorf("got %d, want 15", i.Val)
	}
}

func TestIntAddInfinityLeavesItUnchanged(t *testing.T) {
	i := NewInt(IntPosInf)
	if err := i.Apply(NewInt(5), ops.AddAssign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !i.IsPosInf() {
		t.Errorf("expected +inf to stay +inf, got %d", i.Val)
	}
}

func TestIntSameSignSubtractIsUndefined(t *testing.T) {
	i := NewInt(IntPosInf)
	err := i.Apply(NewInt(IntPosInf), ops.SubtractAssign)
	if !errors.Is(err, ErrUndefinedArithmetic) {
		t.Fatalf("expected ErrUndefinedArithmetic for +inf - +inf, got %v", err)
	}
}

func TestIntOppositeSignSubtractIsDefined(t *testing.T) {
	i := NewInt(IntPosInf)
	if err := i.Apply(NewInt(IntNegInf), ops.SubtractAssign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !i.IsPosInf() {
		t.Errorf("expected +inf - -inf to stay +inf, got %d", i.Val)
	}
}

func TestIntMultiplyInfinityByZeroIsUndefined(t *testing.T) {
	i := NewInt(IntPosInf)
	err := i.Apply(NewInt(0), ops.MultiplyAssign)
	if !errors.Is(err, ErrUndefinedArithmetic) {
		t.Fatalf("expected ErrUndefinedArithmetic for +inf * 0, got %v", err)
	}
}

func TestIntMultiplyInfinitySignRule(t *testing.T) {
	i := NewInt(IntPosInf)
	if err := i.Apply(NewInt(-2), ops.MultiplyAssign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !i.IsNegInf() {
		t.Errorf("expected +inf * -2 to be -inf, got %d", i.Val)
	}
}

func TestIntDivideByInfinityYieldsZero(t *testing.T) {
	i := NewInt(42)
	if err := i.Apply(NewInt(IntPosInf), ops.DivideAssign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Val != 0 {
		t.Errorf("expected finite / inf to be 0, got %d", i.Val)
	}
}

func TestIntDivideTwoInfinitiesIsUndefined(t *testing.T) {
	i := NewInt(IntPosInf)
	err := i.Apply(NewInt(IntNegInf), ops.DivideAssign)
	if !errors.Is(err, ErrUndefinedArithmetic) {
		t.Fatalf("expected ErrUndefinedArithmetic, got %v", err)
	}
}

func TestIntAssignAdoptsSourceSign(t *testing.T) {
	i := NewInt(3)
	if err := i.Apply(NewInt(IntNegInf), ops.Assign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !i.IsNegInf() {
		t.Errorf("expected assignment to adopt -inf, got %d", i.Val)
	}
}

func TestFloatCrossKindPromotion(t *testing.T) {
	f := NewFloat(1.5)
	if err := f.Apply(NewInt(2), ops.AddAssign); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Val != 3.5 {
		t.Errorf("got %v, want 3.5", f.Val)
	}
}
