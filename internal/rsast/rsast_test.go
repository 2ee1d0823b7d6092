package rsast

import (
	"math"
	"testing"
)

func TestLookupBinOp(t *testing.T) {
	for op := Add; op <= Gt; op++ {
		got, ok := LookupBinOp(op.String())
		if !ok || got != op {
			t.Errorf("LookupBinOp(%q): expected %v, got %v (ok=%v)", op.String(), op, got, ok)
		}
	}
	if _, ok := LookupBinOp("==="); ok {
		t.Errorf("expected no Rust operator for '==='")
	}
}

func TestBinOpProperties(t *testing.T) {
	tests := []struct {
		op       BinOp
		prec     int
		compound bool
	}{
		{Add, PrecSum, true},
		{Rem, PrecProduct, true},
		{Shl, PrecShift, true},
		{BitXor, PrecBitXor, true},
		{And, PrecAnd, false},
		{Or, PrecOr, false},
		{Le, PrecCompare, false},
		{Ne, PrecCompare, false},
	}

	for _, tt := range tests {
		if got := tt.op.Precedence(); got != tt.prec {
			t.Errorf("%v: expected precedence %d, got %d", tt.op, tt.prec, got)
		}
		if got := tt.op.Compound(); got != tt.compound {
			t.Errorf("%v: expected compound %v, got %v", tt.op, tt.compound, got)
		}
	}
	if Shr.AssignText() != ">>=" {
		t.Errorf("expected '>>=', got %q", Shr.AssignText())
	}
	if BinOp(99).String() != "?" || BinOp(99).Compound() {
		t.Errorf("expected out-of-range operator to be invalid")
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		v      int64
		digits string
		neg    bool
	}{
		{0, "0", false},
		{42, "42", false},
		{-1, "1", true},
		{math.MinInt64, "9223372036854775808", true},
	}

	for _, tt := range tests {
		x := Int(tt.v)
		if u, ok := x.(*UnaryExpr); ok {
			if !tt.neg || u.Op != Neg {
				t.Errorf("Int(%d): unexpected negation", tt.v)
			}
			x = u.X
		} else if tt.neg {
			t.Errorf("Int(%d): expected negation", tt.v)
		}
		lit := x.(*LitExpr).Lit.(*LitInt)
		if lit.Digits != tt.digits {
			t.Errorf("Int(%d): expected digits %s, got %s", tt.v, tt.digits, lit.Digits)
		}
	}
}

func TestBlockLike(t *testing.T) {
	if !BlockLike(&WhileExpr{}) || !BlockLike(&IfExpr{}) {
		t.Errorf("expected while and if to be block-like")
	}
	if BlockLike(Ident("x")) || BlockLike(&CallExpr{}) {
		t.Errorf("expected path and call not to be block-like")
	}
}
