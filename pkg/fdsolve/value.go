package fdsolve

import "fmt"

// Kind tags the variant held by a Val.
type Kind int

const (
	// KindInt tags an integer-valued Val.
	KindInt Kind = iota
	// KindFloat tags a float-valued Val.
	KindFloat
)

func (k Kind) String() string {
	if k == KindInt {
		return "int"
	}
	return "float"
}

// Val is a tagged union of integer and float values, per spec §3/§4.1.
// Arithmetic is defined between like kinds and widens Int to Float on
// mixed operations. There is no teacher equivalent (gokanlogic is
// integer-only throughout fd.go/fd_arith.go); the arithmetic dispatch
// below is styled on that file's switch-over-operator-kind shape.
type Val struct {
	kind Kind
	i    int64
	f    float64
}

// IntVal constructs an integer Val.
func IntVal(i int64) Val { return Val{kind: KindInt, i: i} }

// FloatVal constructs a float Val.
func FloatVal(f float64) Val { return Val{kind: KindFloat, f: f} }

// Kind returns the Val's variant tag.
func (v Val) Kind() Kind { return v.kind }

// AsInt returns the integer payload. Widens from float by truncation
// toward zero if the Val is a float; callers that care should check Kind first.
func (v Val) AsInt() int64 {
	if v.kind == KindInt {
		return v.i
	}
	return int64(v.f)
}

// AsFloat returns the float payload, widening from int if necessary.
func (v Val) AsFloat() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// Widen returns the Float-kind equivalent of v.
func (v Val) Widen() Val {
	if v.kind == KindFloat {
		return v
	}
	return FloatVal(float64(v.i))
}

// commonKind returns the kind two operands should be evaluated in: Float
// if either operand is a Float, else Int.
func commonKind(a, b Val) Kind {
	if a.kind == KindFloat || b.kind == KindFloat {
		return KindFloat
	}
	return KindInt
}

// Cmp returns -1, 0, or 1 as v is less than, equal to, or greater than o.
// Cross-kind comparisons are by numeric value; same-kind float comparisons
// use a plain total order (ULP-relative equality is a domain-level concept,
// applied by callers that need it via EqualULP).
func (v Val) Cmp(o Val) int {
	if v.kind == KindInt && o.kind == KindInt {
		switch {
		case v.i < o.i:
			return -1
		case v.i > o.i:
			return 1
		default:
			return 0
		}
	}
	a, b := v.AsFloat(), o.AsFloat()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// EqualULP reports whether v and o are equal within an ULP-relative
// tolerance derived from the configured float precision, per spec §3
// ("Equality for floats uses an ULP-relative tolerance derived from solver
// precision"). For Int-kind operands this is exact equality.
func (v Val) EqualULP(o Val, precisionDigits int) bool {
	if v.kind == KindInt && o.kind == KindInt {
		return v.i == o.i
	}
	step := ulpStep(precisionDigits)
	return abs64(v.AsFloat()-o.AsFloat()) <= step/2
}

// Add returns v + o, widening to Float if either operand is a Float.
func (v Val) Add(o Val) Val {
	if commonKind(v, o) == KindInt {
		return IntVal(v.i + o.i)
	}
	return FloatVal(roundOutward(v.AsFloat()+o.AsFloat(), false))
}

// Sub returns v - o.
func (v Val) Sub(o Val) Val {
	if commonKind(v, o) == KindInt {
		return IntVal(v.i - o.i)
	}
	return FloatVal(v.AsFloat() - o.AsFloat())
}

// Mul returns v * o.
func (v Val) Mul(o Val) Val {
	if commonKind(v, o) == KindInt {
		return IntVal(v.i * o.i)
	}
	return FloatVal(v.AsFloat() * o.AsFloat())
}

// Div returns v / o. Integer division rounds toward zero, per spec §4.1.
// Panics if o is zero; callers in the constraint layer must guard divisors
// before calling (the Div propagator removes 0 from the divisor's domain
// before ever evaluating this).
func (v Val) Div(o Val) Val {
	if commonKind(v, o) == KindInt {
		if o.i == 0 {
			panic("fdsolve: integer division by zero")
		}
		return IntVal(v.i / o.i) // Go's / already truncates toward zero
	}
	return FloatVal(v.AsFloat() / o.AsFloat())
}

// Mod returns v mod o following the sign convention of Div (result has the
// same sign as the dividend), per spec §4.1.
func (v Val) Mod(o Val) Val {
	if commonKind(v, o) == KindInt {
		if o.i == 0 {
			panic("fdsolve: integer modulo by zero")
		}
		return IntVal(v.i % o.i) // Go's % matches the truncating-division convention
	}
	af, bf := v.AsFloat(), o.AsFloat()
	q := float64(int64(af / bf))
	return FloatVal(af - q*bf)
}

// Abs returns |v|.
func (v Val) Abs() Val {
	if v.kind == KindInt {
		if v.i < 0 {
			return IntVal(-v.i)
		}
		return v
	}
	return FloatVal(abs64(v.f))
}

// NextUp returns the next representable value strictly greater than v: for
// Int, v+1; for Float, the next value on the precision-digits ULP grid.
func (v Val) NextUp(precisionDigits int) Val {
	if v.kind == KindInt {
		return IntVal(v.i + 1)
	}
	return FloatVal(v.f + ulpStep(precisionDigits))
}

// NextDown returns the next representable value strictly less than v.
func (v Val) NextDown(precisionDigits int) Val {
	if v.kind == KindInt {
		return IntVal(v.i - 1)
	}
	return FloatVal(v.f - ulpStep(precisionDigits))
}

func (v Val) String() string {
	if v.kind == KindInt {
		return fmt.Sprintf("%d", v.i)
	}
	return fmt.Sprintf("%g", v.f)
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// roundOutward is a documentation hook for interval-arithmetic outward
// rounding (§4.1: "lower bound rounds down, upper rounds up"). Plain
// float64 arithmetic is already the best achievable rounding without a
// dedicated rounding-mode FPU control (unavailable from Go), so this is a
// no-op that exists to name the policy at every call site that needs it;
// domain_float.go's quantizeDown/quantizeUp do the actual grid-alignment
// work that makes bounds sound.
func roundOutward(x float64, _ bool) float64 { return x }
