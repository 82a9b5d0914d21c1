package fdsolve

import (
	"fmt"
	"math"
)

// ulpStep returns the grid step for the given decimal precision: 10^-digits.
// All float domain bounds are quantized to multiples of this step, per
// spec §4.1 ("All float domain operations must route through the
// ULP-aligned quantizer; never compare with raw equality").
func ulpStep(precisionDigits int) float64 {
	step := 1.0
	for i := 0; i < precisionDigits; i++ {
		step /= 10
	}
	return step
}

// quantizeDown rounds x down to the nearest multiple of the precision
// grid, used for lower bounds (outward rounding: a lower bound must never
// be rounded up, or a feasible point would be excluded).
func quantizeDown(x float64, precisionDigits int) float64 {
	step := ulpStep(precisionDigits)
	return math.Floor(x/step) * step
}

// quantizeUp rounds x up to the nearest multiple of the precision grid,
// used for upper bounds.
func quantizeUp(x float64, precisionDigits int) float64 {
	step := ulpStep(precisionDigits)
	return math.Ceil(x/step) * step
}

// FloatDomain is a closed interval [lo, hi], both endpoints aligned to the
// configured precision grid. There are no interior removals: the only
// mutations are narrowing the bounds, per spec §3/§4.1. There is no
// teacher equivalent; gokanlogic is integer-only. Modeled as a value type
// (not an interface, unlike IntDomain) since float domains have exactly
// one representation.
type FloatDomain struct {
	lo, hi    float64
	precision int
}

// NewFloatInterval constructs a FloatDomain for [lo, hi], quantizing both
// endpoints to the given precision.
func NewFloatInterval(lo, hi float64, precisionDigits int) FloatDomain {
	return FloatDomain{
		lo:        quantizeDown(lo, precisionDigits),
		hi:        quantizeUp(hi, precisionDigits),
		precision: precisionDigits,
	}
}

func (d FloatDomain) Min() float64    { return d.lo }
func (d FloatDomain) Max() float64    { return d.hi }
func (d FloatDomain) IsEmpty() bool   { return d.lo > d.hi }
func (d FloatDomain) Width() float64  { return d.hi - d.lo }
func (d FloatDomain) Precision() int  { return d.precision }

// IsSingleton reports whether the interval is no wider than half a grid
// step, i.e. holds a single grid point, the point at which the branching strategy (branch.go)
// considers the variable fixed.
func (d FloatDomain) IsSingleton() bool {
	return d.Width() <= ulpStep(d.precision)/2
}

// Midpoint returns the interval's midpoint, quantized to the grid.
func (d FloatDomain) Midpoint() float64 {
	mid := d.lo + d.Width()/2
	return quantizeDown(mid, d.precision)
}

// Contains reports whether v lies within [lo, hi] (with ULP tolerance).
func (d FloatDomain) Contains(v float64) bool {
	return v >= d.lo-ulpStep(d.precision)/2 && v <= d.hi+ulpStep(d.precision)/2
}

// RemoveBelow narrows lo to max(lo, quantizeUp(v)) — quantizing the
// candidate bound up before comparing, per spec §4.1
// ("remove_below/remove_above quantize the candidate value up/down to the
// ULP grid before comparing").
func (d FloatDomain) RemoveBelow(v float64) FloatDomain {
	q := quantizeUp(v, d.precision)
	if q <= d.lo {
		return d
	}
	return FloatDomain{lo: q, hi: d.hi, precision: d.precision}
}

// RemoveAbove narrows hi to min(hi, quantizeDown(v)).
func (d FloatDomain) RemoveAbove(v float64) FloatDomain {
	q := quantizeDown(v, d.precision)
	if q >= d.hi {
		return d
	}
	return FloatDomain{lo: d.lo, hi: q, precision: d.precision}
}

// NextUp returns the value one grid step above v.
func (d FloatDomain) NextUp(v float64) float64 { return v + ulpStep(d.precision) }

// NextDown returns the value one grid step below v.
func (d FloatDomain) NextDown(v float64) float64 { return v - ulpStep(d.precision) }

// Fix narrows the domain to the single grid point at or below v (v rounded
// down to the grid).
func (d FloatDomain) Fix(v float64) FloatDomain {
	q := quantizeDown(v, d.precision)
	return FloatDomain{lo: q, hi: q, precision: d.precision}
}

func (d FloatDomain) String() string {
	if d.IsEmpty() {
		return "{}"
	}
	if d.IsSingleton() {
		return fmt.Sprintf("{%g}", d.lo)
	}
	return fmt.Sprintf("[%g, %g]", d.lo, d.hi)
}
