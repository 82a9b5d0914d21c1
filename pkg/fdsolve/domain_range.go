package fdsolve

import "fmt"

// rangeDomain is the contiguous [lo, hi] representation: the cheap default
// almost every variable lives in until a hole is punched into it. Grounded
// on the teacher's min/max bound-scanning idiom over FDVar/BitSet
// (pkg/minikanren/fd.go), generalized from a fixed 1-indexed small domain
// to an arbitrary int64 interval.
type rangeDomain struct {
	lo, hi int64
}

func (d rangeDomain) Min() int64 { return d.lo }
func (d rangeDomain) Max() int64 { return d.hi }
func (d rangeDomain) Size() int  { return int(d.hi - d.lo + 1) }

func (d rangeDomain) Contains(v int64) bool { return v >= d.lo && v <= d.hi }
func (d rangeDomain) IsEmpty() bool         { return d.lo > d.hi }
func (d rangeDomain) IsSingleton() bool     { return d.lo == d.hi }
func (d rangeDomain) SingletonValue() int64 { return d.lo }

func (d rangeDomain) RemoveBelow(v int64) IntDomain {
	if v <= d.lo {
		return d
	}
	if v > d.hi {
		return rangeDomain{lo: 1, hi: 0} // empty
	}
	return rangeDomain{lo: v, hi: d.hi}
}

func (d rangeDomain) RemoveAbove(v int64) IntDomain {
	if v >= d.hi {
		return d
	}
	if v < d.lo {
		return rangeDomain{lo: 1, hi: 0}
	}
	return rangeDomain{lo: d.lo, hi: v}
}

func (d rangeDomain) Remove(v int64) IntDomain {
	if !d.Contains(v) {
		return d
	}
	switch v {
	case d.lo:
		return rangeDomain{lo: d.lo + 1, hi: d.hi}
	case d.hi:
		return rangeDomain{lo: d.lo, hi: d.hi - 1}
	default:
		return promoteForHole(d.lo, d.hi, v)
	}
}

func (d rangeDomain) Fix(v int64) IntDomain {
	return rangeDomain{lo: v, hi: v}
}

func (d rangeDomain) ForEach(f func(int64)) {
	for v := d.lo; v <= d.hi; v++ {
		f(v)
	}
}

func (d rangeDomain) Clone() IntDomain { return d }

func (d rangeDomain) String() string {
	if d.IsEmpty() {
		return "{}"
	}
	if d.lo == d.hi {
		return fmt.Sprintf("{%d}", d.lo)
	}
	return fmt.Sprintf("[%d..%d]", d.lo, d.hi)
}
