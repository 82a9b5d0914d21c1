package fdsolve

import (
	"math/bits"
	"strings"
)

// bitsetDomain is a fixed bit-vector representation over [base, base+n-1],
// one bit per value, used for dense domains that have developed interior
// holes but remain small enough that bulk operations (GAC filtering,
// intersection) benefit from word-parallel bit ops. Grounded directly on
// the teacher's BitSet (pkg/minikanren/fd.go: words []uint64,
// bits.TrailingZeros64 iteration) and BitSetDomain (pkg/minikanren/domain.go),
// generalized from a fixed 1-indexed domain to an arbitrary [base, base+n)
// window so it can back any int64 sub-range, not just 1..maxValue.
type bitsetDomain struct {
	base  int64
	n     int
	words []uint64
}

func newBitsetDomain(lo, hi int64) bitsetDomain {
	n := int(hi - lo + 1)
	d := bitsetDomain{base: lo, n: n, words: make([]uint64, (n+63)/64)}
	for i := 0; i < n; i++ {
		d.words[i/64] |= 1 << uint(i%64)
	}
	return d
}

func (d bitsetDomain) idx(v int64) (int, uint, bool) {
	off := v - d.base
	if off < 0 || off >= int64(d.n) {
		return 0, 0, false
	}
	return int(off) / 64, uint(off) % 64, true
}

func (d bitsetDomain) Contains(v int64) bool {
	i, off, ok := d.idx(v)
	if !ok {
		return false
	}
	return (d.words[i]>>off)&1 == 1
}

func (d bitsetDomain) Size() int {
	cnt := 0
	for _, w := range d.words {
		cnt += bits.OnesCount64(w)
	}
	return cnt
}

func (d bitsetDomain) IsEmpty() bool { return d.Size() == 0 }

func (d bitsetDomain) IsSingleton() bool { return d.Size() == 1 }

func (d bitsetDomain) SingletonValue() int64 {
	for i, w := range d.words {
		if w != 0 {
			return d.base + int64(i*64+bits.TrailingZeros64(w))
		}
	}
	return d.base
}

func (d bitsetDomain) Min() int64 {
	for i, w := range d.words {
		if w != 0 {
			return d.base + int64(i*64+bits.TrailingZeros64(w))
		}
	}
	return d.base
}

func (d bitsetDomain) Max() int64 {
	for i := len(d.words) - 1; i >= 0; i-- {
		if d.words[i] != 0 {
			return d.base + int64(i*64+63-bits.LeadingZeros64(d.words[i]))
		}
	}
	return d.base
}

func (d bitsetDomain) clone() bitsetDomain {
	words := make([]uint64, len(d.words))
	copy(words, d.words)
	return bitsetDomain{base: d.base, n: d.n, words: words}
}

func (d bitsetDomain) Remove(v int64) IntDomain {
	i, off, ok := d.idx(v)
	if !ok || (d.words[i]>>off)&1 == 0 {
		return d
	}
	nd := d.clone()
	nd.words[i] &^= 1 << off
	return collapseIfContiguous(nd)
}

func (d bitsetDomain) RemoveBelow(v int64) IntDomain {
	if v <= d.Min() {
		return d
	}
	nd := d.clone()
	for off := int64(0); off < int64(d.n) && d.base+off < v; off++ {
		nd.words[off/64] &^= 1 << uint(off%64)
	}
	return collapseIfContiguous(nd)
}

func (d bitsetDomain) RemoveAbove(v int64) IntDomain {
	if v >= d.Max() {
		return d
	}
	nd := d.clone()
	for off := int64(0); off < int64(d.n); off++ {
		if d.base+off > v {
			nd.words[off/64] &^= 1 << uint(off%64)
		}
	}
	return collapseIfContiguous(nd)
}

func (d bitsetDomain) Fix(v int64) IntDomain {
	return rangeDomain{lo: v, hi: v}
}

func (d bitsetDomain) ForEach(f func(int64)) {
	for i, w := range d.words {
		for w != 0 {
			lsb := w & -w
			off := bits.TrailingZeros64(w)
			f(d.base + int64(i*64+off))
			w &^= lsb
		}
	}
}

func (d bitsetDomain) Clone() IntDomain { return d.clone() }

func (d bitsetDomain) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	d.ForEach(func(v int64) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(itoa64(v))
	})
	sb.WriteByte('}')
	return sb.String()
}

func itoa64(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
