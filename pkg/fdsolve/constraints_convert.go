package fdsolve

import "math"

// int2FloatConstraint enforces f == float(i) exactly, per spec §5
// ("int2float / float2int_floor / float2int_ceil / float2int_round: bridge
// constraints between the two domain kinds"). No teacher equivalent
// (gokanlogic is integer-only); bounds propagation is exact in this
// direction since every int is exactly representable at any precision this
// engine supports.
type int2FloatConstraint struct {
	i VarId
	f VarId
}

// NewInt2Float returns a Propagator enforcing f == float(i).
func NewInt2Float(i, f VarId) Propagator { return &int2FloatConstraint{i: i, f: f} }

func (c *int2FloatConstraint) Vars() []VarId               { return []VarId{c.i, c.f} }
func (c *int2FloatConstraint) Name() string                { return "int2float" }
func (c *int2FloatConstraint) Priority() PropagatorPriority { return PriorityBound }

func (c *int2FloatConstraint) Propagate(ctx *Context) error {
	iLo, iHi := boundsOf(ctx, c.i)
	if err := ctx.NarrowFloat(c.f, ctx.vars.FloatDomainOf(c.f).RemoveBelow(iLo.AsFloat())); err != nil {
		return err
	}
	if err := ctx.NarrowFloat(c.f, ctx.vars.FloatDomainOf(c.f).RemoveAbove(iHi.AsFloat())); err != nil {
		return err
	}
	fd := ctx.vars.FloatDomainOf(c.f)
	if err := ctx.NarrowInt(c.i, ctx.vars.IntDomain(c.i).RemoveBelow(int64(math.Ceil(fd.Min())))); err != nil {
		return err
	}
	return ctx.NarrowInt(c.i, ctx.vars.IntDomain(c.i).RemoveAbove(int64(math.Floor(fd.Max()))))
}

// RoundMode selects how float2int rounds a fractional bound.
type RoundMode int

const (
	RoundFloor RoundMode = iota
	RoundCeil
	RoundNearest
)

// float2IntConstraint enforces i == round(f) under the given mode.
type float2IntConstraint struct {
	f    VarId
	i    VarId
	mode RoundMode
}

// NewFloat2Int returns a Propagator enforcing i == round(f, mode).
func NewFloat2Int(f, i VarId, mode RoundMode) Propagator {
	return &float2IntConstraint{f: f, i: i, mode: mode}
}

func (c *float2IntConstraint) Vars() []VarId               { return []VarId{c.f, c.i} }
func (c *float2IntConstraint) Name() string                { return "float2int" }
func (c *float2IntConstraint) Priority() PropagatorPriority { return PriorityBound }

func roundBound(x float64, mode RoundMode) int64 {
	switch mode {
	case RoundCeil:
		return int64(math.Ceil(x))
	case RoundNearest:
		return int64(math.Round(x))
	default:
		return int64(math.Floor(x))
	}
}

func (c *float2IntConstraint) Propagate(ctx *Context) error {
	fd := ctx.vars.FloatDomainOf(c.f)
	lo := roundBound(fd.Min(), c.mode)
	hi := roundBound(fd.Max(), c.mode)
	if err := ctx.NarrowInt(c.i, ctx.vars.IntDomain(c.i).RemoveBelow(lo)); err != nil {
		return err
	}
	if err := ctx.NarrowInt(c.i, ctx.vars.IntDomain(c.i).RemoveAbove(hi)); err != nil {
		return err
	}
	// Backward: f's range can't exceed what rounds into i's current bounds.
	id := ctx.vars.IntDomain(c.i)
	if err := ctx.NarrowFloat(c.f, ctx.vars.FloatDomainOf(c.f).RemoveBelow(float64(id.Min())-1)); err != nil {
		return err
	}
	return ctx.NarrowFloat(c.f, ctx.vars.FloatDomainOf(c.f).RemoveAbove(float64(id.Max())+1))
}
