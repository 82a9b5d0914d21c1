package fdsolve

import "time"

// Config holds solver-wide configuration, mirroring the option table in
// the spec's external-interfaces section. It is copied into each Model and
// its Context at construction (see NewModel), matching the teacher's DefaultSolverConfig
// (pkg/minikanren/fd.go) pattern of a plain struct plus a defaulting
// constructor.
type Config struct {
	// TimeoutMS is the wall-clock deadline for a solve call. Default 60000.
	TimeoutMS int64
	// MaxMemoryMB is the memory estimate cap. Default 2048. The solver
	// computes no memory estimate, so nothing checks this value.
	MaxMemoryMB int
	// FloatPrecisionDigits sets the ULP grid granularity for float domains. Default 6.
	FloatPrecisionDigits int
	// UnboundedInferenceFactor scales inferred working bounds for variables
	// declared with extreme bounds. Default 1000.
	UnboundedInferenceFactor int
	// PropagationCapPerNode bounds the number of propagator invocations per
	// search node, guarding against pathological non-termination. Default 100000.
	PropagationCapPerNode int
	// LPEnabled toggles the root-node LP relaxation. Default true.
	LPEnabled bool
	// LPMaxVars, LPMaxConstraints cap the size of the LP problem the bridge
	// will attempt to extract and solve.
	LPMaxVars, LPMaxConstraints int
	// LPTolerance is the simplex feasibility/optimality tolerance. Default 1e-6.
	LPTolerance float64
	// LPMaxIterations caps simplex pivots before giving up and falling back
	// to pure propagation.
	LPMaxIterations int
}

// DefaultConfig returns a Config populated with the spec's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		TimeoutMS:                60_000,
		MaxMemoryMB:              2048,
		FloatPrecisionDigits:     6,
		UnboundedInferenceFactor: 1000,
		PropagationCapPerNode:    100_000,
		LPEnabled:                true,
		LPMaxVars:                500,
		LPMaxConstraints:         500,
		LPTolerance:              1e-6,
		LPMaxIterations:          2000,
	}
}

// Option configures a Config in place. Functional options mirror the
// teacher's OptimizeOption pattern (pkg/minikanren/optimize.go) so
// per-call overrides read the same way search-time overrides do there.
type Option func(*Config)

// WithTimeout sets the wall-clock deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.TimeoutMS = d.Milliseconds() }
}

// WithMaxMemoryMB sets the memory estimate cap.
func WithMaxMemoryMB(mb int) Option {
	return func(c *Config) { c.MaxMemoryMB = mb }
}

// WithFloatPrecision sets the ULP grid granularity, in decimal digits.
func WithFloatPrecision(digits int) Option {
	return func(c *Config) { c.FloatPrecisionDigits = digits }
}

// WithUnboundedInferenceFactor sets the bound-inflation factor used when a
// variable is declared with extreme (unbounded) bounds.
func WithUnboundedInferenceFactor(factor int) Option {
	return func(c *Config) { c.UnboundedInferenceFactor = factor }
}

// WithPropagationCap sets the per-node propagation safety cap.
func WithPropagationCap(cap int) Option {
	return func(c *Config) { c.PropagationCapPerNode = cap }
}

// WithLPEnabled toggles the root-node LP relaxation.
func WithLPEnabled(enabled bool) Option {
	return func(c *Config) { c.LPEnabled = enabled }
}

// WithLPLimits sets the LP problem size ceilings the bridge will respect.
func WithLPLimits(maxVars, maxConstraints int) Option {
	return func(c *Config) {
		c.LPMaxVars = maxVars
		c.LPMaxConstraints = maxConstraints
	}
}

func (c *Config) apply(opts []Option) *Config {
	for _, o := range opts {
		o(c)
	}
	return c
}

// precisionStep returns the ULP-ish step size for the configured decimal
// precision: 10^-digits, the same value as ulpStep(c.FloatPrecisionDigits).
// domain_float.go quantizes with ulpStep directly; nothing calls this method.
func (c *Config) precisionStep() float64 {
	step := 1.0
	for i := 0; i < c.FloatPrecisionDigits; i++ {
		step /= 10
	}
	return step
}
