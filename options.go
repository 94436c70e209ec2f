package vciph

type config struct {
	q         float64
	coeffRow  int
	coeffCol  int
	transform BlockTransform
	limits    Limits
}

func defaultConfig() config {
	return config{
		q:         DefaultQuantizationStep,
		coeffRow:  DefaultCoefficientRow,
		coeffCol:  DefaultCoefficientCol,
		transform: DCT8,
		limits:    defaultLimits(),
	}
}

// Option adjusts the embedding parameters. Embed and Extract take the
// same options; a stream is only recoverable with the quantization step,
// coefficient, and transform it was embedded with.
type Option func(*config)

// WithQuantizationStep sets the grid spacing Q. Larger values tolerate
// more round-trip noise at the cost of more visible distortion.
func WithQuantizationStep(q float64) Option {
	return func(c *config) { c.q = q }
}

// WithCoefficient selects which frequency-domain coefficient of each
// block carries the bit.
func WithCoefficient(row, col int) Option {
	return func(c *config) { c.coeffRow, c.coeffCol = row, col }
}

// WithTransform substitutes the block transform pair.
func WithTransform(t BlockTransform) Option {
	return func(c *config) { c.transform = t }
}

// WithLimits sets extraction allocation limits. Zero fields keep their
// defaults.
func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}
