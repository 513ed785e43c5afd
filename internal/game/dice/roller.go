package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so every labelled roll is logged at debug level.
// Roller itself satisfies Source, so it can be handed to code that only needs Intn.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn delegates to the underlying source without logging.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// Between rolls a uniform int in [lo, hi] and logs it under label.
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi; the roll is logged at debug level.
func (r *Roller) Between(label string, lo, hi int) int {
	v := Between(r.src, lo, hi)
	r.logger.Debug("dice roll",
		zap.String("roll", label),
		zap.Int("min", lo),
		zap.Int("max", hi),
		zap.Int("result", v),
	)
	return v
}

// Chance rolls an event of probability p and logs the outcome under label.
func (r *Roller) Chance(label string, p float64) bool {
	hit := Chance(r.src, p)
	r.logger.Debug("dice chance",
		zap.String("roll", label),
		zap.Float64("probability", p),
		zap.Bool("hit", hit),
	)
	return hit
}
