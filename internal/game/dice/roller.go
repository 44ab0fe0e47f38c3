package dice

import "go.uber.org/zap"

// Roll evaluates expr using src.
//
// Postcondition: len(result.Dice) == expr.Count and
// expr.Min() <= result.Total() <= expr.Max().
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = Die(src, expr.Sides)
	}
	return RollResult{Expression: expr.Raw, Dice: rolled}
}

// RollSpec parses spec and rolls it. A malformed specification degrades to
// an empty result (total 0) instead of failing.
func RollSpec(spec string, src Source) RollResult {
	e, err := Parse(spec)
	if err != nil {
		return RollResult{Expression: spec}
	}
	return Roll(e, src)
}

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with specification, dice values, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced with a no-op logger.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness provider.
func (r *Roller) Source() Source { return r.src }

// RollSpec parses and rolls spec, logging the result. Malformed
// specifications are logged at debug level and roll 0.
func (r *Roller) RollSpec(spec string) RollResult {
	e, err := Parse(spec)
	if err != nil {
		r.logger.Debug("malformed dice specification",
			zap.String("spec", spec),
			zap.Error(err),
		)
		return RollResult{Expression: spec}
	}
	result := Roll(e, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("total", result.Total()),
	)
	return result
}

// Die rolls a single die with the given number of sides and logs it.
//
// Precondition: sides >= 1.
func (r *Roller) Die(sides int) int {
	v := Die(r.src, sides)
	r.logger.Debug("die roll", zap.Int("sides", sides), zap.Int("value", v))
	return v
}

// Pick returns a uniformly chosen index in [0, n).
//
// Precondition: n > 0.
func (r *Roller) Pick(n int) int {
	return r.src.Intn(n)
}
