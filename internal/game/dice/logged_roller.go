package dice

import (
	"context"

	"go.uber.org/zap"
)

// Roller rolls expressions from a Source and logs each result at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// RollExpr parses raw, rolls it and logs the result.
func (r *Roller) RollExpr(raw string) (RollResult, error) {
	result, err := RollExpr(raw, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result, nil
}

// RollDice evaluates raw and returns only the total.
//
// Postcondition: Returns ctx.Err() without rolling when ctx is already done.
func (r *Roller) RollDice(ctx context.Context, raw string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	result, err := r.RollExpr(raw)
	if err != nil {
		return 0, err
	}
	return result.Total(), nil
}
