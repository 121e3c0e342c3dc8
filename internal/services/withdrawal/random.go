package withdrawal

import (
	"fmt"
	"math/rand"

	"WithdrawBot/config"

	"github.com/shopspring/decimal"
)

// Generator draws withdrawal amounts and delays from the configured ranges.
// It is not safe for concurrent use.
type Generator struct {
	rng       *rand.Rand
	minAmount decimal.Decimal
	maxAmount decimal.Decimal
	places    int32
	minDelay  int
	maxDelay  int
}

func NewGenerator(cfg config.WithdrawalConfig, src rand.Source) (*Generator, error) {
	g := &Generator{
		rng:       rand.New(src),
		minAmount: decimal.NewFromFloat(cfg.MinAmount),
		maxAmount: decimal.NewFromFloat(cfg.MaxAmount),
		places:    int32(cfg.DecimalPlaces),
		minDelay:  cfg.MinDelay,
		maxDelay:  cfg.MaxDelay,
	}

	// the smallest amount we could ever send must still fit below max
	if g.minAmount.RoundUp(g.places).GreaterThan(g.maxAmount) {
		return nil, fmt.Errorf("no amount with %d decimal places lies in [%s, %s]",
			g.places, g.minAmount, g.maxAmount)
	}
	return g, nil
}

// Amount returns a uniform amount in [min, max] truncated to the configured
// decimal places.
func (g *Generator) Amount() decimal.Decimal {
	span := g.maxAmount.Sub(g.minAmount)
	amount := g.minAmount.Add(span.Mul(decimal.NewFromFloat(g.rng.Float64()))).Truncate(g.places)
	if amount.LessThan(g.minAmount) {
		amount = g.minAmount.RoundUp(g.places)
	}
	return amount
}

// Delay returns whole seconds in [minDelay, maxDelay].
func (g *Generator) Delay() int {
	return g.minDelay + g.rng.Intn(g.maxDelay-g.minDelay+1)
}
