package exchange

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DryRun stands in for a real exchange and only logs what would be sent.
type DryRun struct {
	name string
	log  zerolog.Logger
}

func NewDryRun(name string, log zerolog.Logger) *DryRun {
	return &DryRun{name: name, log: log.With().Str("exchange", name).Bool("dry_run", true).Logger()}
}

func (d *DryRun) Name() string { return d.name }

func (d *DryRun) WithdrawFee(ctx context.Context, coin, network string) (decimal.Decimal, error) {
	return decimal.Zero, ctx.Err()
}

func (d *DryRun) Withdraw(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := "dryrun-" + uuid.NewString()
	d.log.Info().
		Str("coin", req.Coin).
		Str("network", req.Network).
		Str("address", req.Address).
		Str("amount", req.Amount.String()).
		Str("withdrawal_id", id).
		Msg("skipping withdrawal call")
	return id, nil
}
