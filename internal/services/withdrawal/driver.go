package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"WithdrawBot/config"
	"WithdrawBot/internal/metrics"
	"WithdrawBot/internal/models"
	"WithdrawBot/internal/operations/exchange"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ErrRetriesExhausted = errors.New("withdrawal retries exhausted")

// Recorder persists the outcome of each (address, exchange) pair.
type Recorder interface {
	Create(withdrawal *models.Withdrawal) error
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Options struct {
	Exchanges []exchange.Exchange
	Addresses []string
	Config    config.WithdrawalConfig
	Generator *Generator
	Recorder  Recorder
	Log       zerolog.Logger
	Sleep     SleepFunc
}

// Driver walks every address across every exchange, one withdrawal at a time.
type Driver struct {
	exchanges  []exchange.Exchange
	addresses  []string
	coin       string
	network    string
	maxRetries int
	retryDelay time.Duration
	gen        *Generator
	recorder   Recorder
	log        zerolog.Logger
	sleep      SleepFunc
}

func NewDriver(opts Options) (*Driver, error) {
	if opts.Generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if opts.Config.MaxRetries < 1 {
		return nil, fmt.Errorf("max retries must be at least 1, got %d", opts.Config.MaxRetries)
	}

	sleep := opts.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	return &Driver{
		exchanges:  opts.Exchanges,
		addresses:  opts.Addresses,
		coin:       opts.Config.Coin,
		network:    opts.Config.Network,
		maxRetries: opts.Config.MaxRetries,
		retryDelay: time.Duration(opts.Config.RetryDelay) * time.Second,
		gen:        opts.Generator,
		recorder:   opts.Recorder,
		log:        opts.Log,
		sleep:      sleep,
	}, nil
}

// Run processes every pair in order and sleeps a random delay after each.
// It returns ctx.Err() when interrupted and nil once all pairs are done.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Info().
		Int("addresses", len(d.addresses)).
		Int("exchanges", len(d.exchanges)).
		Str("coin", d.coin).
		Str("network", d.network).
		Msg("starting withdrawals")

	for _, address := range d.addresses {
		for _, ex := range d.exchanges {
			if err := ctx.Err(); err != nil {
				return err
			}

			if _, err := d.Process(ctx, ex, address); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}

			delay := d.gen.Delay()
			d.log.Info().Int("delay_seconds", delay).Msg("waiting before next withdrawal")
			if err := d.sleep(ctx, time.Duration(delay)*time.Second); err != nil {
				return err
			}
		}
	}

	d.log.Info().Msg("all withdrawals processed")
	return nil
}

// Process withdraws a fresh random amount from ex to address, retrying with a
// fixed back-off. Exhausted retries are recorded and returned as
// ErrRetriesExhausted; an interrupted run returns ctx.Err() unrecorded.
func (d *Driver) Process(ctx context.Context, ex exchange.Exchange, address string) (*models.Withdrawal, error) {
	amount := d.gen.Amount()
	requestID := uuid.NewString()
	log := d.log.With().
		Str("exchange", ex.Name()).
		Str("address", address).
		Str("amount", amount.String()).
		Str("coin", d.coin).
		Str("request_id", requestID).
		Logger()

	record := &models.Withdrawal{
		Exchange:  ex.Name(),
		Address:   address,
		Coin:      d.coin,
		Network:   d.network,
		Amount:    amount.String(),
		RequestID: requestID,
	}

	var lastErr error
	for attempt := 1; attempt <= d.maxRetries; attempt++ {
		record.Attempts = attempt
		metrics.WithdrawalAttemptsTotal.WithLabelValues(ex.Name()).Inc()

		id, fee, err := d.attempt(ctx, ex, exchange.Request{
			ID:      requestID,
			Coin:    d.coin,
			Network: d.network,
			Address: address,
			Amount:  amount,
		})
		if err == nil {
			record.Status = models.WithdrawalStatusSuccess
			record.WithdrawalID = id
			record.Fee = decimal.NewNullDecimal(fee)
			log.Info().Str("withdrawal_id", id).Str("fee", fee.String()).Int("attempt", attempt).Msg("withdrawal succeeded")
			d.record(record)
			return record, nil
		}
		if ctx.Err() != nil {
			return record, ctx.Err()
		}

		lastErr = err
		log.Error().Err(err).Int("attempt", attempt).Int("max_retries", d.maxRetries).Msg("withdrawal failed")

		if attempt < d.maxRetries {
			if err := d.sleep(ctx, d.retryDelay); err != nil {
				return record, err
			}
		}
	}

	log.Error().Msg("max retries reached, skipping withdrawal")
	record.Status = models.WithdrawalStatusFailed
	record.LastError = lastErr.Error()
	d.record(record)
	return record, fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

func (d *Driver) attempt(ctx context.Context, ex exchange.Exchange, req exchange.Request) (string, decimal.Decimal, error) {
	fee, err := ex.WithdrawFee(ctx, req.Coin, req.Network)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("failed to get withdraw fee: %w", err)
	}

	id, err := ex.Withdraw(ctx, req)
	if err != nil {
		return "", fee, err
	}
	return id, fee, nil
}

func (d *Driver) record(w *models.Withdrawal) {
	metrics.WithdrawalsTotal.WithLabelValues(w.Exchange, w.Status).Inc()
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Create(w); err != nil {
		d.log.Error().Err(err).Str("exchange", w.Exchange).Str("address", w.Address).Msg("failed to record withdrawal")
	}
}

// Sleep waits for d or until ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
