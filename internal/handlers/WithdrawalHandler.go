package handlers

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"text/tabwriter"
	"time"

	"WithdrawBot/config"
	"WithdrawBot/internal/operations/binance"
	"WithdrawBot/internal/operations/exchange"
	"WithdrawBot/internal/services/withdrawal"

	"github.com/rs/zerolog"
)

type WithdrawalHandler struct {
	cfg      *config.Config
	recorder withdrawal.Recorder
	log      zerolog.Logger

	Registry *exchange.Registry
}

func NewWithdrawalHandler(cfg *config.Config, recorder withdrawal.Recorder, log zerolog.Logger, dryRun bool) *WithdrawalHandler {
	registry := exchange.NewRegistry(log, cfg.RateLimit)
	registry.Register(binance.Name, binance.Factory)
	registry.DryRun = dryRun

	return &WithdrawalHandler{
		cfg:      cfg,
		recorder: recorder,
		log:      log,
		Registry: registry,
	}
}

// Start connects the enabled exchanges and withdraws to every address.
func (h *WithdrawalHandler) Start(ctx context.Context, addresses []string) error {
	exchanges := h.Registry.Connect(h.cfg.EnabledExchanges())
	if len(exchanges) == 0 {
		h.log.Warn().Msg("no exchange initialized, nothing to do")
		return nil
	}

	gen, err := withdrawal.NewGenerator(h.cfg.Withdrawal, rand.NewSource(time.Now().UnixNano()))
	if err != nil {
		return err
	}

	driver, err := withdrawal.NewDriver(withdrawal.Options{
		Exchanges: exchanges,
		Addresses: addresses,
		Config:    h.cfg.Withdrawal,
		Generator: gen,
		Recorder:  h.recorder,
		Log:       h.log,
	})
	if err != nil {
		return err
	}

	return driver.Run(ctx)
}

// PrintFees writes the withdrawal fee of the configured coin/network for
// every enabled exchange. Lookup errors are printed in place of the fee.
func (h *WithdrawalHandler) PrintFees(ctx context.Context, out io.Writer) error {
	coin, network := h.cfg.Withdrawal.Coin, h.cfg.Withdrawal.Network

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EXCHANGE\tCOIN\tNETWORK\tFEE")
	for _, ex := range h.Registry.Connect(h.cfg.EnabledExchanges()) {
		fee, err := ex.WithdrawFee(ctx, coin, network)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\terror: %v\n", ex.Name(), coin, network, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ex.Name(), coin, network, fee)
	}
	return tw.Flush()
}
