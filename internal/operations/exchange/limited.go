package exchange

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Limited throttles calls to the wrapped exchange with a token bucket.
type Limited struct {
	Exchange
	limiter *rate.Limiter
}

func NewLimited(ex Exchange, rps float64, burst int) *Limited {
	return &Limited{
		Exchange: ex,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (l *Limited) WithdrawFee(ctx context.Context, coin, network string) (decimal.Decimal, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return decimal.Zero, err
	}
	return l.Exchange.WithdrawFee(ctx, coin, network)
}

func (l *Limited) Withdraw(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.Exchange.Withdraw(ctx, req)
}
