package exchange

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupportedExchange = errors.New("unsupported exchange")
	ErrNetworkNotFound     = errors.New("coin network not found")
	ErrWithdrawDisabled    = errors.New("withdrawals disabled for coin network")
)

// Request is a single withdrawal to an external address. ID is a
// client-chosen id reused across retries so the exchange can reject a
// request it already accepted.
type Request struct {
	ID      string
	Coin    string
	Network string
	Address string
	Amount  decimal.Decimal
}

// Exchange is an authenticated handle on one exchange account.
type Exchange interface {
	Name() string
	// WithdrawFee returns the flat fee the exchange charges for coin on network.
	WithdrawFee(ctx context.Context, coin, network string) (decimal.Decimal, error)
	// Withdraw submits the request and returns the exchange's withdrawal id.
	Withdraw(ctx context.Context, req Request) (string, error)
}
