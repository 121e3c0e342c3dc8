package binance

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"WithdrawBot/config"
	"WithdrawBot/internal/operations/exchange"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

const Name = "binance"

type BinanceClient struct {
	client *binance.Client
}

func NewBinanceClient(apiKey, secretKey string) *BinanceClient {
	// Create custom HTTP client with timeouts
	httpClient := &http.Client{
		Timeout: time.Second * 10,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	client := binance.NewClient(apiKey, secretKey)
	client.HTTPClient = httpClient

	return &BinanceClient{client: client}
}

// Factory adapts NewBinanceClient to the exchange registry.
func Factory(creds config.Credentials) (exchange.Exchange, error) {
	return NewBinanceClient(creds.APIKey, creds.APISecret), nil
}

func (c *BinanceClient) Name() string {
	return Name
}

// WithdrawFee looks the coin up in the capital config and returns the fee of
// the matching network.
func (c *BinanceClient) WithdrawFee(ctx context.Context, coin, network string) (decimal.Decimal, error) {
	coins, err := c.client.NewGetAllCoinsInfoService().Do(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get coin info: %w", err)
	}

	for _, info := range coins {
		if !strings.EqualFold(info.Coin, coin) {
			continue
		}
		for _, n := range info.NetworkList {
			if !strings.EqualFold(n.Network, network) {
				continue
			}
			if !n.WithdrawEnable {
				return decimal.Zero, fmt.Errorf("%w: %s/%s", exchange.ErrWithdrawDisabled, coin, network)
			}
			fee, err := decimal.NewFromString(n.WithdrawFee)
			if err != nil {
				return decimal.Zero, fmt.Errorf("invalid withdraw fee %q: %w", n.WithdrawFee, err)
			}
			return fee, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s/%s", exchange.ErrNetworkNotFound, coin, network)
}

// Withdraw sends req.ID as withdrawOrderId, so a retry of a request Binance
// already accepted is rejected rather than paid twice.
func (c *BinanceClient) Withdraw(ctx context.Context, req exchange.Request) (string, error) {
	svc := c.client.NewCreateWithdrawService()
	if req.ID != "" {
		svc = svc.WithdrawOrderID(req.ID)
	}
	res, err := svc.
		Coin(req.Coin).
		Network(req.Network).
		Address(req.Address).
		Amount(req.Amount.String()).
		Do(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return res.ID, nil
}
