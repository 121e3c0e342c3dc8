package binance

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"WithdrawBot/config"
	"WithdrawBot/internal/operations/exchange"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coinsResponse = `[
  {"coin":"BTC","networkList":[{"network":"BTC","withdrawFee":"0.0002","withdrawEnable":true}]},
  {"coin":"USDT","networkList":[
    {"network":"BSC","withdrawFee":"0.29","withdrawEnable":true},
    {"network":"ETH","withdrawFee":"4.5","withdrawEnable":false}
  ]}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *BinanceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewBinanceClient("key", "secret")
	c.client.BaseURL = srv.URL
	return c
}

func coinsHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sapi/v1/capital/config/getall", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-MBX-APIKEY"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(coinsResponse))
	}
}

func TestWithdrawFee(t *testing.T) {
	c := newTestClient(t, coinsHandler(t))

	fee, err := c.WithdrawFee(context.Background(), "usdt", "bsc")
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.RequireFromString("0.29")), "fee %s", fee)
}

func TestWithdrawFeeDisabledNetwork(t *testing.T) {
	c := newTestClient(t, coinsHandler(t))

	_, err := c.WithdrawFee(context.Background(), "USDT", "ETH")
	assert.True(t, errors.Is(err, exchange.ErrWithdrawDisabled))
}

func TestWithdrawFeeUnknownNetwork(t *testing.T) {
	c := newTestClient(t, coinsHandler(t))

	_, err := c.WithdrawFee(context.Background(), "USDT", "TRX")
	assert.True(t, errors.Is(err, exchange.ErrNetworkNotFound))
}

func TestWithdraw(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sapi/v1/capital/withdraw/apply", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "USDT", r.Form.Get("coin"))
		assert.Equal(t, "BSC", r.Form.Get("network"))
		assert.Equal(t, "0xabc", r.Form.Get("address"))
		assert.Equal(t, "1.2345", r.Form.Get("amount"))
		assert.Equal(t, "req-1", r.Form.Get("withdrawOrderId"))
		assert.NotEmpty(t, r.Form.Get("signature"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"7213fea8e94b4a5593d507237e5a555b"}`))
	})

	id, err := c.Withdraw(context.Background(), exchange.Request{
		ID:      "req-1",
		Coin:    "USDT",
		Network: "BSC",
		Address: "0xabc",
		Amount:  decimal.RequireFromString("1.2345"),
	})
	require.NoError(t, err)
	assert.Equal(t, "7213fea8e94b4a5593d507237e5a555b", id)
}

func TestWithdrawAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":-4026,"msg":"User has insufficient balance"}`))
	})

	_, err := c.Withdraw(context.Background(), exchange.Request{
		Coin: "USDT", Network: "BSC", Address: "0xabc", Amount: decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")
}

func TestFactory(t *testing.T) {
	ex, err := Factory(config.Credentials{APIKey: "k", APISecret: "s"})
	require.NoError(t, err)
	assert.Equal(t, Name, ex.Name())
}
