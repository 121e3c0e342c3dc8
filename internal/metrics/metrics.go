package metrics

import (
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "withdrawals_total", Help: "Withdrawals by final outcome"},
		[]string{"exchange", "status"},
	)
	WithdrawalAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "withdrawal_attempts_total", Help: "Withdrawal calls issued, retries included"},
		[]string{"exchange"},
	)
)

func init() {
	prometheus.MustRegister(WithdrawalsTotal, WithdrawalAttemptsTotal)
}

// Serve binds addr and exposes /metrics in the background. The returned
// server's Addr is the bound address, so ":0" resolves to the real port.
func Serve(addr string) (*http.Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on metrics address: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: l.Addr().String(), Handler: mux}
	go func() { _ = srv.Serve(l) }()
	return srv, nil
}
