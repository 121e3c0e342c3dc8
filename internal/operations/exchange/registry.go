package exchange

import (
	"fmt"

	"WithdrawBot/config"

	"github.com/rs/zerolog"
)

// Factory builds an exchange client from its credentials.
type Factory func(creds config.Credentials) (Exchange, error)

type CredentialsFunc func(exchangeID string) (config.Credentials, error)

type Registry struct {
	factories map[string]Factory
	log       zerolog.Logger

	Credentials CredentialsFunc
	RateLimit   config.RateLimitConfig
	// DryRun keeps credential checks but never builds a real client.
	DryRun bool
}

func NewRegistry(log zerolog.Logger, limit config.RateLimitConfig) *Registry {
	return &Registry{
		factories:   make(map[string]Factory),
		log:         log,
		Credentials: config.LoadCredentials,
		RateLimit:   limit,
	}
}

func (r *Registry) Register(id string, f Factory) {
	r.factories[id] = f
}

// Connect builds a client for every id. Exchanges that are unsupported or
// lack credentials are logged and left out; they never stop the others.
func (r *Registry) Connect(ids []string) []Exchange {
	var active []Exchange
	for _, id := range ids {
		ex, err := r.connect(id)
		if err != nil {
			r.log.Error().Err(err).Str("exchange", id).Msg("failed to initialize exchange, skipping")
			continue
		}
		active = append(active, NewLimited(ex, r.RateLimit.RequestsPerSecond, r.RateLimit.Burst))
		r.log.Info().Str("exchange", id).Msg("exchange initialized")
	}
	return active
}

// connect checks credentials before looking up the factory, so a missing
// key or passphrase is reported even for exchanges without a client.
func (r *Registry) connect(id string) (Exchange, error) {
	creds, err := r.Credentials(id)
	if err != nil {
		return nil, err
	}

	factory, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExchange, id)
	}

	if r.DryRun {
		return NewDryRun(id, r.log), nil
	}
	return factory(creds)
}
