package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Load reads the TOML config at path, fills in defaults and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("withdrawal.max_retries", DefaultMaxRetries)
	v.SetDefault("withdrawal.retry_delay", DefaultRetryDelay)
	v.SetDefault("withdrawal.addresses_file", DefaultAddressesFile)
	v.SetDefault("log.level", "info")
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
}

func (c *Config) Validate() error {
	w := c.Withdrawal
	switch {
	case w.Coin == "":
		return errors.New("withdrawal.coin is required")
	case w.Network == "":
		return errors.New("withdrawal.network is required")
	case w.MinAmount <= 0:
		return errors.New("withdrawal.min_amount must be positive")
	case w.MaxAmount < w.MinAmount:
		return errors.New("withdrawal.max_amount must not be below min_amount")
	case w.DecimalPlaces < 0 || w.DecimalPlaces > MaxDecimalPlaces:
		return fmt.Errorf("withdrawal.decimal_places must be between 0 and %d", MaxDecimalPlaces)
	case w.MinDelay < 0:
		return errors.New("withdrawal.min_delay must not be negative")
	case w.MaxDelay < w.MinDelay:
		return errors.New("withdrawal.max_delay must not be below min_delay")
	case w.MaxRetries < 1 || w.MaxRetries > DefaultMaxRetries:
		return fmt.Errorf("withdrawal.max_retries must be between 1 and %d", DefaultMaxRetries)
	case w.RetryDelay < 0:
		return errors.New("withdrawal.retry_delay must not be negative")
	}

	// the smallest amount that can be sent must still fit below max
	minAmount := decimal.NewFromFloat(w.MinAmount)
	maxAmount := decimal.NewFromFloat(w.MaxAmount)
	if minAmount.RoundUp(int32(w.DecimalPlaces)).GreaterThan(maxAmount) {
		return fmt.Errorf("no amount with %d decimal places lies in [%s, %s]", w.DecimalPlaces, minAmount, maxAmount)
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("rate_limit needs a positive requests_per_second and burst")
	}
	return nil
}

// EnabledExchanges returns the ids of enabled exchanges in a stable order.
func (c *Config) EnabledExchanges() []string {
	var ids []string
	for id, ex := range c.Exchanges {
		if ex.Enable {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
