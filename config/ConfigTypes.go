package config

type Config struct {
	Exchanges  map[string]ExchangeConfig `mapstructure:"exchanges"`
	Withdrawal WithdrawalConfig          `mapstructure:"withdrawal"`
	Log        LogConfig                 `mapstructure:"log"`
	Database   DatabaseConfig            `mapstructure:"database"`
	Metrics    MetricsConfig             `mapstructure:"metrics"`
	RateLimit  RateLimitConfig           `mapstructure:"rate_limit"`
}

type ExchangeConfig struct {
	Enable bool `mapstructure:"enable"`
}

type WithdrawalConfig struct {
	Coin          string  `mapstructure:"coin"`
	Network       string  `mapstructure:"network"`
	MinAmount     float64 `mapstructure:"min_amount"`
	MaxAmount     float64 `mapstructure:"max_amount"`
	DecimalPlaces int     `mapstructure:"decimal_places"`

	// Delays are whole seconds
	MinDelay   int `mapstructure:"min_delay"`
	MaxDelay   int `mapstructure:"max_delay"`
	MaxRetries int `mapstructure:"max_retries"`
	RetryDelay int `mapstructure:"retry_delay"`

	AddressesFile string `mapstructure:"addresses_file"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

const (
	DefaultMaxRetries    = 3
	DefaultRetryDelay    = 5
	DefaultAddressesFile = "addresses.txt"
	MaxDecimalPlaces     = 18
)
