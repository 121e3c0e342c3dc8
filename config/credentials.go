package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var ErrMissingCredentials = errors.New("missing api credentials")

type Credentials struct {
	APIKey     string
	APISecret  string
	Passphrase string
}

// exchanges whose private API signs with an extra passphrase
var passphraseExchanges = map[string]bool{
	"okx":    true,
	"kucoin": true,
	"bitget": true,
}

func RequiresPassphrase(exchangeID string) bool {
	return passphraseExchanges[strings.ToLower(exchangeID)]
}

// LoadEnv loads variables from .env files. A missing file is not an error,
// the environment may already be populated.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// LoadCredentials reads <EXCHANGE>_API_KEY, <EXCHANGE>_API_SECRET and, where
// the exchange needs one, <EXCHANGE>_PASSPHRASE.
func LoadCredentials(exchangeID string) (Credentials, error) {
	prefix := strings.ToUpper(exchangeID)

	creds := Credentials{
		APIKey:    os.Getenv(prefix + "_API_KEY"),
		APISecret: os.Getenv(prefix + "_API_SECRET"),
	}
	if creds.APIKey == "" || creds.APISecret == "" {
		return Credentials{}, fmt.Errorf("%w: %s_API_KEY/%s_API_SECRET not set", ErrMissingCredentials, prefix, prefix)
	}

	if RequiresPassphrase(exchangeID) {
		creds.Passphrase = os.Getenv(prefix + "_PASSPHRASE")
		if creds.Passphrase == "" {
			return Credentials{}, fmt.Errorf("%w: %s_PASSPHRASE not set", ErrMissingCredentials, prefix)
		}
	}
	return creds, nil
}
