package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAddresses(t *testing.T) {
	addresses, err := LoadAddresses(filepath.Join("testdata", "addresses.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"0x1111111111111111111111111111111111111111",
		"0x2222222222222222222222222222222222222222",
		"0x3333333333333333333333333333333333333333",
	}, addresses)
}

func TestLoadAddressesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n   \n"), 0o644))

	_, err := LoadAddresses(path)
	assert.Error(t, err)
}

func TestLoadAddressesMissingFile(t *testing.T) {
	_, err := LoadAddresses(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
