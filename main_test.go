package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[exchanges.binance]
enable = true

[withdrawal]
coin = "USDT"
network = "TRX"
min_amount = 1.0
max_amount = 2.0
decimal_places = 2
min_delay = 0
max_delay = 0
retry_delay = 0
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func TestFeesCommandDryRun(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fees", "-c", writeConfig(t), "--env", filepath.Join(t.TempDir(), ".env"), "--dry-run"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "binance")
	assert.Contains(t, out.String(), "TRX")
}

func TestRunCommandDryRun(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")

	addresses := filepath.Join(t.TempDir(), "addresses.txt")
	require.NoError(t, os.WriteFile(addresses, []byte("TXyz1\nTXyz2\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "-c", writeConfig(t), "-w", addresses, "--env", filepath.Join(t.TempDir(), ".env"), "--dry-run"})

	require.NoError(t, cmd.Execute())
}

func TestRunCommandMissingAddresses(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", writeConfig(t), "-w", filepath.Join(t.TempDir(), "missing.txt"), "--env", filepath.Join(t.TempDir(), ".env")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "address file"))
}

func TestRunCommandMissingConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", filepath.Join(t.TempDir(), "missing.toml"), "--env", filepath.Join(t.TempDir(), ".env")})

	require.Error(t, cmd.Execute())
}

func TestRunCommandMetricsAddressInUse(t *testing.T) {
	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_API_SECRET", "secret")

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := testConfig + "\n[metrics]\naddr = \"" + l.Addr().String() + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	addresses := filepath.Join(dir, "addresses.txt")
	require.NoError(t, os.WriteFile(addresses, []byte("TXyz1\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", cfgPath, "-w", addresses, "--env", filepath.Join(dir, ".env"), "--dry-run"})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics")
}
