package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runConsole(t *testing.T, args ...string) (Console, error) {
	t.Helper()
	var (
		cfg    Console
		cfgErr error
	)
	app := &cli.App{
		Name:  "console",
		Flags: ConsoleFlags(),
		Action: func(c *cli.Context) error {
			cfg, cfgErr = ConsoleFrom(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"console"}, args...)))
	return cfg, cfgErr
}

func TestConsole_Defaults(t *testing.T) {
	cfg, err := runConsole(t)
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "http://localhost:8080/api", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1024, cfg.CartSize)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, Log{Level: "info", Format: "console"}, cfg.Log)
}

func TestConsole_EnvAndFlags(t *testing.T) {
	t.Setenv("PHARMACY_API_URL", "https://pharmacy.example/api")
	t.Setenv("PHARMACY_REQUEST_TIMEOUT", "3s")

	cfg, err := runConsole(t, "--request-timeout", "5s", "--log-format", "json")
	require.NoError(t, err)
	assert.Equal(t, "https://pharmacy.example/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout, "flag wins over env")
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestConsole_Invalid(t *testing.T) {
	_, err := runConsole(t, "--api-url", "localhost:8080")
	assert.Error(t, err)

	_, err = runConsole(t, "--cart-size", "0")
	assert.Error(t, err)
}

func TestMockAPI(t *testing.T) {
	var cfg MockAPI
	app := &cli.App{
		Name:  "mockapi",
		Flags: MockAPIFlags(),
		Action: func(c *cli.Context) error {
			cfg = MockAPIFrom(c)
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"mockapi", "--seed=false", "--cors-origin", "http://localhost:3000"}))
	assert.False(t, cfg.Seed)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PHARMACY_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("PHARMACY_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("PHARMACY_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("PHARMACY_TEST_DOTENV"))
}
