// Package config turns command-line flags, PHARMACY_* environment variables
// and an optional .env file into typed settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Console configures the web console.
type Console struct {
	Addr           string
	APIURL         string
	RequestTimeout time.Duration
	CartSize       int
	SessionTTL     time.Duration
	SecureCookies  bool
	Log            Log
}

// MockAPI configures the in-memory backend.
type MockAPI struct {
	Addr           string
	Seed           bool
	AllowedOrigins []string
	Log            Log
}

type Log struct {
	Level  string
	Format string
}

// LoadDotEnv loads variables from the given files without overriding ones
// already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func logFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "debug, info, warn or error",
			EnvVars: []string{"PHARMACY_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "console",
			Usage:   "console or json",
			EnvVars: []string{"PHARMACY_LOG_FORMAT"},
		},
	}
}

func logFrom(c *cli.Context) Log {
	return Log{Level: c.String("log-level"), Format: c.String("log-format")}
}

func ConsoleFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Value:   ":3000",
			Usage:   "listen address of the console",
			EnvVars: []string{"PHARMACY_ADDR"},
		},
		&cli.StringFlag{
			Name:    "api-url",
			Value:   "http://localhost:8080/api",
			Usage:   "base URL of the pharmacy REST API",
			EnvVars: []string{"PHARMACY_API_URL"},
		},
		&cli.DurationFlag{
			Name:    "request-timeout",
			Value:   10 * time.Second,
			Usage:   "deadline for each backend call",
			EnvVars: []string{"PHARMACY_REQUEST_TIMEOUT"},
		},
		&cli.IntFlag{
			Name:    "cart-size",
			Value:   1024,
			Usage:   "number of carts kept in memory",
			EnvVars: []string{"PHARMACY_CART_SIZE"},
		},
		&cli.DurationFlag{
			Name:    "session-ttl",
			Value:   24 * time.Hour,
			Usage:   "lifetime of the session cookies",
			EnvVars: []string{"PHARMACY_SESSION_TTL"},
		},
		&cli.BoolFlag{
			Name:    "secure-cookies",
			Usage:   "mark session cookies Secure",
			EnvVars: []string{"PHARMACY_SECURE_COOKIES"},
		},
	}, logFlags()...)
}

// ConsoleFrom reads and validates the flags declared by ConsoleFlags.
func ConsoleFrom(c *cli.Context) (Console, error) {
	cfg := Console{
		Addr:           c.String("addr"),
		APIURL:         c.String("api-url"),
		RequestTimeout: c.Duration("request-timeout"),
		CartSize:       c.Int("cart-size"),
		SessionTTL:     c.Duration("session-ttl"),
		SecureCookies:  c.Bool("secure-cookies"),
		Log:            logFrom(c),
	}
	return cfg, cfg.Validate()
}

func (c Console) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api-url %q: want an absolute http(s) URL", c.APIURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request-timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.CartSize <= 0 {
		return fmt.Errorf("cart-size must be positive, got %d", c.CartSize)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session-ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}

func MockAPIFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Value:   ":8080",
			Usage:   "listen address of the REST API",
			EnvVars: []string{"PHARMACY_MOCKAPI_ADDR"},
		},
		&cli.BoolFlag{
			Name:    "seed",
			Value:   true,
			Usage:   "load demo accounts, drugs and staff on start",
			EnvVars: []string{"PHARMACY_SEED"},
		},
		&cli.StringSliceFlag{
			Name:    "cors-origin",
			Value:   cli.NewStringSlice("*"),
			Usage:   "allowed CORS origins",
			EnvVars: []string{"PHARMACY_CORS_ORIGINS"},
		},
	}, logFlags()...)
}

func MockAPIFrom(c *cli.Context) MockAPI {
	return MockAPI{
		Addr:           c.String("addr"),
		Seed:           c.Bool("seed"),
		AllowedOrigins: c.StringSlice("cors-origin"),
		Log:            logFrom(c),
	}
}
