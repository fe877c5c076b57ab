// Package config holds the settings of the fake backend: defaults, an
// optional JSON file and command-line flags, applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the fake backend.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for verification tokens (HS256). Test default only.
//   - OTPTTL: lifetime of an emailed code.
//   - OTPMaxAttempts: wrong guesses allowed before a code is burned.
//   - VerificationTTL: lifetime of the token issued by /otp/verify-otp.
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	Addr            string
	SecretKey       string
	OTPTTL          time.Duration
	OTPMaxAttempts  int
	VerificationTTL time.Duration
	LogLevel        string
	LogFormat       string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = "127.0.0.1:8080"
	c.SecretKey = "codemonk-dev-secret"
	c.OTPTTL = 5 * time.Minute
	c.OTPMaxAttempts = 5
	c.VerificationTTL = 15 * time.Minute
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Load builds a Config from defaults, then the JSON file named by -c/-config
// in args, then flags in args. args excludes the program name. It panics on
// an unreadable file or malformed flags.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// LoadConfig is Load over the process arguments.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}
