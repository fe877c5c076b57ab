package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the Code Monk CLI.
//
// Fields:
//   - ServerURL: base URL of the REST backend.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - ProbeRetryDelay: pause before the single retry of the startup probe.
//   - OTPResendCooldown: wait before another OTP may be requested.
//   - RequestTimeout: per-request HTTP timeout.
//   - CredentialStore: where the bearer token lives (sqlite, redis, memory).
//   - DatabasePath: SQLite file for the sqlite store.
//   - RedisAddr / RedisPassword: connection for the redis store.
//   - ValidationProfile: registration ruleset (strict or lenient).
//   - LogLevel / LogFormat: see logging.New.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	ProbeRetryDelay     time.Duration
	OTPResendCooldown   time.Duration
	RequestTimeout      time.Duration
	CredentialStore     string
	DatabasePath        string
	RedisAddr           string
	RedisPassword       string
	ValidationProfile   string
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second
	c.ProbeRetryDelay = time.Second
	c.OTPResendCooldown = 60 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.CredentialStore = "sqlite"
	c.DatabasePath = "codemonk.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.ValidationProfile = "strict"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment and finally the flags in args. args excludes the program name.
// It panics on an unreadable file, malformed values or bad flags.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}

// LoadConfig is Load over the process arguments.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}
