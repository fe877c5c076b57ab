// Package config loads runtime configuration for the Code Monk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with CODEMONK_ (e.g. CODEMONK_SERVER_URL).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the REST backend
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds)
//	-s string   credential store backend: sqlite, redis or memory
//	-d string   SQLite database path
//	-r string   Redis address
//	-p string   validation profile: strict or lenient
//	-l string   log level
//	-f string   log format: text, json or zap
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds. Absent keys keep
// the previous value:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "online_check_interval": "3s",
//	  "probe_retry_delay": "1s",
//	  "otp_resend_cooldown": "60s",
//	  "request_timeout": "10s",
//	  "credential_store": "sqlite",
//	  "database_path": "codemonk.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_password": "",
//	  "validation_profile": "strict",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// The environment layer uses the same keys, upper-cased and prefixed.
package config
