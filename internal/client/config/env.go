package config

import (
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CODEMONK"

// parseEnv overlays cfg with CODEMONK_* variables. Unset or empty variables
// leave the value alone. Durations accept "90s" style strings.
func parseEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	strs := map[string]*string{
		"server_url":         &cfg.ServerURL,
		"credential_store":   &cfg.CredentialStore,
		"database_path":      &cfg.DatabasePath,
		"redis_addr":         &cfg.RedisAddr,
		"redis_password":     &cfg.RedisPassword,
		"validation_profile": &cfg.ValidationProfile,
		"log_level":          &cfg.LogLevel,
		"log_format":         &cfg.LogFormat,
	}
	for key, dst := range strs {
		if err := v.BindEnv(key); err != nil {
			panic(err)
		}
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	durations := map[string]*time.Duration{
		"online_check_interval": &cfg.OnlineCheckInterval,
		"probe_retry_delay":     &cfg.ProbeRetryDelay,
		"otp_resend_cooldown":   &cfg.OTPResendCooldown,
		"request_timeout":       &cfg.RequestTimeout,
	}
	for key, dst := range durations {
		if err := v.BindEnv(key); err != nil {
			panic(err)
		}
		if !v.IsSet(key) {
			continue
		}
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			panic(err)
		}
		*dst = d
	}
}
