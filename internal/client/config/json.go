package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/codemonk/internal/flagx"
	"github.com/dmitrijs2005/codemonk/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// tell an absent key from an explicit zero.
type JSONConfig struct {
	ServerURL           *string         `json:"server_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	ProbeRetryDelay     *timex.Duration `json:"probe_retry_delay"`
	OTPResendCooldown   *timex.Duration `json:"otp_resend_cooldown"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	CredentialStore     *string         `json:"credential_store"`
	DatabasePath        *string         `json:"database_path"`
	RedisAddr           *string         `json:"redis_addr"`
	RedisPassword       *string         `json:"redis_password"`
	ValidationProfile   *string         `json:"validation_profile"`
	LogLevel            *string         `json:"log_level"`
	LogFormat           *string         `json:"log_format"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)
	setDuration(&cfg.ProbeRetryDelay, jc.ProbeRetryDelay)
	setDuration(&cfg.OTPResendCooldown, jc.OTPResendCooldown)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setString(&cfg.CredentialStore, jc.CredentialStore)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.ValidationProfile, jc.ValidationProfile)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
