package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/codemonk/internal/flagx"
	"github.com/dmitrijs2005/codemonk/internal/timex"
)

// JSONConfig is the on-disk shape. Durations accept "90s" or nanoseconds;
// absent keys keep the current value.
type JSONConfig struct {
	Addr            *string         `json:"addr"`
	SecretKey       *string         `json:"secret_key"`
	OTPTTL          *timex.Duration `json:"otp_ttl"`
	OTPMaxAttempts  *int            `json:"otp_max_attempts"`
	VerificationTTL *timex.Duration `json:"verification_ttl"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
}

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

	setString(&cfg.Addr, jc.Addr)
	setString(&cfg.SecretKey, jc.SecretKey)
	setDuration(&cfg.OTPTTL, jc.OTPTTL)
	if jc.OTPMaxAttempts != nil {
		cfg.OTPMaxAttempts = *jc.OTPMaxAttempts
	}
	setDuration(&cfg.VerificationTTL, jc.VerificationTTL)
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
