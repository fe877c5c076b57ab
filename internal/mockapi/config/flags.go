package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/codemonk/internal/flagx"
)

// parseFlags applies the flags this package owns:
//
//	-a string   listen address
//	-s string   verification token secret
//	-t int      OTP lifetime, seconds
//	-m int      OTP attempts
//	-v int      verification token lifetime, minutes
//	-l string   log level
//	-f string   log format (text, json, zap)
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-m", "-v", "-l", "-f"})

	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "verification token secret")
	otpTTL := fs.Int("t", int(cfg.OTPTTL.Seconds()), "OTP lifetime (in seconds)")
	fs.IntVar(&cfg.OTPMaxAttempts, "m", cfg.OTPMaxAttempts, "OTP attempts")
	verificationTTL := fs.Int("v", int(cfg.VerificationTTL.Minutes()), "verification token lifetime (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OTPTTL = time.Duration(*otpTTL) * time.Second
	cfg.VerificationTTL = time.Duration(*verificationTTL) * time.Minute
}
