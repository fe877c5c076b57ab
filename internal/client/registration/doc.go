// Package registration drives the email-OTP gated sign-up flow:
// CollectingEmail, OtpSent, EmailVerified and finally Submitted.
//
// A Flow is single use. Every operation returns a models.Result; failures
// are values and never panic across the package boundary.
package registration
