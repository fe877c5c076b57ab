package registration

import "github.com/dmitrijs2005/codemonk/internal/client/models"

// State is a step of the registration flow.
type State int

const (
	StateCollectingEmail State = iota
	StateOtpSent
	// StateEmailVerified holds a verification token and the frozen email
	// while the profile form is filled in.
	StateEmailVerified
	// StateSubmitted is terminal.
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateCollectingEmail:
		return "collecting-email"
	case StateOtpSent:
		return "otp-sent"
	case StateEmailVerified:
		return "email-verified"
	case StateSubmitted:
		return "submitted"
	default:
		return "invalid"
	}
}

// Draft is the data collected so far.
type Draft struct {
	Email             string
	Name              string
	VerificationToken string
	Profile           models.ProfileFields
}
