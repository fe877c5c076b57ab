package registration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/codemonk/internal/client/api"
	"github.com/dmitrijs2005/codemonk/internal/client/models"
	"github.com/dmitrijs2005/codemonk/internal/client/validate"
	"github.com/dmitrijs2005/codemonk/internal/logging"
)

// DefaultResendCooldown is the wait between two OTP sends.
const DefaultResendCooldown = 60 * time.Second

const (
	msgBusy             = "Please wait for the current request to finish."
	msgVerifyExpired    = "This code has expired. Request a new one."
	msgMissingToken     = "The server did not confirm your email. Please try again."
	msgSessionExpired   = "Your email verification has expired. Please verify your email again."
	msgRegistered       = "Registration successful. Please log in."
	msgAlreadySubmitted = "Registration is already complete."
)

// OTPClient is the part of the backend the flow talks to directly.
type OTPClient interface {
	SendOTP(ctx context.Context, email, name string) (string, error)
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResendOTP(ctx context.Context, email, name string) (string, error)
}

// Registrar posts the finished profile. session.Store implements it.
type Registrar interface {
	Register(ctx context.Context, req models.RegistrationRequest) models.Result
}

// Flow is one pass through the registration steps. It is safe for
// concurrent use, but only one network operation runs at a time.
type Flow struct {
	otp       OTPClient
	registrar Registrar
	rules     validate.Rules
	logger    logging.Logger
	now       func() time.Time

	mu        sync.Mutex
	state     State
	draft     Draft
	busy      bool
	countdown *countdown
}

type Option func(*Flow)

// WithRules selects the validation ruleset for the profile form.
func WithRules(r validate.Rules) Option {
	return func(f *Flow) { f.rules = r }
}

func WithLogger(l logging.Logger) Option {
	return func(f *Flow) { f.logger = l }
}

// WithClock replaces time.Now for the resend countdown and token expiry.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// WithResendCooldown overrides DefaultResendCooldown. Zero disables the wait.
func WithResendCooldown(d time.Duration) Option {
	return func(f *Flow) { f.countdown = newCountdown(d) }
}

// NewFlow starts a flow in StateCollectingEmail.
func NewFlow(otp OTPClient, registrar Registrar, opts ...Option) *Flow {
	f := &Flow{
		otp:       otp,
		registrar: registrar,
		rules:     validate.StrictRules(),
		logger:    logging.Nop(),
		now:       time.Now,
		state:     StateCollectingEmail,
		countdown: newCountdown(DefaultResendCooldown),
	}
	for _, o := range opts {
		o(f)
	}
	f.logger = f.logger.With("component", "registration")
	return f
}

// begin claims the flow for one network operation if it is in want.
func (f *Flow) begin(want State) (Draft, models.Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return Draft{}, models.Fail(models.KindState, msgBusy, nil), false
	}
	if f.state != want {
		return Draft{}, f.wrongState(want), false
	}
	f.busy = true
	return f.draft, models.Result{}, true
}

func (f *Flow) wrongState(want State) models.Result {
	if f.state == StateSubmitted {
		return models.Fail(models.KindState, msgAlreadySubmitted, nil)
	}
	return models.Fail(models.KindState, fmt.Sprintf("This step is not available right now (%s, expected %s).", f.state, want), nil)
}

// end must run with f.mu held.
func (f *Flow) end() {
	f.busy = false
}

// SendOTP asks the backend to email a code to email. name is passed along
// for the greeting and prefills the profile form.
func (f *Flow) SendOTP(ctx context.Context, email, name string) models.Result {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if err := validate.Email(email); err != nil {
		return clientFailure("email", err)
	}

	if _, r, ok := f.begin(StateCollectingEmail); !ok {
		return r
	}

	msg, err := f.otp.SendOTP(ctx, email, name)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.end()

	if err != nil {
		f.logger.Info(ctx, "send otp rejected", "kind", api.KindOf(err), "error", err)
		return api.ResultOf(err, "")
	}

	f.state = StateOtpSent
	f.draft = Draft{Email: email, Name: name}
	f.countdown.start(f.now())
	f.logger.Info(ctx, "otp sent", "email", email)

	if msg == "" {
		msg = fmt.Sprintf("We sent a 6-digit code to %s.", email)
	}
	return models.OK(msg)
}

// Verify submits the emailed code. Malformed codes never reach the backend.
func (f *Flow) Verify(ctx context.Context, code string) models.Result {
	code = strings.TrimSpace(code)
	if err := validate.OTP(code); err != nil {
		return clientFailure("otp", err)
	}

	draft, r, ok := f.begin(StateOtpSent)
	if !ok {
		return r
	}

	token, err := f.otp.VerifyOTP(ctx, draft.Email, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.end()

	if err != nil {
		r := api.ResultOf(err, "")
		if api.IsExpired(err) {
			r.Kind = models.KindExpired
			if r.Message == models.DefaultFailureMessage {
				r.Message = msgVerifyExpired
			}
		}
		f.logger.Info(ctx, "otp verification failed", "kind", r.Kind, "error", err)
		return r
	}
	if token == "" {
		f.logger.Warn(ctx, "otp verified without a verification token")
		return models.Fail(models.KindServer, msgMissingToken, nil)
	}

	f.state = StateEmailVerified
	f.draft.VerificationToken = token
	if f.draft.Profile.FullName == "" {
		f.draft.Profile.FullName = f.draft.Name
	}
	f.logger.Info(ctx, "email verified", "email", f.draft.Email)
	return models.OK("Email verified. Complete your profile.")
}

// Resend requests a fresh code once the countdown has run out.
func (f *Flow) Resend(ctx context.Context) models.Result {
	f.mu.Lock()
	if f.state == StateOtpSent && !f.busy && !f.countdown.ready(f.now()) {
		left := f.countdown.remaining(f.now())
		f.mu.Unlock()
		return models.Fail(models.KindState, fmt.Sprintf("You can request a new code in %d seconds.", int(left.Seconds())), nil)
	}
	f.mu.Unlock()

	draft, r, ok := f.begin(StateOtpSent)
	if !ok {
		return r
	}

	msg, err := f.otp.ResendOTP(ctx, draft.Email, draft.Name)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.end()

	if err != nil {
		f.logger.Info(ctx, "resend otp rejected", "kind", api.KindOf(err), "error", err)
		return api.ResultOf(err, "")
	}
	f.countdown.start(f.now())
	if msg == "" {
		msg = fmt.Sprintf("A new code is on its way to %s.", draft.Email)
	}
	return models.OK(msg)
}

// SubmitProfile validates every field locally and only then posts the
// profile together with the verification token.
func (f *Flow) SubmitProfile(ctx context.Context, fields models.ProfileFields) models.Result {
	fields.FullName = strings.TrimSpace(fields.FullName)
	fields.StudentID = validate.NormalizeIdentifier(fields.StudentID)
	fields.Phone = strings.TrimSpace(fields.Phone)
	fields.WhatsApp = strings.TrimSpace(fields.WhatsApp)

	draft, r, ok := f.begin(StateEmailVerified)
	if !ok {
		return r
	}

	if err := f.rules.Profile(fields); err != nil {
		f.mu.Lock()
		f.keepDraft(fields)
		f.end()
		f.mu.Unlock()
		fe := validate.FieldErrors(err)
		return models.Fail(models.KindClientValidation, validate.Primary(fe), fe)
	}

	if tokenExpired(draft.VerificationToken, f.now()) {
		f.mu.Lock()
		f.restart()
		f.end()
		f.mu.Unlock()
		f.logger.Info(ctx, "verification token expired before submit", "email", draft.Email)
		return models.Fail(models.KindExpired, msgSessionExpired, nil)
	}

	req := models.RegistrationRequest{
		Email:             draft.Email,
		FullName:          fields.FullName,
		StudentID:         fields.StudentID,
		Password:          fields.Password,
		Phone:             fields.Phone,
		WhatsApp:          fields.WhatsApp,
		Branch:            fields.Branch,
		Year:              fields.Year,
		VerificationToken: draft.VerificationToken,
	}
	res := f.registrar.Register(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()
	defer f.end()

	if res.Success {
		f.state = StateSubmitted
		f.draft.VerificationToken = ""
		f.keepDraft(fields)
		if res.Message == "" {
			res.Message = msgRegistered
		}
		return res
	}

	if verificationRejected(res) {
		f.restart()
		res.Kind = models.KindExpired
		res.Message = msgSessionExpired
		return res
	}

	f.keepDraft(fields)
	return res
}

// keepDraft remembers what was typed, minus secrets, for the next attempt.
// It must run with f.mu held.
func (f *Flow) keepDraft(fields models.ProfileFields) {
	f.draft.Profile = fields
	f.draft.Profile.Password = ""
	f.draft.Profile.ConfirmPassword = ""
}

// Back returns to CollectingEmail, discarding the verification token and
// the OTP state. The email stays as a prefill.
func (f *Flow) Back() models.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return models.Fail(models.KindState, msgBusy, nil)
	}
	switch f.state {
	case StateOtpSent, StateEmailVerified:
		f.restart()
		return models.OK("")
	default:
		return f.wrongState(StateEmailVerified)
	}
}

// restart must run with f.mu held.
func (f *Flow) restart() {
	f.state = StateCollectingEmail
	f.draft = Draft{Email: f.draft.Email, Name: f.draft.Name}
	f.countdown.reset()
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Email is the address being verified, or the last one tried.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Email
}

// Draft returns a copy of the collected data.
func (f *Flow) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// ResendIn is the time left before Resend is allowed; zero outside OtpSent.
func (f *Flow) ResendIn() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateOtpSent {
		return 0
	}
	return f.countdown.remaining(f.now())
}

func (f *Flow) CanResend() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateOtpSent && !f.busy && f.countdown.ready(f.now())
}

// Busy reports whether a network operation is in flight.
func (f *Flow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func clientFailure(field string, err error) models.Result {
	fe := validate.FieldErrors(err)
	if msg, ok := fe["form"]; ok {
		delete(fe, "form")
		fe[field] = msg
	}
	return models.Fail(models.KindClientValidation, fe[field], fe)
}

func verificationRejected(res models.Result) bool {
	switch res.Kind {
	case models.KindExpired, models.KindUnauthorized:
		return true
	}
	if _, ok := res.FieldErrors["verificationToken"]; ok {
		return true
	}
	return strings.Contains(strings.ToLower(res.Message), "expired")
}

// tokenExpired reports whether token is a JWT whose exp has passed. Opaque
// tokens are left for the backend to judge.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
