package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/codemonk/internal/client/api"
	"github.com/dmitrijs2005/codemonk/internal/client/models"
	"github.com/dmitrijs2005/codemonk/internal/client/validate"
	"github.com/dmitrijs2005/codemonk/internal/logging"
)

const (
	msgLoginInProgress = "A sign-in is already in progress."
	msgNoUser          = "The server did not return an account. Please try again."
	msgAlreadySignedIn = "You are already signed in. Log out first to switch accounts."
	msgNotSignedIn     = "You are not signed in."
	msgSaveCredential  = "Signed in, but the session could not be saved on this device. Please try again."
	msgLoggedOut       = "You have been logged out."
	msgRegistered      = "Registration successful. Please log in."
)

// CredentialStore is the persisted bearer token the store owns.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Erase(ctx context.Context) error
}

// Store holds the process-wide authentication state.
type Store struct {
	client    api.Client
	creds     CredentialStore
	logger    logging.Logger
	retry     RetryPolicy
	onExpired func()

	initOnce sync.Once

	mu        sync.Mutex
	status    Status
	user      *models.User
	lastError string
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithRetryPolicy overrides the startup probe retry bounds.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *Store) { s.retry = p }
}

// WithExpiredHook registers f to run when a 401 ends an authenticated
// session. Callers use it to send the user back to the sign-in entry point.
func WithExpiredHook(f func()) Option {
	return func(s *Store) { s.onExpired = f }
}

// NewStore builds a store in StatusUnknown. Install HandleUnauthorized on the
// transport so any 401 reaches it.
func NewStore(client api.Client, creds CredentialStore, opts ...Option) *Store {
	s := &Store{
		client: client,
		creds:  creds,
		logger: logging.Nop(),
		retry:  DefaultRetryPolicy(),
		status: StatusUnknown,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("component", "session")
	return s
}

// Init runs the startup probe. Only the first call probes; concurrent and
// later callers wait for it and get the resulting snapshot.
//
// Call Init before Login. A 401 answering the probe erases whatever
// credential is stored at that moment, including one a concurrent Login has
// just saved.
func (s *Store) Init(ctx context.Context) Snapshot {
	s.initOnce.Do(func() { s.probe(ctx) })
	return s.Snapshot()
}

func (s *Store) probe(ctx context.Context) {
	token, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Warn(ctx, "reading stored credential failed", "error", err)
		token = ""
	}
	hasCredential := token != ""

	var (
		user     *models.User
		attempts int
	)
	err = retry.Do(ctx, s.retry.backoff(), func(ctx context.Context) error {
		attempts++
		u, err := s.client.Me(ctx)
		if err == nil {
			user = u
			return nil
		}
		// Only a stored credential is worth a second look after a transient
		// failure; anonymous visitors settle immediately.
		if hasCredential && isTransient(err) {
			s.logger.Warn(ctx, "session probe failed, will retry", "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return err
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	// A login or 401 that landed while the probe was running wins.
	if s.status != StatusUnknown {
		return
	}
	if err != nil {
		s.status = StatusUnauthenticated
		s.user = nil
		s.logger.Info(ctx, "session probe settled unauthenticated", "attempts", attempts, "kind", api.KindOf(err))
		return
	}
	s.status = StatusAuthenticated
	s.user = user.Clone()
	s.logger.Info(ctx, "session restored", "user_id", user.ID, "role", user.Role)
}

func isTransient(err error) bool {
	return errors.Is(err, api.ErrNetwork) || errors.Is(err, api.ErrServer)
}

// Login signs in with email and password. A second call while one is in
// flight fails immediately instead of queuing. Callers should let Init settle
// first.
func (s *Store) Login(ctx context.Context, email, password string) models.Result {
	if err := validate.Login(email, password); err != nil {
		fe := validate.FieldErrors(err)
		r := models.Fail(models.KindClientValidation, validate.Primary(fe), fe)
		s.setLastError(r.Message)
		return r
	}

	s.mu.Lock()
	switch s.status {
	case StatusLoggingIn:
		s.mu.Unlock()
		return models.Fail(models.KindState, msgLoginInProgress, nil)
	case StatusAuthenticated:
		s.mu.Unlock()
		return models.Fail(models.KindState, msgAlreadySignedIn, nil)
	}
	s.status = StatusLoggingIn
	s.user = nil
	s.mu.Unlock()

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		r := api.ResultOf(err, "")
		s.logger.Info(ctx, "login failed", "kind", r.Kind, "error", err)
		s.settleUnauthenticated(r.Message)
		return r
	}

	if res == nil || res.User == nil {
		s.logger.Error(ctx, "login response carried no user")
		s.settleUnauthenticated(msgNoUser)
		return models.Fail(models.KindServer, msgNoUser, nil)
	}

	if res.Token != "" {
		if err := s.creds.Save(ctx, res.Token); err != nil {
			s.logger.Error(ctx, "saving credential failed", "error", err)
			s.settleUnauthenticated(msgSaveCredential)
			return models.Fail(models.KindState, msgSaveCredential, nil)
		}
	}

	s.mu.Lock()
	s.status = StatusAuthenticated
	s.user = res.User.Clone()
	s.lastError = ""
	s.mu.Unlock()

	s.logger.Info(ctx, "login succeeded", "user_id", res.User.ID, "role", res.User.Role)

	msg := res.Message
	if msg == "" {
		msg = "Welcome back!"
	}
	return models.OK(msg)
}

func (s *Store) settleUnauthenticated(lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusUnauthenticated
	s.user = nil
	s.lastError = lastError
}

// Logout tears the session down locally no matter what the backend says.
// Calling it while signed out only clears any stray credential. It is
// rejected while a login is in flight.
func (s *Store) Logout(ctx context.Context) models.Result {
	s.mu.Lock()
	if s.status == StatusLoggingIn {
		s.mu.Unlock()
		return models.Fail(models.KindState, msgLoginInProgress, nil)
	}
	wasAuthenticated := s.status == StatusAuthenticated
	s.status = StatusUnauthenticated
	s.user = nil
	s.lastError = ""
	s.mu.Unlock()

	// Local state is already torn down, so a 401 here does not count as an
	// expired session. The credential is still stored and authenticates the
	// notification.
	if wasAuthenticated {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Warn(ctx, "logout notification failed", "error", err)
		}
	}

	if err := s.creds.Erase(ctx); err != nil {
		s.logger.Error(ctx, "erasing credential failed", "error", err)
	}

	if wasAuthenticated {
		s.logger.Info(ctx, "logged out")
	}
	return models.OK(msgLoggedOut)
}

// Register posts a profile. It never signs the caller in. A rejected or
// expired verification token is reported with KindExpired.
func (s *Store) Register(ctx context.Context, req models.RegistrationRequest) models.Result {
	msg, err := s.client.Register(ctx, req)
	if err != nil {
		s.logger.Info(ctx, "registration rejected", "kind", api.KindOf(err), "error", err)
		r := api.ResultOf(err, "")
		// The verification token is the only credential this call carries.
		if api.IsExpired(err) || api.StatusOf(err) == http.StatusForbidden {
			r.Kind = models.KindExpired
		}
		return r
	}
	if msg == "" {
		msg = msgRegistered
	}
	s.logger.Info(ctx, "registration accepted", "email", req.Email)
	return models.OK(msg)
}

// RefreshUser re-runs the probe. Failures leave the status alone; a 401 is
// handled by HandleUnauthorized like everywhere else.
func (s *Store) RefreshUser(ctx context.Context) models.Result {
	u, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Warn(ctx, "refreshing user failed", "kind", api.KindOf(err), "error", err)
		return api.ResultOf(err, "")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusLoggingIn {
		return models.Fail(models.KindState, msgLoginInProgress, nil)
	}
	s.status = StatusAuthenticated
	s.user = u.Clone()
	s.lastError = ""
	return models.OK("Profile refreshed.")
}

// UpdateUser replaces the cached user with one the backend already
// confirmed. No request is made.
func (s *Store) UpdateUser(u *models.User) models.Result {
	if u == nil {
		return models.Fail(models.KindState, "No user to apply.", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuthenticated {
		return models.Fail(models.KindState, msgNotSignedIn, nil)
	}
	s.user = u.Clone()
	return models.OK("Profile updated.")
}

// UpdateProfile sends a profile edit and applies the confirmed profile.
func (s *Store) UpdateProfile(ctx context.Context, patch models.ProfilePatch) models.Result {
	if !s.IsAuthenticated() {
		return models.Fail(models.KindState, msgNotSignedIn, nil)
	}
	if patch.Phone != "" {
		if err := validate.Phone(patch.Phone); err != nil {
			return models.Fail(models.KindClientValidation, err.Error(), map[string]string{"phone": err.Error()})
		}
	}
	if patch.WhatsApp != "" {
		if err := validate.Phone(patch.WhatsApp); err != nil {
			return models.Fail(models.KindClientValidation, err.Error(), map[string]string{"whatsapp": err.Error()})
		}
	}

	u, err := s.client.UpdateProfile(ctx, patch)
	if err != nil {
		return api.ResultOf(err, "")
	}
	return s.UpdateUser(u)
}

// HandleUnauthorized is the global reaction to a 401 from any endpoint: the
// credential goes, the session drops to unauthenticated, and an authenticated
// session reports expiry through the hook.
func (s *Store) HandleUnauthorized(ctx context.Context) {
	if err := s.creds.Erase(ctx); err != nil {
		s.logger.Error(ctx, "erasing credential after 401 failed", "error", err)
	}

	s.mu.Lock()
	wasAuthenticated := s.status == StatusAuthenticated
	// A login in flight settles its own state.
	if s.status != StatusLoggingIn {
		s.status = StatusUnauthenticated
		s.user = nil
	}
	hook := s.onExpired
	s.mu.Unlock()

	if wasAuthenticated {
		s.logger.Info(ctx, "session expired")
		if hook != nil {
			hook()
		}
	}
}

// ClearError forgets the last error message.
func (s *Store) ClearError() {
	s.setLastError("")
}

func (s *Store) setLastError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, User: s.user.Clone(), LastError: s.lastError}
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.Clone()
}

func (s *Store) IsAuthenticated() bool {
	return s.Status() == StatusAuthenticated
}

func (s *Store) Loading() bool {
	return s.Status() == StatusLoggingIn
}

func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
