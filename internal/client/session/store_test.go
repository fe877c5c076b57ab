package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/codemonk/internal/client/api"
	"github.com/dmitrijs2005/codemonk/internal/client/credentials"
	"github.com/dmitrijs2005/codemonk/internal/client/models"
)

// ---- fake client ----

// fakeClient implements api.Client. Like the HTTP client, it runs the
// unauthorized hook before returning an ErrUnauthorized error.
type fakeClient struct {
	mu sync.Mutex

	meResults []meResult
	meCalls   int

	LoginRet   *api.LoginResult
	LoginErr   error
	LoginBlock chan struct{}
	loginCalls int

	LogoutErr   error
	logoutCalls int

	RegisterMsg  string
	RegisterErr  error
	LastRegister models.RegistrationRequest

	UpdateRet   *models.User
	UpdateErr   error
	LastPatch   models.ProfilePatch
	updateCalls int

	onUnauthorized func(ctx context.Context)
}

type meResult struct {
	user *models.User
	err  error
}

func (f *fakeClient) unauthorized(ctx context.Context, err error) error {
	if errors.Is(err, api.ErrUnauthorized) && f.onUnauthorized != nil {
		f.onUnauthorized(ctx)
	}
	return err
}

func (f *fakeClient) Me(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	i := f.meCalls
	f.meCalls++
	f.mu.Unlock()

	if i >= len(f.meResults) {
		return nil, f.unauthorized(ctx, unauthorizedErr())
	}
	r := f.meResults[i]
	if r.err != nil {
		return nil, f.unauthorized(ctx, r.err)
	}
	return r.user.Clone(), nil
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*api.LoginResult, error) {
	f.mu.Lock()
	f.loginCalls++
	block := f.LoginBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.LoginErr != nil {
		return nil, f.unauthorized(ctx, f.LoginErr)
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.logoutCalls++
	f.mu.Unlock()
	if f.LogoutErr != nil {
		return f.unauthorized(ctx, f.LogoutErr)
	}
	return nil
}

func (f *fakeClient) Register(ctx context.Context, req models.RegistrationRequest) (string, error) {
	f.LastRegister = req
	return f.RegisterMsg, f.RegisterErr
}

func (f *fakeClient) SendOTP(ctx context.Context, email, name string) (string, error) {
	return "", nil
}

func (f *fakeClient) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	return "", nil
}

func (f *fakeClient) ResendOTP(ctx context.Context, email, name string) (string, error) {
	return "", nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	f.updateCalls++
	f.LastPatch = patch
	if f.UpdateErr != nil {
		return nil, f.unauthorized(ctx, f.UpdateErr)
	}
	return f.UpdateRet, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func (f *fakeClient) MeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meCalls
}

func (f *fakeClient) LoginCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls
}

// failingCreds fails Save so the login rollback path can be observed.
type failingCreds struct {
	*credentials.MemoryStore
}

func (failingCreds) Save(context.Context, string) error { return errors.New("disk full") }

// ---- helpers ----

func unauthorizedErr() error {
	return &api.Error{Kind: api.ErrUnauthorized, Status: 401, Message: "Not authenticated"}
}

func serverErr() error {
	return &api.Error{Kind: api.ErrServer, Status: 503, Message: "Service unavailable"}
}

func networkErr() error {
	return &api.Error{Kind: api.ErrNetwork, Message: "Unable to reach the server.", Err: errors.New("connection refused")}
}

func student() *models.User {
	return &models.User{ID: "1", Name: "Ada", Email: "a@b.com", Role: models.RoleStudent}
}

var noDelay = RetryPolicy{MaxAttempts: 2, Delay: 0}

func newTestStore(t *testing.T, fc *fakeClient, token string, opts ...Option) (*Store, *credentials.MemoryStore) {
	t.Helper()
	creds := credentials.NewMemoryStore()
	if token != "" {
		require.NoError(t, creds.Save(context.Background(), token))
	}
	s := NewStore(fc, creds, append([]Option{WithRetryPolicy(noDelay)}, opts...)...)
	fc.onUnauthorized = s.HandleUnauthorized
	return s, creds
}

func authenticatedStore(t *testing.T, fc *fakeClient, opts ...Option) (*Store, *credentials.MemoryStore) {
	t.Helper()
	fc.meResults = append([]meResult{{user: student()}}, fc.meResults...)
	s, creds := newTestStore(t, fc, "T", opts...)
	require.Equal(t, StatusAuthenticated, s.Init(context.Background()).Status)
	return s, creds
}

func requireInvariant(t *testing.T, s *Store) {
	t.Helper()
	snap := s.Snapshot()
	require.Equal(t, snap.User != nil, snap.Status == StatusAuthenticated,
		"user/status invariant broken: status=%s user=%v", snap.Status, snap.User)
}

func storedToken(t *testing.T, creds *credentials.MemoryStore) string {
	t.Helper()
	tok, err := creds.Load(context.Background())
	require.NoError(t, err)
	return tok
}

// ---- Init ----

func TestInit_NoCredential_401_Unauthenticated(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{err: unauthorizedErr()}}}
	s, _ := newTestStore(t, fc, "")

	require.Equal(t, StatusUnknown, s.Status())

	snap := s.Init(context.Background())
	require.Equal(t, StatusUnauthenticated, snap.Status)
	require.Nil(t, snap.User)
	require.Equal(t, 1, fc.MeCalls())
	requireInvariant(t, s)
}

func TestInit_StoredCredential_Restores(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{user: student()}}}
	s, _ := newTestStore(t, fc, "T")

	snap := s.Init(context.Background())
	require.Equal(t, StatusAuthenticated, snap.Status)
	require.Equal(t, models.UserID("1"), snap.User.ID)
	requireInvariant(t, s)
}

func TestInit_ServerFailure_RetriesExactlyOnce(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{
		{err: serverErr()},
		{err: serverErr()},
		{user: student()}, // must never be reached
	}}
	s, _ := newTestStore(t, fc, "T")

	snap := s.Init(context.Background())
	require.Equal(t, StatusUnauthenticated, snap.Status)
	require.Equal(t, 2, fc.MeCalls())
	requireInvariant(t, s)
}

func TestInit_TransientBlip_RecoversOnRetry(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{
		{err: networkErr()},
		{user: student()},
	}}
	s, _ := newTestStore(t, fc, "T")

	snap := s.Init(context.Background())
	require.Equal(t, StatusAuthenticated, snap.Status)
	require.Equal(t, 2, fc.MeCalls())
}

func TestInit_TransientFailureWithoutCredential_NoRetry(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{
		{err: networkErr()},
		{user: student()},
	}}
	s, _ := newTestStore(t, fc, "")

	require.Equal(t, StatusUnauthenticated, s.Init(context.Background()).Status)
	require.Equal(t, 1, fc.MeCalls())
}

func TestInit_ClientErrorWithCredential_NoRetry(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{
		{err: &api.Error{Kind: api.ErrValidation, Status: 400, Message: "bad"}},
		{user: student()},
	}}
	s, _ := newTestStore(t, fc, "T")

	require.Equal(t, StatusUnauthenticated, s.Init(context.Background()).Status)
	require.Equal(t, 1, fc.MeCalls())
}

func TestInit_WaitsForDelayBetweenAttempts(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{err: serverErr()}, {err: serverErr()}}}
	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Save(context.Background(), "T"))
	s := NewStore(fc, creds, WithRetryPolicy(RetryPolicy{MaxAttempts: 2, Delay: 50 * time.Millisecond}))

	start := time.Now()
	s.Init(context.Background())
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	require.Equal(t, 2, fc.MeCalls())
}

func TestInit_RunsOnce(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{user: student()}}}
	s, _ := newTestStore(t, fc, "T")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, StatusAuthenticated, s.Init(context.Background()).Status)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, fc.MeCalls())
}

// ---- Login ----

func TestLogin_Success_StoresCredential(t *testing.T) {
	fc := &fakeClient{
		meResults: []meResult{{err: unauthorizedErr()}},
		LoginRet:  &api.LoginResult{User: student(), Token: "T", Message: "Login successful"},
	}
	s, creds := newTestStore(t, fc, "")
	s.Init(context.Background())

	res := s.Login(context.Background(), "a@b.com", "Abc12345")
	require.True(t, res.Success)
	require.Equal(t, "Login successful", res.Message)

	snap := s.Snapshot()
	require.Equal(t, StatusAuthenticated, snap.Status)
	require.Equal(t, models.UserID("1"), snap.User.ID)
	require.Empty(t, snap.LastError)
	require.Equal(t, "T", storedToken(t, creds))
	requireInvariant(t, s)
}

func TestLogin_WithoutToken_KeepsCredentialEmpty(t *testing.T) {
	fc := &fakeClient{LoginRet: &api.LoginResult{User: student()}}
	s, creds := newTestStore(t, fc, "")

	res := s.Login(context.Background(), "a@b.com", "Abc12345")
	require.True(t, res.Success)
	require.NotEmpty(t, res.Message)
	require.Equal(t, "", storedToken(t, creds))
	require.True(t, s.IsAuthenticated())
}

func TestLogin_ClientValidation_NoRequest(t *testing.T) {
	fc := &fakeClient{}
	s, _ := newTestStore(t, fc, "")

	res := s.Login(context.Background(), "not-an-email", "")
	require.False(t, res.Success)
	require.Equal(t, models.KindClientValidation, res.Kind)
	require.Contains(t, res.FieldErrors, "email")
	require.Contains(t, res.FieldErrors, "password")
	require.Equal(t, res.Message, s.LastError())
	require.Equal(t, 0, fc.LoginCalls())
}

func TestLogin_Rejected_SetsLastError(t *testing.T) {
	var expired int
	fc := &fakeClient{
		meResults: []meResult{{err: unauthorizedErr()}},
		LoginErr:  &api.Error{Kind: api.ErrUnauthorized, Status: 401, Message: "Invalid email or password"},
	}
	s, _ := newTestStore(t, fc, "", WithExpiredHook(func() { expired++ }))
	s.Init(context.Background())

	res := s.Login(context.Background(), "a@b.com", "Wrong1234")
	require.False(t, res.Success)
	require.Equal(t, models.KindUnauthorized, res.Kind)
	require.Equal(t, "Invalid email or password", res.Message)
	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Equal(t, "Invalid email or password", s.LastError())
	require.Zero(t, expired)
	requireInvariant(t, s)
}

func TestLogin_NetworkFailure_GenericMessage(t *testing.T) {
	fc := &fakeClient{LoginErr: errors.New("boom")}
	s, _ := newTestStore(t, fc, "")

	res := s.Login(context.Background(), "a@b.com", "Abc12345")
	require.False(t, res.Success)
	require.NotEmpty(t, res.Message)
	require.Equal(t, res.Message, s.LastError())
}

func TestLogin_ReentryRejected(t *testing.T) {
	release := make(chan struct{})
	fc := &fakeClient{
		LoginRet:   &api.LoginResult{User: student(), Token: "T"},
		LoginBlock: release,
	}
	s, _ := newTestStore(t, fc, "")

	done := make(chan models.Result)
	go func() { done <- s.Login(context.Background(), "a@b.com", "Abc12345") }()

	require.Eventually(t, func() bool { return fc.LoginCalls() == 1 }, time.Second, time.Millisecond)
	require.True(t, s.Loading())
	require.Nil(t, s.User())

	second := s.Login(context.Background(), "a@b.com", "Abc12345")
	require.False(t, second.Success)
	require.Equal(t, models.KindState, second.Kind)

	close(release)
	first := <-done
	require.True(t, first.Success)
	require.Equal(t, 1, fc.LoginCalls())
	requireInvariant(t, s)
}

func TestLogin_WhileAuthenticated_Rejected(t *testing.T) {
	fc := &fakeClient{}
	s, _ := authenticatedStore(t, fc)

	res := s.Login(context.Background(), "a@b.com", "Abc12345")
	require.Equal(t, models.KindState, res.Kind)
	require.Equal(t, 0, fc.LoginCalls())
}

func TestLogin_CredentialSaveFailure(t *testing.T) {
	fc := &fakeClient{LoginRet: &api.LoginResult{User: student(), Token: "T"}}
	s := NewStore(fc, failingCreds{credentials.NewMemoryStore()}, WithRetryPolicy(noDelay))

	res := s.Login(context.Background(), "a@b.com", "Abc12345")
	require.False(t, res.Success)
	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Equal(t, res.Message, s.LastError())
	requireInvariant(t, s)
}

func TestLogin_MissingUserInResponse_Fails(t *testing.T) {
	tests := []struct {
		name string
		ret  *api.LoginResult
	}{
		{name: "nil result", ret: nil},
		{name: "nil user", ret: &api.LoginResult{Token: "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{LoginRet: tt.ret}
			s, creds := newTestStore(t, fc, "")

			res := s.Login(context.Background(), "a@b.com", "Abc12345")
			require.False(t, res.Success)
			require.Equal(t, models.KindServer, res.Kind)
			require.Equal(t, StatusUnauthenticated, s.Status())
			require.Equal(t, "", storedToken(t, creds))
			requireInvariant(t, s)
		})
	}
}

func TestLogin_AfterInitSettles_KeepsNewCredential(t *testing.T) {
	fc := &fakeClient{
		meResults: []meResult{{err: unauthorizedErr()}},
		LoginRet:  &api.LoginResult{User: student(), Token: "T2"},
	}
	s, creds := newTestStore(t, fc, "T1")

	require.Equal(t, StatusUnauthenticated, s.Init(context.Background()).Status)
	require.Equal(t, "", storedToken(t, creds))

	require.True(t, s.Login(context.Background(), "a@b.com", "Abc12345").Success)
	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, "T2", storedToken(t, creds))
}

// ---- Logout ----

func TestLogout_WhileLoginInFlight_Rejected(t *testing.T) {
	release := make(chan struct{})
	fc := &fakeClient{
		LoginRet:   &api.LoginResult{User: student(), Token: "T"},
		LoginBlock: release,
	}
	s, creds := newTestStore(t, fc, "")

	done := make(chan models.Result)
	go func() { done <- s.Login(context.Background(), "a@b.com", "Abc12345") }()
	require.Eventually(t, s.Loading, time.Second, time.Millisecond)

	res := s.Logout(context.Background())
	require.False(t, res.Success)
	require.Equal(t, models.KindState, res.Kind)
	require.Equal(t, StatusLoggingIn, s.Status())

	close(release)
	require.True(t, (<-done).Success)
	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, "T", storedToken(t, creds))

	require.True(t, s.Logout(context.Background()).Success)
	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Equal(t, "", storedToken(t, creds))
	require.Equal(t, 1, fc.logoutCalls)
}

func TestLogout_TearsDownEvenWhenAPIFails(t *testing.T) {
	fc := &fakeClient{LogoutErr: networkErr()}
	s, creds := authenticatedStore(t, fc)

	res := s.Logout(context.Background())
	require.True(t, res.Success)
	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Nil(t, s.User())
	require.Equal(t, "", storedToken(t, creds))
	require.Equal(t, 1, fc.logoutCalls)
}

func TestLogout_401DoesNotFireExpiredHook(t *testing.T) {
	var expired int
	fc := &fakeClient{LogoutErr: unauthorizedErr()}
	s, creds := authenticatedStore(t, fc, WithExpiredHook(func() { expired++ }))

	require.True(t, s.Logout(context.Background()).Success)
	require.Zero(t, expired)
	require.Equal(t, "", storedToken(t, creds))
}

func TestLogout_Idempotent(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{err: unauthorizedErr()}}}
	s, creds := newTestStore(t, fc, "")
	s.Init(context.Background())

	// a stray credential left behind by an earlier process
	require.NoError(t, creds.Save(context.Background(), "stale"))

	for i := 0; i < 2; i++ {
		res := s.Logout(context.Background())
		require.True(t, res.Success)
		require.Equal(t, StatusUnauthenticated, s.Status())
		require.Equal(t, "", storedToken(t, creds))
		requireInvariant(t, s)
	}
	require.Zero(t, fc.logoutCalls)
}

// ---- 401 self-heal ----

func TestHandleUnauthorized_ProfileFetch401_SelfHeals(t *testing.T) {
	var expired int
	fc := &fakeClient{}
	s, creds := authenticatedStore(t, fc, WithExpiredHook(func() { expired++ }))
	// the next Me call falls off the script and answers 401

	res := s.RefreshUser(context.Background())
	require.False(t, res.Success)
	require.Equal(t, models.KindUnauthorized, res.Kind)

	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Nil(t, s.User())
	require.Equal(t, "", storedToken(t, creds))
	require.Equal(t, 1, expired)
	requireInvariant(t, s)
}

func TestHandleUnauthorized_UpdateProfile401_SelfHeals(t *testing.T) {
	fc := &fakeClient{UpdateErr: unauthorizedErr()}
	s, creds := authenticatedStore(t, fc)

	res := s.UpdateProfile(context.Background(), models.ProfilePatch{Branch: "CSE"})
	require.False(t, res.Success)
	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Equal(t, "", storedToken(t, creds))
}

func TestHandleUnauthorized_WhileAnonymous_NoHook(t *testing.T) {
	var expired int
	fc := &fakeClient{meResults: []meResult{{err: unauthorizedErr()}}}
	s, _ := newTestStore(t, fc, "stale", WithExpiredHook(func() { expired++ }))

	s.Init(context.Background())
	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Zero(t, expired)
}

// ---- RefreshUser / UpdateUser / UpdateProfile ----

func TestRefreshUser_TransientFailure_KeepsSession(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{err: serverErr()}}}
	s, creds := authenticatedStore(t, fc)

	res := s.RefreshUser(context.Background())
	require.False(t, res.Success)
	require.Equal(t, models.KindServer, res.Kind)
	require.Equal(t, "Service unavailable", res.Message)
	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, "T", storedToken(t, creds))
}

func TestRefreshUser_ReplacesUser(t *testing.T) {
	updated := student()
	updated.Team = "Alpha"
	fc := &fakeClient{meResults: []meResult{{user: updated}}}
	s, _ := authenticatedStore(t, fc)

	require.True(t, s.RefreshUser(context.Background()).Success)
	require.Equal(t, "Alpha", s.User().Team)
}

func TestUpdateUser(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{err: unauthorizedErr()}}}
	s, _ := newTestStore(t, fc, "")
	s.Init(context.Background())

	res := s.UpdateUser(student())
	require.False(t, res.Success)
	require.Equal(t, models.KindState, res.Kind)
	requireInvariant(t, s)

	fc2 := &fakeClient{}
	s2, _ := authenticatedStore(t, fc2)
	patched := student()
	patched.Phone = "9876543210"
	require.True(t, s2.UpdateUser(patched).Success)
	require.Equal(t, "9876543210", s2.User().Phone)

	require.False(t, s2.UpdateUser(nil).Success)
	requireInvariant(t, s2)
}

func TestUser_ReturnsCopy(t *testing.T) {
	fc := &fakeClient{}
	s, _ := authenticatedStore(t, fc)

	u := s.User()
	u.Name = "mutated"
	require.Equal(t, "Ada", s.User().Name)
}

func TestUpdateProfile(t *testing.T) {
	confirmed := student()
	confirmed.Branch = "CSE"
	fc := &fakeClient{UpdateRet: confirmed}
	s, _ := authenticatedStore(t, fc)

	res := s.UpdateProfile(context.Background(), models.ProfilePatch{Phone: "123"})
	require.Equal(t, models.KindClientValidation, res.Kind)
	require.Contains(t, res.FieldErrors, "phone")
	require.Zero(t, fc.updateCalls)

	res = s.UpdateProfile(context.Background(), models.ProfilePatch{Branch: "CSE"})
	require.True(t, res.Success)
	require.Equal(t, "CSE", fc.LastPatch.Branch)
	require.Equal(t, "CSE", s.User().Branch)
}

// ---- Register / ClearError ----

func TestRegister_PassThrough(t *testing.T) {
	fc := &fakeClient{meResults: []meResult{{err: unauthorizedErr()}}}
	s, _ := newTestStore(t, fc, "")
	s.Init(context.Background())

	req := models.RegistrationRequest{Email: "a@b.com", VerificationToken: "V"}
	res := s.Register(context.Background(), req)
	require.True(t, res.Success)
	require.Equal(t, msgRegistered, res.Message)
	require.Equal(t, "V", fc.LastRegister.VerificationToken)
	require.Equal(t, StatusUnauthenticated, s.Status())

	fc.RegisterErr = &api.Error{
		Kind: api.ErrValidation, Status: 400, Message: "Student ID already registered",
		FieldErrors: map[string]string{"studentId": "Student ID already registered"},
	}
	res = s.Register(context.Background(), req)
	require.False(t, res.Success)
	require.Equal(t, models.KindValidation, res.Kind)
	require.Equal(t, "Student ID already registered", res.FieldErrors["studentId"])
	require.Equal(t, StatusUnauthenticated, s.Status())
}

func TestRegister_ExpiredVerification(t *testing.T) {
	for _, apiErr := range []*api.Error{
		{Kind: api.ErrValidation, Status: 410, Message: "gone"},
		{Kind: api.ErrValidation, Status: 403, Message: "Invalid verification token"},
		{Kind: api.ErrValidation, Status: 400, Message: "Verification token expired"},
	} {
		fc := &fakeClient{RegisterErr: apiErr}
		s, _ := newTestStore(t, fc, "")
		res := s.Register(context.Background(), models.RegistrationRequest{VerificationToken: "V"})
		require.Equal(t, models.KindExpired, res.Kind, apiErr.Message)
	}
}

func TestClearError(t *testing.T) {
	fc := &fakeClient{LoginErr: unauthorizedErr()}
	s, _ := newTestStore(t, fc, "")

	s.Login(context.Background(), "a@b.com", "Abc12345")
	require.NotEmpty(t, s.LastError())

	s.ClearError()
	require.Empty(t, s.LastError())
	require.Equal(t, StatusUnauthenticated, s.Status())
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "unknown", StatusUnknown.String())
	require.Equal(t, "authenticated", StatusAuthenticated.String())
	require.Equal(t, "logging-in", StatusLoggingIn.String())
	require.Equal(t, "invalid", Status(42).String())
}
