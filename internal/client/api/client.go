package api

import (
	"context"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
)

// Client is the backend contract.
type Client interface {
	// Me is the "who am I" probe: GET /auth/me.
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, req models.RegistrationRequest) (string, error)
	SendOTP(ctx context.Context, email, name string) (string, error)
	// VerifyOTP returns the short-lived verification token.
	VerifyOTP(ctx context.Context, email, otp string) (string, error)
	ResendOTP(ctx context.Context, email, name string) (string, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error)
	Ping(ctx context.Context) error
}

// LoginResult is the decoded POST /auth/login response. Token is empty when
// the backend relies on its session cookie only.
type LoginResult struct {
	User    *models.User
	Token   string
	Message string
}

// TokenSource yields the stored bearer credential; "" means anonymous.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}

// UnauthorizedHandler is invoked whenever the backend answers 401.
type UnauthorizedHandler func(ctx context.Context)
