package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
	"github.com/dmitrijs2005/codemonk/internal/common"
	"github.com/dmitrijs2005/codemonk/internal/logging"
	"github.com/google/uuid"
)

const maxResponseBytes = 1 << 20

// HTTPClient implements Client against the REST backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient builds a client for baseURL (e.g. "http://localhost:5000/api").
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, errors.New("api: empty base URL")
	}
	if tokens == nil {
		return nil, errors.New("api: nil token source")
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		logger:  logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// SetUnauthorizedHandler installs the hook run on every 401 response.
func (c *HTTPClient) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *HTTPClient) notifyUnauthorized(ctx context.Context) {
	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		h(ctx)
	}
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &env); err != nil {
		return nil, err
	}
	var data userData
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, &Error{Kind: ErrServer, Message: msgServer, Err: errors.New("response without user")}
	}
	return data.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &env); err != nil {
		return nil, err
	}
	var data userData
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, &Error{Kind: ErrServer, Message: msgServer, Err: errors.New("response without user")}
	}
	token := env.Token
	if token == "" {
		token = data.Token
	}
	return &LoginResult{User: data.User, Token: token, Message: env.Message}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	var env envelope
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, &env)
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegistrationRequest) (string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) SendOTP(ctx context.Context, email, name string) (string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/otp/send-otp", otpRequest{Email: email, Name: name}, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/otp/verify-otp", verifyOTPRequest{Email: email, OTP: otp}, &env); err != nil {
		return "", err
	}
	var data verificationData
	if err := decodeData(env, &data); err != nil {
		return "", err
	}
	if data.VerificationToken == "" {
		return "", &Error{Kind: ErrServer, Message: msgServer, Err: errors.New("response without verification token")}
	}
	return data.VerificationToken, nil
}

func (c *HTTPClient) ResendOTP(ctx context.Context, email, name string) (string, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPost, "/otp/resend-otp", otpRequest{Email: email, Name: name}, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	var env envelope
	if err := c.do(ctx, http.MethodPut, "/auth/profile", patch, &env); err != nil {
		return nil, err
	}
	var data userData
	if err := decodeData(env, &data); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, &Error{Kind: ErrServer, Message: msgServer, Err: errors.New("response without user")}
	}
	return data.User, nil
}

// Ping checks backend liveness via GET /health.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var env envelope
	return c.do(ctx, http.MethodGet, "/health", nil, &env)
}

func decodeData(env envelope, v any) error {
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return &Error{Kind: ErrServer, Message: msgServer, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// do performs one round trip and fills out on success. Non-2xx statuses and
// {success:false} bodies become *Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out *envelope) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	log := c.logger.With("request_id", requestID, "method", method, "path", path)

	token, err := c.tokens.Load(ctx)
	if err != nil {
		log.Warn(ctx, "credential read failed, sending anonymous request", "error", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return &Error{Kind: ErrNetwork, Message: msgNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Kind: ErrNetwork, Status: resp.StatusCode, Message: msgNetwork, Err: err}
	}

	var env envelope
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &env)
	}

	log.Debug(ctx, "response", "status", resp.StatusCode, "success", env.Success)

	if resp.StatusCode == http.StatusUnauthorized {
		c.notifyUnauthorized(ctx)
	}

	if resp.StatusCode >= 300 {
		kind := kindForStatus(resp.StatusCode)
		msg := env.primaryMessage()
		if msg == "" {
			msg = fallbackMessage(kind)
		}
		return &Error{Kind: kind, Status: resp.StatusCode, Message: msg, FieldErrors: env.fieldErrors()}
	}

	if decodeErr != nil {
		return &Error{Kind: ErrServer, Status: resp.StatusCode, Message: msgServer, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	// Some routes answer 200 with {success:false}; health checks may send no
	// body at all.
	if len(bytes.TrimSpace(raw)) > 0 && !env.Success {
		msg := env.primaryMessage()
		if msg == "" {
			msg = msgRejected
		}
		return &Error{Kind: ErrValidation, Status: resp.StatusCode, Message: msg, FieldErrors: env.fieldErrors()}
	}

	*out = env
	return nil
}
