// Package mockapi is an in-memory stand-in for the Code Monk REST backend.
// It implements the routes the client depends on with realistic failure
// modes (field errors, expiring codes and tokens, 401 on stale bearers) and
// is used by end-to-end tests and for local development.
package mockapi

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/codemonk/internal/logging"
	"github.com/dmitrijs2005/codemonk/internal/mockapi/config"
)

// Server is the fake backend.
type Server struct {
	cfg    *config.Config
	logger logging.Logger
	store  *memoryStore
	now    func() time.Time
	newOTP func() (string, error)
	engine *gin.Engine
}

type Option func(*Server)

func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock replaces time.Now for OTP and token expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithOTPGenerator replaces the random six-digit code generator.
func WithOTPGenerator(gen func() (string, error)) Option {
	return func(s *Server) { s.newOTP = gen }
}

func New(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logging.Nop(),
		store:  newMemoryStore(),
		now:    time.Now,
		newOTP: randomOTP,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With("module", "mockapi")
	s.engine = s.routes()
	return s
}

// Handler exposes the router, e.g. for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// LastOTP returns the most recent code "emailed" to email.
func (s *Server) LastOTP(email string) (string, bool) {
	return s.store.lastOTP(email)
}

// RevokeSessions invalidates every bearer token of email, so the next
// authenticated call answers 401.
func (s *Server) RevokeSessions(email string) int {
	return s.store.revokeSessions(email)
}

// Run serves on cfg.Addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping mock API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting mock API server", "address", s.cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.health)

	otp := r.Group("/otp")
	otp.POST("/send-otp", s.sendOTP)
	otp.POST("/resend-otp", s.resendOTP)
	otp.POST("/verify-otp", s.verifyOTP)

	auth := r.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)

	protected := auth.Group("")
	protected.Use(s.requireBearer())
	protected.GET("/me", s.me)
	protected.POST("/logout", s.logout)
	protected.PUT("/profile", s.updateProfile)

	return r
}

func randomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
