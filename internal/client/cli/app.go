package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/codemonk/internal/client/api"
	"github.com/dmitrijs2005/codemonk/internal/client/config"
	"github.com/dmitrijs2005/codemonk/internal/client/credentials"
	"github.com/dmitrijs2005/codemonk/internal/client/registration"
	"github.com/dmitrijs2005/codemonk/internal/client/session"
	"github.com/dmitrijs2005/codemonk/internal/client/validate"
	"github.com/dmitrijs2005/codemonk/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const msgSessionExpired = "Your session has expired. Please log in again."

type App struct {
	config  *config.Config
	logger  logging.Logger
	creds   credentials.Store
	client  *api.HTTPClient
	session *session.Store
	rules   validate.Rules
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the configured credential store and builds the transport and
// session store on top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	rules, err := validate.RulesFor(c.ValidationProfile)
	if err != nil {
		return nil, err
	}

	creds, err := credentials.Open(ctx, credentials.OpenOptions{
		Backend:       c.CredentialStore,
		DatabasePath:  c.DatabasePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
	})
	if err != nil {
		logger.Error(ctx, "error opening credential store", "backend", c.CredentialStore, "error", err)
		return nil, err
	}

	client, err := api.NewHTTPClient(c.ServerURL, creds,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger),
	)
	if err != nil {
		_ = creds.Close()
		return nil, err
	}

	return newApp(c, logger, creds, client, rules, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, logger logging.Logger, creds credentials.Store, client *api.HTTPClient,
	rules validate.Rules, reader *bufio.Reader, out io.Writer) *App {

	a := &App{
		config: c,
		logger: logger.With("component", "cli"),
		creds:  creds,
		client: client,
		rules:  rules,
		reader: reader,
		out:    out,
	}
	a.session = session.NewStore(client, creds,
		session.WithLogger(logger),
		session.WithRetryPolicy(session.RetryPolicy{MaxAttempts: 2, Delay: c.ProbeRetryDelay}),
		session.WithExpiredHook(func() { a.println(msgSessionExpired) }),
	)
	client.SetUnauthorizedHandler(a.session.HandleUnauthorized)
	return a
}

func (a *App) newFlow() *registration.Flow {
	return registration.NewFlow(a.client, a.session,
		registration.WithRules(a.rules),
		registration.WithLogger(a.logger),
		registration.WithResendCooldown(a.config.OTPResendCooldown),
	)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

// Run probes the stored session and serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.creds.Close(); err != nil {
			a.logger.Warn(ctx, "closing credential store failed", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// StartOnlineStatusWatcher pings the backend every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(pingCtx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
