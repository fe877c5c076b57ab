package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	}
	if m := a.Mode(); m != ModeUnknown {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the session, starts the connectivity watcher and blocks in
// the REPL until the user exits or ctx is cancelled.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Welcome to Code Monk CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	snap := a.session.Init(ctx)
	if snap.User != nil {
		a.println(fmt.Sprintf("Signed in as %s (%s).", snap.User.Email, snap.User.Role))
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
