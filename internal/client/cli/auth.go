package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
	"github.com/dmitrijs2005/codemonk/internal/common"
)

const msgLoginBusy = "A sign-in is already in progress."

// getSimpleText, getWithDefault and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText  = GetSimpleText
	getWithDefault = GetWithDefault
	getPassword    = GetPassword
)

// printResult shows the outcome message followed by per-field problems in a
// stable order.
func (a *App) printResult(r models.Result) {
	a.println(r.Message)
	for _, f := range slices.Sorted(maps.Keys(r.FieldErrors)) {
		a.println(fmt.Sprintf("  %s: %s", f, r.FieldErrors[f]))
	}
}

// Login prompts for credentials and signs in through the session store.
// Rejections are printed; only input errors are returned.
func (a *App) Login(ctx context.Context) error {
	if a.session.Loading() {
		a.println(msgLoginBusy)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.printResult(a.session.Login(ctx, email, string(password)))
	return nil
}

// Logout ends the session locally and on the server.
func (a *App) Logout(ctx context.Context) error {
	a.printResult(a.session.Logout(ctx))
	return nil
}

// Whoami prints the cached account.
func (a *App) Whoami(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		a.println("Not signed in.")
		return nil
	}
	a.println(fmt.Sprintf("%s <%s>", u.Name, u.Email))
	a.println(fmt.Sprintf("  id: %s  role: %s", u.ID, u.Role))
	for _, kv := range [][2]string{
		{"student id", u.StudentID}, {"phone", u.Phone}, {"whatsapp", u.WhatsApp},
		{"branch", u.Branch}, {"year", u.Year}, {"team", u.Team},
	} {
		if kv[1] != "" {
			a.println(fmt.Sprintf("  %s: %s", kv[0], kv[1]))
		}
	}
	return nil
}

// Refresh reloads the account from the server.
func (a *App) Refresh(ctx context.Context) error {
	a.printResult(a.session.RefreshUser(ctx))
	return nil
}

// Profile edits contact details. Empty answers keep the current value.
func (a *App) Profile(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		a.println("Not signed in.")
		return nil
	}

	var patch models.ProfilePatch
	for _, q := range []struct {
		prompt string
		cur    string
		dst    *string
	}{
		{"Name", u.Name, &patch.Name},
		{"Phone", u.Phone, &patch.Phone},
		{"WhatsApp", u.WhatsApp, &patch.WhatsApp},
		{"Branch", u.Branch, &patch.Branch},
		{"Year", u.Year, &patch.Year},
	} {
		v, err := getWithDefault(a.reader, q.prompt, q.cur, a.out)
		if err != nil {
			return err
		}
		if v != q.cur {
			*q.dst = v
		}
	}

	if patch == (models.ProfilePatch{}) {
		a.println("Nothing to update.")
		return nil
	}
	a.printResult(a.session.UpdateProfile(ctx, patch))
	return nil
}

// Status prints the session state and connectivity. A pending error message
// is shown once and then cleared.
func (a *App) Status(ctx context.Context) error {
	snap := a.session.Snapshot()
	mode := a.Mode()
	if mode == ModeUnknown {
		mode = "unknown"
	}
	a.println(fmt.Sprintf("session: %s  server: %s", snap.Status, mode))
	if snap.LastError != "" {
		a.println("last error:", snap.LastError)
		a.session.ClearError()
	}
	return nil
}
