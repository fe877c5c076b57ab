package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
	"github.com/dmitrijs2005/codemonk/internal/client/registration"
	"github.com/dmitrijs2005/codemonk/internal/common"
)

var errCancelled = errors.New("registration cancelled")

// Register walks the user through the registration flow: email, emailed
// code, then the profile form. Typing "cancel" at a text prompt aborts;
// "back" returns to the email step.
func (a *App) Register(ctx context.Context) error {
	f := a.newFlow()

	for {
		var err error
		switch f.State() {
		case registration.StateCollectingEmail:
			err = a.askEmail(ctx, f)
		case registration.StateOtpSent:
			err = a.askCode(ctx, f)
		case registration.StateEmailVerified:
			err = a.askProfile(ctx, f)
		case registration.StateSubmitted:
			return nil
		}

		if errors.Is(err, errCancelled) {
			a.println("Registration cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) ask(prompt string) (string, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if strings.EqualFold(s, "cancel") {
		return "", errCancelled
	}
	return s, nil
}

func (a *App) askEmail(ctx context.Context, f *registration.Flow) error {
	d := f.Draft()
	email, err := getWithDefault(a.reader, "Enter email (or 'cancel')", d.Email, a.out)
	if err != nil {
		return err
	}
	if email == "" || strings.EqualFold(email, "cancel") {
		return errCancelled
	}
	name, err := getWithDefault(a.reader, "Enter your name", d.Name, a.out)
	if err != nil {
		return err
	}
	a.printResult(f.SendOTP(ctx, email, name))
	return nil
}

func (a *App) askCode(ctx context.Context, f *registration.Flow) error {
	code, err := a.ask("Enter the 6-digit code from your email ('resend', 'back' or 'cancel')")
	if err != nil {
		return err
	}

	switch strings.ToLower(code) {
	case "resend":
		a.printResult(f.Resend(ctx))
	case "back":
		a.printResult(f.Back())
	default:
		res := f.Verify(ctx, code)
		a.printResult(res)
		if res.Kind == models.KindExpired {
			a.println("Type 'resend' to get a new code.")
		}
	}
	return nil
}

func (a *App) askProfile(ctx context.Context, f *registration.Flow) error {
	d := f.Draft()
	a.println("Email verified: " + d.Email)

	p := d.Profile
	name, err := getWithDefault(a.reader, "Full name ('back' to change email)", p.FullName, a.out)
	if err != nil {
		return err
	}
	switch strings.ToLower(name) {
	case "cancel":
		return errCancelled
	case "back":
		a.printResult(f.Back())
		return nil
	}
	p.FullName = name

	for _, q := range []struct {
		prompt string
		dst    *string
	}{
		{"Student ID", &p.StudentID},
		{"Phone", &p.Phone},
		{"WhatsApp (optional)", &p.WhatsApp},
		{"Branch (optional)", &p.Branch},
		{"Year (optional)", &p.Year},
	} {
		v, err := getWithDefault(a.reader, q.prompt, *q.dst, a.out)
		if err != nil {
			return err
		}
		if strings.EqualFold(v, "cancel") {
			return errCancelled
		}
		*q.dst = v
	}

	password, err := getPassword("Choose a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword("Repeat the password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	p.Password, p.ConfirmPassword = string(password), string(confirm)

	res := f.SubmitProfile(ctx, p)
	a.printResult(res)
	if res.Success {
		a.println("You can now log in with " + d.Email + ".")
	}
	return nil
}
