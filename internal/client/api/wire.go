package api

import (
	"encoding/json"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
)

// envelope is the response shape shared by every backend route.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Token   string          `json:"token,omitempty"`
	Errors  []fieldError    `json:"errors,omitempty"`
}

// fieldError accepts both {field, message} and the express-validator style
// {path|param, msg}.
type fieldError struct {
	Field   string `json:"field"`
	Path    string `json:"path"`
	Param   string `json:"param"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

func (f fieldError) name() string {
	switch {
	case f.Field != "":
		return f.Field
	case f.Path != "":
		return f.Path
	default:
		return f.Param
	}
}

func (f fieldError) text() string {
	if f.Message != "" {
		return f.Message
	}
	return f.Msg
}

// primaryMessage picks the first field message, or the envelope message when
// the backend sent no field errors.
func (e envelope) primaryMessage() string {
	for _, fe := range e.Errors {
		if t := fe.text(); t != "" {
			return t
		}
	}
	return e.Message
}

func (e envelope) fieldErrors() map[string]string {
	if len(e.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		name := fe.name()
		if name == "" {
			continue
		}
		if _, seen := out[name]; !seen {
			out[name] = fe.text()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type userData struct {
	User  *models.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

type verificationData struct {
	VerificationToken string `json:"verificationToken"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}
