package validate

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// fieldOrder decides which message becomes the primary one.
var fieldOrder = []string{
	"email", "fullName", "studentId", "password", "confirmPassword", "phone", "whatsapp", "otp",
}

// FieldErrors flattens a validation error into field -> message. A non-field
// error is reported under "form".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		out := make(map[string]string, len(errs))
		for field, e := range errs {
			if e != nil {
				out[field] = e.Error()
			}
		}
		return out
	}
	return map[string]string{"form": err.Error()}
}

// Primary picks the message shown first: the earliest field in form order,
// then anything else.
func Primary(fieldErrors map[string]string) string {
	for _, f := range fieldOrder {
		if msg, ok := fieldErrors[f]; ok {
			return msg
		}
	}
	for _, msg := range fieldErrors {
		return msg
	}
	return ""
}
