// Package validate implements the client-side form rules applied before any
// request leaves the client. The backend repeats every check; these rules
// only save a round trip and give per-field feedback.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
)

// Rule set names accepted by RulesFor.
const (
	VariantStrict  = "strict"
	VariantLenient = "lenient"
)

var (
	otpPattern        = regexp.MustCompile(`^[0-9]{6}$`)
	identifierPattern = regexp.MustCompile(`^([A-Z]+)([0-9]{1,3})$`)
)

// Rules parameterizes the rules that differ between registration variants.
type Rules struct {
	IdentifierPrefixes []string
	IdentifierMin      int
	IdentifierMax      int
	PasswordMinLength  int
	// RequireMixedCase demands a lowercase letter, an uppercase letter and a digit.
	RequireMixedCase bool
}

// StrictRules is the OTP-gated registration rule set.
func StrictRules() Rules {
	return Rules{
		IdentifierPrefixes: []string{"CM", "CS", "IT", "EC"},
		IdentifierMin:      1,
		IdentifierMax:      500,
		PasswordMinLength:  8,
		RequireMixedCase:   true,
	}
}

// LenientRules is the direct-form rule set: shorter passwords, no class mix.
func LenientRules() Rules {
	r := StrictRules()
	r.PasswordMinLength = 6
	r.RequireMixedCase = false
	return r
}

// RulesFor resolves a configured variant name.
func RulesFor(variant string) (Rules, error) {
	switch strings.ToLower(variant) {
	case "", VariantStrict:
		return StrictRules(), nil
	case VariantLenient:
		return LenientRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown validation profile %q", variant)
	}
}

// OTP checks a one-time passcode: exactly six ASCII digits.
func OTP(code string) error {
	return validation.Validate(code,
		validation.Required.Error("Enter the 6-digit code from your email"),
		validation.Match(otpPattern).Error("The code must be exactly 6 digits"),
	)
}

// Email checks an address syntactically.
func Email(email string) error {
	return validation.Validate(email,
		validation.Required.Error("Email is required"),
		is.Email.Error("Enter a valid email address"),
	)
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks that both sign-in fields are present and the email is well formed.
func Login(email, password string) error {
	f := loginForm{Email: email, Password: password}
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required.Error("Email is required"), is.Email.Error("Enter a valid email address")),
		validation.Field(&f.Password, validation.Required.Error("Password is required")),
	)
}

// Profile validates the phase-two registration form. The returned error is a
// validation.Errors keyed by the JSON field names.
func (r Rules) Profile(f models.ProfileFields) error {
	passwordRules := []validation.Rule{
		validation.Required.Error("Password is required"),
		validation.Length(r.PasswordMinLength, 128).Error(fmt.Sprintf("Password must be at least %d characters", r.PasswordMinLength)),
	}
	if r.RequireMixedCase {
		passwordRules = append(passwordRules, validation.By(mixedCase))
	}

	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName,
			validation.Required.Error("Full name is required"),
			validation.Length(2, 100).Error("Full name must be between 2 and 100 characters"),
		),
		validation.Field(&f.StudentID,
			validation.Required.Error("Student ID is required"),
			validation.By(r.identifier),
		),
		validation.Field(&f.Password, passwordRules...),
		validation.Field(&f.ConfirmPassword,
			validation.Required.Error("Please confirm your password"),
			validation.By(ValidateStringEquals(f.Password)),
		),
		validation.Field(&f.Phone,
			validation.Required.Error("Phone number is required"),
			validation.By(phone),
		),
		validation.Field(&f.WhatsApp, validation.By(optionalPhone)),
	)
}

// NormalizeIdentifier upper-cases and trims a student ID the way the rules
// compare it.
func NormalizeIdentifier(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (r Rules) identifier(value interface{}) error {
	s, _ := value.(string)
	m := identifierPattern.FindStringSubmatch(NormalizeIdentifier(s))
	if m == nil || !slices.Contains(r.IdentifierPrefixes, m[1]) {
		return fmt.Errorf("Student ID must be one of %s followed by up to 3 digits", strings.Join(r.IdentifierPrefixes, ", "))
	}
	n, _ := strconv.Atoi(m[2])
	if n < r.IdentifierMin || n > r.IdentifierMax {
		return fmt.Errorf("Student ID number must be between %d and %d", r.IdentifierMin, r.IdentifierMax)
	}
	return nil
}

func mixedCase(value interface{}) error {
	s, _ := value.(string)
	var lower, upper, digit bool
	for _, c := range s {
		switch {
		case unicode.IsLower(c):
			lower = true
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsDigit(c):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return errors.New("Password must contain a lowercase letter, an uppercase letter and a digit")
	}
	return nil
}

// ValidateStringEquals checks that the validated value equals str.
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != str {
			return errors.New("Passwords do not match")
		}
		return nil
	}
}
