package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/codemonk/internal/client/models"
)

func validProfile() models.ProfileFields {
	return models.ProfileFields{
		FullName:        "Ada Lovelace",
		StudentID:       "CS042",
		Password:        "Abc12345",
		ConfirmPassword: "Abc12345",
		Phone:           "9876543210",
	}
}

func TestOTP(t *testing.T) {
	tests := []struct {
		code string
		ok   bool
	}{
		{"123456", true},
		{"000000", true},
		{"12345", false},
		{"1234567", false},
		{"12a456", false},
		{" 123456", false},
		{"", false},
		{"１２３４５６", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := OTP(tt.code)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("a@b.com"))
	assert.EqualError(t, Email(""), "Email is required")
	assert.EqualError(t, Email("not-an-email"), "Enter a valid email address")
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login("a@b.com", "x"))

	fe := FieldErrors(Login("", ""))
	assert.Equal(t, "Email is required", fe["email"])
	assert.Equal(t, "Password is required", fe["password"])
}

func TestPhone(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "+14155552671"}
	for _, p := range valid {
		assert.NoError(t, Phone(p), p)
	}

	invalid := []string{"", "987654321", "98765432101", "+0123456789", "+91 98765 43210", "phone"}
	for _, p := range invalid {
		assert.Error(t, Phone(p), p)
	}
}

func TestProfile_StrictAcceptsValidForm(t *testing.T) {
	require.NoError(t, StrictRules().Profile(validProfile()))

	f := validProfile()
	f.WhatsApp = "+919876543210"
	f.StudentID = "it7"
	require.NoError(t, StrictRules().Profile(f))
}

func TestProfile_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ProfileFields)
		field  string
	}{
		{"missing name", func(f *models.ProfileFields) { f.FullName = "" }, "fullName"},
		{"unknown prefix", func(f *models.ProfileFields) { f.StudentID = "XX001" }, "studentId"},
		{"too many digits", func(f *models.ProfileFields) { f.StudentID = "CS0001" }, "studentId"},
		{"out of range high", func(f *models.ProfileFields) { f.StudentID = "CS999" }, "studentId"},
		{"out of range zero", func(f *models.ProfileFields) { f.StudentID = "CS000" }, "studentId"},
		{"short password", func(f *models.ProfileFields) { f.Password, f.ConfirmPassword = "Ab1", "Ab1" }, "password"},
		{"no uppercase", func(f *models.ProfileFields) { f.Password, f.ConfirmPassword = "abc12345", "abc12345" }, "password"},
		{"no digit", func(f *models.ProfileFields) { f.Password, f.ConfirmPassword = "Abcdefgh", "Abcdefgh" }, "password"},
		{"mismatch", func(f *models.ProfileFields) { f.ConfirmPassword = "Abc12346" }, "confirmPassword"},
		{"bad phone", func(f *models.ProfileFields) { f.Phone = "12345" }, "phone"},
		{"bad whatsapp", func(f *models.ProfileFields) { f.WhatsApp = "12345" }, "whatsapp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validProfile()
			tt.mutate(&f)

			err := StrictRules().Profile(f)
			require.Error(t, err)
			fe := FieldErrors(err)
			assert.Contains(t, fe, tt.field)
		})
	}
}

func TestProfile_LenientPassword(t *testing.T) {
	f := validProfile()
	f.Password, f.ConfirmPassword = "simple", "simple"

	assert.NoError(t, LenientRules().Profile(f))
	assert.Error(t, StrictRules().Profile(f))
}

func TestRulesFor(t *testing.T) {
	r, err := RulesFor("")
	require.NoError(t, err)
	assert.True(t, r.RequireMixedCase)

	r, err = RulesFor("LENIENT")
	require.NoError(t, err)
	assert.Equal(t, 6, r.PasswordMinLength)

	_, err = RulesFor("paranoid")
	require.Error(t, err)
}

func TestFieldErrorsAndPrimary(t *testing.T) {
	f := validProfile()
	f.Phone = ""
	f.StudentID = "ZZ1"

	fe := FieldErrors(StrictRules().Profile(f))
	require.Len(t, fe, 2)
	assert.Equal(t, fe["studentId"], Primary(fe), "studentId precedes phone in form order")

	assert.Nil(t, FieldErrors(nil))
	assert.Equal(t, map[string]string{"form": "boom"}, FieldErrors(errors.New("boom")))
	assert.Empty(t, Primary(nil))
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "CS042", NormalizeIdentifier("  cs042 "))
}
