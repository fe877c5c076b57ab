package models

// ProfileFields is the phase-two registration form.
type ProfileFields struct {
	FullName        string `json:"fullName"`
	StudentID       string `json:"studentId"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
	WhatsApp        string `json:"whatsapp"`
	Branch          string `json:"branch,omitempty"`
	Year            string `json:"year,omitempty"`
}

// RegistrationRequest is the body of POST /auth/register.
type RegistrationRequest struct {
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	StudentID         string `json:"studentId"`
	Password          string `json:"password"`
	Phone             string `json:"phone"`
	WhatsApp          string `json:"whatsapp,omitempty"`
	Branch            string `json:"branch,omitempty"`
	Year              string `json:"year,omitempty"`
	VerificationToken string `json:"verificationToken"`
}

// ProfilePatch is the body of PUT /auth/profile. Empty fields are left
// unchanged by the backend.
type ProfilePatch struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Year     string `json:"year,omitempty"`
}
