// Package models defines the client-side data shapes shared by the session
// store, the registration flow, the transport and the CLI.
package models

import (
	"encoding/json"
	"fmt"
)

// Role is the account role assigned by the backend.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// UserID is the backend account identifier. Backends send it either as a
// JSON number or a string; both decode to the same textual form.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// User is the authenticated-account snapshot returned by the backend.
type User struct {
	ID        UserID `json:"id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
	StudentID string `json:"studentId,omitempty"`
	Phone     string `json:"phone,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Year      string `json:"year,omitempty"`
	Team      string `json:"team,omitempty"`
}

// HasRole reports whether u carries one of roles. A nil user has none.
func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Clone returns a copy of u so callers cannot mutate store-owned state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
