// Package models defines the client-side data models of the College Portal:
// the signed-in user, colleges, admissions and reviews as the REST API
// returns them.
package models

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/collegeportal/internal/common"
)

// User is the identity record of the signed-in viewer. ID is stable and
// opaque; the optional fields are empty when unset.
type User struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	Address    string `json:"address,omitempty"`
	University string `json:"university,omitempty"`
}

// Registration is the payload of the register call.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar,omitempty"`
}

// Validate checks the fields the server would otherwise reject.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return nil
}

// Credentials is the payload of the login call.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return nil
}

// ProfileUpdate carries the fields to change. Nil pointers are left out of
// the request so the server keeps the current value.
type ProfileUpdate struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Address    *string `json:"address,omitempty"`
	University *string `json:"university,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Address == nil && p.University == nil && p.Avatar == nil
}

func (p ProfileUpdate) Validate() error {
	if p.Empty() {
		return fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", common.ErrValidation)
	}
	if p.Email != nil {
		return validateEmail(*p.Email)
	}
	return nil
}

// AuthResult is what login and register return: a bearer credential and the
// user it belongs to.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", common.ErrValidation, email)
	}
	return nil
}
