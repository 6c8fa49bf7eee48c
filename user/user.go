package user

import (
	"strings"
	"time"

	"github.com/milangdev/moviefi-test-task/errs"
)

var (
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "user not found")
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "email already exists")
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "user: invalid name")
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPassword    = errs.Errorf(errs.EINVALID, "user: invalid password")
)

type User struct {
	ID           string
	Name         string
	Email        string
	Password     string // plain text, only set on the way into the hasher
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}

	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(u.Password) == "" {
		return ErrInvalidPassword
	}

	return nil
}
