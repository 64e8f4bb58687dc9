package user

import (
	"strings"

	"shareit/internal/pkg/errs"
)

var ErrBlankName = errs.New("user name must not be blank")

type User struct {
	id    int64
	name  string
	email Email
}

func NewUser(name string, email Email) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrBlankName
	}
	return &User{name: name, email: email}, nil
}

func ReconstructUser(id int64, name string, email Email) *User {
	return &User{id: id, name: name, email: email}
}

// ApplyPatch updates only the provided fields.
func (u *User) ApplyPatch(name *string, email *Email) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return ErrBlankName
		}
		u.name = *name
	}
	if email != nil {
		u.email = *email
	}
	return nil
}

func (u *User) ID() int64    { return u.id }
func (u *User) Name() string { return u.name }
func (u *User) Email() Email { return u.email }
