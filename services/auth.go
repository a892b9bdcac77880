package services

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/koko-king/models"
)

// StaffCredential is the plain login configured for one staff role.
type StaffCredential struct {
	Identifier string
	Password   string
}

type hashedCredential struct {
	identifier string
	hash       []byte
}

// Authenticator checks staff logins. Passwords are bcrypt-hashed once at
// construction and never kept in plain text.
type Authenticator struct {
	creds map[models.Role]hashedCredential
}

func NewAuthenticator(creds map[models.Role]StaffCredential) (*Authenticator, error) {
	a := &Authenticator{creds: make(map[models.Role]hashedCredential, len(creds))}
	for role, c := range creds {
		if role == models.RoleDriver {
			return nil, fmt.Errorf("drivers log in with the shared passkey")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash %s password: %w", role, err)
		}
		a.creds[role] = hashedCredential{identifier: strings.ToLower(strings.TrimSpace(c.Identifier)), hash: hash}
	}
	return a, nil
}

// Login returns ErrInvalidCredentials unless identifier and password match
// the credential configured for role.
func (a *Authenticator) Login(role models.Role, identifier, password string) error {
	c, ok := a.creds[role]
	if !ok {
		return ErrInvalidCredentials
	}
	given := strings.ToLower(strings.TrimSpace(identifier))
	idOK := subtle.ConstantTimeCompare([]byte(given), []byte(c.identifier)) == 1
	pwErr := bcrypt.CompareHashAndPassword(c.hash, []byte(password))
	if !idOK || pwErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
