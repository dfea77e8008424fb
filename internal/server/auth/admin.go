package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/dmitrijs2005/edora/internal/common"
)

// Admin is the single privileged principal of a deployment. Its digest comes
// from configuration, so the password can be rotated without a rebuild.
type Admin struct {
	username string
	digest   string
}

// NewAdmin builds the principal from a username and a bcrypt digest.
func NewAdmin(username, digest string) (*Admin, error) {
	if username == "" {
		return nil, errors.New("admin username is empty")
	}
	if !IsDigest(digest) {
		return nil, errors.New("admin password digest is not a bcrypt hash")
	}
	return &Admin{username: username, digest: digest}, nil
}

// NewAdminFromPassword hashes password once and builds the principal.
func NewAdminFromPassword(username, password string) (*Admin, error) {
	digest, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return NewAdmin(username, digest)
}

// Username returns the principal's name, used as the token subject.
func (a *Admin) Username() string { return a.username }

// Authenticate returns common.ErrBadCredentials unless both username and
// password match. The password is always checked.
func (a *Admin) Authenticate(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := VerifyPassword(password, a.digest)
	if !userOK || !passOK {
		return common.ErrBadCredentials
	}
	return nil
}
