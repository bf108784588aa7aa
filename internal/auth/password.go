package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasswordChecker compares a presented password against the configured one.
type PasswordChecker interface {
	Check(password string) bool
}

type bcryptChecker struct {
	hash []byte
}

type plainChecker struct {
	password []byte
}

// NewPasswordChecker prefers a bcrypt hash when one is configured and
// otherwise compares against the plain password in constant time.
func NewPasswordChecker(plain, hash string) PasswordChecker {
	if hash != "" {
		return &bcryptChecker{hash: []byte(hash)}
	}
	return &plainChecker{password: []byte(plain)}
}

func (c *bcryptChecker) Check(password string) bool {
	return bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
}

func (c *plainChecker) Check(password string) bool {
	if len(c.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(c.password, []byte(password)) == 1
}
