package repository

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier gates the admin panel. The default below checks one
// static pair; a real authentication provider can be dropped in without
// touching the gating logic.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

type StaticVerifier struct {
	username     string
	passwordHash []byte
}

func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 8)
	if err != nil {
		log.Printf("NewStaticVerifier: %v", err)
		return nil, err
	}
	return &StaticVerifier{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (v *StaticVerifier) Verify(username, password string) bool {
	if username != v.username {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
}
