// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"

	"fintrack/config"
	domainerrors "fintrack/internal/domain/errors"
	"fintrack/internal/domain/service"
	"fintrack/internal/errors"
)

const saltSize = 16

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// The password is keyed with HMAC-SHA256 under the record's salt before bcrypt,
// which binds the stored salt to the hash and keeps inputs under bcrypt's 72-byte limit.
type bcryptHasher struct {
	cost int
	// dummyHash is compared against when there is no stored hash so that a
	// miss costs the same as a mismatch.
	dummyHash []byte
}

// NewBcryptHasher builds the hasher from the configured cost factor.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	return NewBcryptHasherWithCost(cfg.BcryptCost())
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost. Zero selects bcrypt.DefaultCost.
func NewBcryptHasherWithCost(cost int) (service.PasswordHasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummySalt := make([]byte, saltSize)
	if _, err := rand.Read(dummySalt); err != nil {
		return nil, errors.Wrap(err, "failed to read dummy salt")
	}
	dummyHash, err := bcrypt.GenerateFromPassword(prekey([]byte("dummy-password"), dummySalt), cost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dummy hash")
	}

	return &bcryptHasher{cost: cost, dummyHash: dummyHash}, nil
}

// Hash generates a fresh salt and returns the bcrypt secret with the encoded salt.
func (h *bcryptHasher) Hash(password string) (string, string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword(prekey([]byte(password), salt), h.cost)
	if err != nil {
		return "", "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(hash), base64.RawURLEncoding.EncodeToString(salt), nil
}

// Verify compares password against a stored secret/salt pair.
func (h *bcryptHasher) Verify(password, secretHash, salt string) bool {
	if secretHash == "" {
		_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))

		return false
	}

	saltBytes, err := base64.RawURLEncoding.DecodeString(salt)
	if err != nil || len(saltBytes) == 0 {
		return false
	}

	// CompareHashAndPassword uses subtle.ConstantTimeCompare internally.
	return bcrypt.CompareHashAndPassword([]byte(secretHash), prekey([]byte(password), saltBytes)) == nil
}

func prekey(password, salt []byte) []byte {
	mac := hmac.New(sha256.New, salt)
	mac.Write(password)

	return []byte(base64.RawStdEncoding.EncodeToString(mac.Sum(nil)))
}
