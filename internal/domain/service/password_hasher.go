// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash derives a storable secret from the plaintext with a fresh random salt.
	Hash(password string) (secretHash string, salt string, err error)

	// Verify re-derives the secret from password and salt and compares it with
	// secretHash in constant time. An empty secretHash still costs one full
	// comparison and returns false.
	Verify(password, secretHash, salt string) bool
}
