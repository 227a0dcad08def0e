// Package auth owns credential handling for the server: bcrypt password
// hashing/verification and issuing/verifying signed session tokens.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way, salted bcrypt hash from the plaintext.
// Each call uses a fresh salt, so two hashes of the same password differ.
// The plaintext is not retained; callers should discard it after hashing.
// Empty input is accepted and hashes like any other value.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored bcrypt
// hash. It returns false on any mismatch, including a malformed or corrupt
// stored hash, and never panics. Comparison timing does not depend on how
// early the candidate diverges from the stored value.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
