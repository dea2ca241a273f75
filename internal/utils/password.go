package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var legacyDigestPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// HashPassword bcrypt hash
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares against a bcrypt hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IsLegacyHash reports whether hash is an unsalted hex SHA-256 digest
// carried over from older deployments.
func IsLegacyHash(hash string) bool {
	return legacyDigestPattern.MatchString(hash)
}

// CheckLegacyPassword compares against a hex SHA-256 digest in constant time
func CheckLegacyPassword(password, hash string) bool {
	sum := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) == 1
}
