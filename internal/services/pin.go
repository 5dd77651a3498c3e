package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPIN returns a bcrypt hash of pin, or "" for an empty pin.
func HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash pin: %w", err)
	}
	return string(hash), nil
}

// LegacyHashPIN is the hex SHA-256 form used by rows written before bcrypt.
func LegacyHashPIN(pin string) string {
	if pin == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// VerifyPIN reports whether pin matches hash. An empty hash matches nothing.
func VerifyPIN(hash, pin string) bool {
	if hash == "" || pin == "" {
		return false
	}
	if strings.HasPrefix(hash, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(LegacyHashPIN(pin))) == 1
}
