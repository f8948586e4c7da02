package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// ContactHash identifies an email or phone in logs without exposing it.
// Values are folded first so the same contact always hashes the same way.
func ContactHash(contact string) string {
	contact = strings.ToLower(strings.TrimSpace(contact))
	if contact == "" {
		return ""
	}
	return HashString(contact)[:16]
}
