package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword computes a keyed HMAC-SHA256 digest of the password. The same
// (password, secret) pair always yields the same hex string, which is what the
// credential lookup at login relies on.
func HashPassword(password, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}
