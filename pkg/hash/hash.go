package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// LogPrefix returns a short, irreversible hash prefix of the input, used to
// correlate client IPs in logs without storing raw PII.
func LogPrefix(input string) string {
	return SHA256Hex(input)[:12]
}
