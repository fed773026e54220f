package ai

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint returns a short, stable identifier for an API key that is safe to log.
// An empty key yields an empty fingerprint.
func Fingerprint(key string) string {
	if key == "" {
		return ""
	}
	h, _ := blake2b.New(6, nil) // 48 bits is enough to tell keys apart in logs
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))
}
