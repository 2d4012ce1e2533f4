package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies a message across scans for summary caching
func Fingerprint(msg *MessageRecord) string {
	h := sha256.New()
	for _, part := range []string{msg.Sender, msg.Subject, msg.TimeText, msg.Preview} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
