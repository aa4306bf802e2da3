package parsing

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a stable SHA-256 hex digest of the normalized token
// stream. Two documents that normalize to the same tokens share a fingerprint,
// which is what makes it usable as a cache and dedup key.
func (n *NormalizedText) Fingerprint() string {
	hash := sha256.Sum256([]byte(strings.Join(n.Tokens, " ")))
	return hex.EncodeToString(hash[:])
}

// FingerprintWithSource returns a fingerprint that also covers the acquisition
// source. Job postings are keyed this way because the same text arriving from
// two sources is two distinct postings.
func (n *NormalizedText) FingerprintWithSource(source string) string {
	hash := sha256.Sum256([]byte(source + "\x00" + strings.Join(n.Tokens, " ")))
	return hex.EncodeToString(hash[:])
}
