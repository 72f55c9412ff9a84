package suite

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for suite identity hashes. The version suffix leaves room
// for algorithm migration without colliding with old journals.
const domainSuite = "converge/suite/v1"

// Hash computes the content-addressed identity of a suite: SHA-256 over the
// canonical JSON of its definition, with domain separation. Stable across
// field order, formatting, and comments in the source file.
func Hash(s Suite) (string, error) {
	canonical, err := MarshalCanonical(s)
	if err != nil {
		return "", fmt.Errorf("suite hash: %w", err)
	}
	return hashWithDomain(domainSuite, canonical), nil
}

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
