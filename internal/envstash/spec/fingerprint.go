package spec

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint is the hex-encoded SHA-256 digest of a spec file's bytes.
// Collision resistance is a correctness requirement: a collision would make
// a stale environment pass as fresh, so a cryptographic hash is mandatory
// here even though the value is never a secret.
type Fingerprint string

// fingerprintHexLen is the length of a hex-encoded SHA-256 digest.
const fingerprintHexLen = sha256.Size * 2

// Compute returns the fingerprint of raw spec bytes. Pure and
// deterministic: identical bytes always produce identical fingerprints.
func Compute(data []byte) Fingerprint {
	sum := sha256.Sum256(data)
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// Parse validates an externally supplied fingerprint string.
func Parse(s string) (Fingerprint, error) {
	f := Fingerprint(s)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Validate reports whether f is a well-formed hex SHA-256 digest.
func (f Fingerprint) Validate() error {
	if len(f) != fingerprintHexLen {
		return fmt.Errorf("fingerprint must be %d hex characters, got %d", fingerprintHexLen, len(f))
	}
	if _, err := hex.DecodeString(string(f)); err != nil {
		return fmt.Errorf("fingerprint is not hex: %w", err)
	}
	return nil
}

// Short returns an abbreviated form for log lines.
func (f Fingerprint) Short() string {
	if len(f) < 12 {
		return string(f)
	}
	return string(f[:12])
}

func (f Fingerprint) String() string {
	return string(f)
}
