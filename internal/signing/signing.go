// Package signing wraps OpenPGP key decoding and detached-signature
// verification for extension archives.
package signing

import (
	"bytes"
	"fmt"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// PublicKey is a decoded publisher signing key.
type PublicKey struct {
	ring openpgp.EntityList
}

// LoadPublicKey decodes an armored or binary OpenPGP public key.
func LoadPublicKey(data []byte) (*PublicKey, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("public key payload is empty")
	}

	ring, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		// Not armored; try the binary packet form.
		ring, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode public key: %w", err)
		}
	}
	if len(ring) == 0 {
		return nil, fmt.Errorf("public key ring is empty")
	}
	return &PublicKey{ring: ring}, nil
}

// Verify checks a detached signature over data against key. It returns true
// only when the signature is valid; verification problems are reported as
// errors, never panics.
func Verify(data, signature []byte, key *PublicKey) (bool, error) {
	if key == nil {
		return false, fmt.Errorf("no public key to verify against")
	}
	if len(signature) == 0 {
		return false, fmt.Errorf("signature payload is empty")
	}

	_, err := openpgp.CheckArmoredDetachedSignature(
		key.ring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if err == nil {
		return true, nil
	}

	_, binErr := openpgp.CheckDetachedSignature(
		key.ring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if binErr == nil {
		return true, nil
	}
	return false, fmt.Errorf("signature verification failed: %w", err)
}
