// Package crypto derives the stored form of email addresses.
package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

var ErrInvalidKey = fmt.Errorf("subject key must decode to at most %d bytes", blake2b.Size)

// SubjectHasher maps an email address to a keyed BLAKE2b-256 digest. The
// digest identifies a user across events without the address being stored.
type SubjectHasher struct {
	key []byte
}

// NewSubjectHasher takes a base64 key. An empty key gives an unkeyed hash.
func NewSubjectHasher(keyBase64 string) (*SubjectHasher, error) {
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode subject key: %w", err)
	}
	if len(key) > blake2b.Size {
		return nil, ErrInvalidKey
	}
	return &SubjectHasher{key: key}, nil
}

func (h *SubjectHasher) Keyed() bool {
	return len(h.key) > 0
}

// Hash normalizes email (trimmed, lowercase) and returns its 32 byte digest.
func (h *SubjectHasher) Hash(email string) []byte {
	d, err := blake2b.New256(h.key)
	if err != nil {
		// key length is checked in NewSubjectHasher
		panic(err)
	}
	d.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return d.Sum(nil)
}

// GenerateKey returns 32 random bytes, base64 encoded.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", errors.Join(errors.New("failed to read random bytes"), err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
