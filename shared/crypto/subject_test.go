package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHasher(t *testing.T, key string) *SubjectHasher {
	t.Helper()
	h, err := NewSubjectHasher(key)
	require.NoError(t, err)
	return h
}

func TestGenerateKey(t *testing.T) {
	a, err := GenerateKey()
	require.NoError(t, err)
	b, err := GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.StdEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.True(t, mustHasher(t, a).Keyed())
}

func TestNewSubjectHasher(t *testing.T) {
	_, err := NewSubjectHasher("not base64!")
	assert.Error(t, err)

	_, err = NewSubjectHasher(base64.StdEncoding.EncodeToString(make([]byte, 65)))
	assert.ErrorIs(t, err, ErrInvalidKey)

	h := mustHasher(t, "")
	assert.False(t, h.Keyed())
	assert.Len(t, h.Hash("a@example.com"), 32)
}

func TestHash(t *testing.T) {
	k1, _ := GenerateKey()
	k2, _ := GenerateKey()
	h1, h2 := mustHasher(t, k1), mustHasher(t, k2)

	d := h1.Hash("  User@Example.COM ")
	assert.Equal(t, d, h1.Hash("user@example.com"))
	assert.NotEqual(t, d, h1.Hash("other@example.com"))
	assert.NotEqual(t, d, h2.Hash("user@example.com"))
	assert.False(t, strings.Contains(string(d), "example"))
}
