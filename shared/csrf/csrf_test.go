package csrf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token1, err := GenerateToken()
	require.NoError(t, err)
	token2, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
	assert.Len(t, token1, 43)
	assert.NotContains(t, token1, "=")
}

func TestValidateToken(t *testing.T) {
	token := "test-token-123"

	tests := []struct {
		name        string
		cookieToken string
		formToken   string
		want        bool
	}{
		{"matching tokens", token, token, true},
		{"different tokens", token, "different", false},
		{"prefix only", token, "test-token", false},
		{"empty cookie", "", token, false},
		{"empty form", token, "", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateToken(tt.cookieToken, tt.formToken))
		})
	}
}
