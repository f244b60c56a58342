package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tp := New()

	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:     "bold text",
			input:    "**hello**",
			contains: []string{"<strong>hello</strong>"},
		},
		{
			name:     "heading gets an id",
			input:    "# About this demo",
			contains: []string{`<h1 id="about-this-demo">About this demo</h1>`},
		},
		{
			name:     "relative link kept",
			input:    "[sign in](/signin)",
			contains: []string{`<a href="/signin">sign in</a>`},
		},
		{
			name:     "strikethrough",
			input:    "~~old~~",
			contains: []string{"<del>old</del>"},
		},
		{
			name:        "script removed",
			input:       "hi <script>alert(1)</script>",
			contains:    []string{"hi"},
			notContains: []string{"<script", "alert(1)"},
		},
		{
			name:        "javascript url removed",
			input:       "[x](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
		{
			name:        "event handler removed",
			input:       `<img src="/static/a.png" onerror="alert(1)">`,
			notContains: []string{"onerror"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tp.Render([]byte(tt.input))
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, string(out), s)
			}
			for _, s := range tt.notContains {
				assert.False(t, strings.Contains(string(out), s), "output should not contain %q: %s", s, out)
			}
		})
	}
}
