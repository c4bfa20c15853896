package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{name: "raw token", identifier: "b_ABC123", want: "b_ABC123"},
		{name: "raw token with whitespace", identifier: "  b_ABC123\t", want: "b_ABC123"},
		{name: "storefront URL", identifier: "https://site.example/brand/b_XYZ9?ref=1", want: "b_XYZ9"},
		{name: "token inside path segment", identifier: "https://site.example/brand/acme-b_q1w2e3", want: "b_q1w2e3"},
		{name: "no token sanitized", identifier: "acme-brand!", want: "acmebrand"},
		{name: "nothing usable", identifier: "!!!", want: ""},
		{name: "empty", identifier: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractToken(tt.identifier))
		})
	}
}
