package normalizer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// decodeJSON decodes s the same way the crawler client decodes API bodies.
func decodeJSON(t *testing.T, s string) any {
	t.Helper()

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	require.NoError(t, dec.Decode(&v))

	return v
}

func decodeObject(t *testing.T, s string) map[string]any {
	t.Helper()

	obj, ok := decodeJSON(t, s).(map[string]any)
	require.True(t, ok, "payload is not a JSON object")

	return obj
}

func ptr[T any](v T) *T {
	return &v
}
