package deck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	input := `{"format":"v1.2.0","entries":[{"prompt":"犬","answer":"dog"},{"prompt":"猫","answer":"cat"}]}`

	got, err := DecodeJSON(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"犬", "dog"}, {"猫", "cat"}}, got)
}

func TestDecodeJSON_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"format":`},
		{"missing entries", `{"format":"v1.0.0"}`},
		{"missing answer", `{"format":"v1.0.0","entries":[{"prompt":"a"}]}`},
		{"extra field", `{"format":"v1.0.0","entries":[{"prompt":"a","answer":"b","hint":"c"}]}`},
		{"answer not string", `{"format":"v1.0.0","entries":[{"prompt":"a","answer":4}]}`},
		{"format not semver", `{"format":"1.0","entries":[]}`},
		{"unsupported major", `{"format":"v2.0.0","entries":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestEncodeJSON_RoundTrip(t *testing.T) {
	entries := []Entry{{"<b>", "&"}, {" x ", "y, z"}}

	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, entries))
	assert.Contains(t, buf.String(), `"format": "`+FormatVersion+`"`)

	got, err := DecodeJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestEncodeJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, nil))

	got, err := DecodeJSON(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
