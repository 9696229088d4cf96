package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"json array", `["fishing","woodworking"]`, []string{"fishing", "woodworking"}},
		{"json array with padding", `[" fishing ", "", "travel"]`, []string{"fishing", "travel"}},
		{"empty json array", `[]`, nil},
		{"comma separated", "fishing, woodworking,travel", []string{"fishing", "woodworking", "travel"}},
		{"single value", "gardening", []string{"gardening"}},
		{"malformed json falls back to split", `["fishing",`, []string{`["fishing"`}},
		{"trailing commas", "a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStringList(tt.raw))
		})
	}
}

func TestEncodeStringList(t *testing.T) {
	assert.Equal(t, "", EncodeStringList(nil))
	assert.Equal(t, `["a","b"]`, EncodeStringList([]string{"a", "b"}))

	// Round trip through the parser.
	assert.Equal(t, []string{"a", "b"}, ParseStringList(EncodeStringList([]string{"a", "b"})))
}
