package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFraction(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
	}{
		{"1032/1", 1032},
		{"45", 45},
		{"", 0},
		{"0/1", 0},
		{"900/30", 900},
	}

	for _, tc := range testCases {
		value, err := parseFraction(tc.raw)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, value, "parseFraction(%q)", tc.raw)
	}
}

func TestParseFraction_Malformed(t *testing.T) {
	for _, raw := range []string{"abc", "12a", "a/1"} {
		_, err := parseFraction(raw)
		assert.True(t, errors.Is(err, ErrMalformedValue), "parseFraction(%q) should fail", raw)
	}
}
