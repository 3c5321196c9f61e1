package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"%gcc@4.9.3", "%gcc@4.9.3", false},
		{"gcc@4.9.3", "%gcc@4.9.3", false},
		{"%clang@3.9.0", "%clang@3.9.0", false},
		{"  %intel@16.0.4 ", "%intel@16.0.4", false},
		{"", "", true},
		{"%", "", true},
		{"%gcc", "", true},
		{"%gcc@", "", true},
		{"%@4.9.3", "", true},
	}

	for _, test := range tests {
		result, err := ParseSpec(test.input)
		if test.wantErr {
			assert.Error(t, err, "ParseSpec(%q)", test.input)
			continue
		}

		assert.NoError(t, err, "ParseSpec(%q)", test.input)
		assert.Equal(t, test.expected, result, "ParseSpec(%q)", test.input)
	}
}

func TestParseSpecs(t *testing.T) {
	specs, err := ParseSpecs([]string{"%clang@3.9.0", "gcc@4.9.3", "%gcc@4.9.3"})
	assert.NoError(t, err)
	// order preserved, duplicates untouched
	assert.Equal(t, []string{"%clang@3.9.0", "%gcc@4.9.3", "%gcc@4.9.3"}, specs)

	_, err = ParseSpecs([]string{"%gcc@4.9.3", "bogus"})
	assert.Error(t, err)
}
