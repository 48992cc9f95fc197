package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected bool
	}{
		{name: "Valid card number", number: "4561261212345467", expected: true},
		{name: "Invalid checksum", number: "4561261212345464", expected: false},
		{name: "Non-numeric", number: "not-a-card", expected: false},
		{name: "Empty", number: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCardNumber(tt.number))
		})
	}
}

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected string
	}{
		{name: "Full card number", number: "4561261212345467", expected: "************5467"},
		{name: "Short value is untouched", number: "5467", expected: "5467"},
		{name: "Empty", number: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskCardNumber(tt.number))
		})
	}
}
