package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare 10 digit", "9876543210", "9876543210"},
		{"country code prefix", "919876543210", "9876543210"},
		{"plus country code", "+919876543210", "9876543210"},
		{"spaces and dashes", "+91 98765-43210", "9876543210"},
		{"parentheses", "(091) 98765 43210", "9876543210"},
		{"short number kept as is", "12345", "12345"},
		{"empty", "", ""},
		{"letters stripped", "98abc76543210", "9876543210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhoneIsIdempotent(t *testing.T) {
	inputs := []string{"+919876543210", "9876543210", "91 98765 43210"}
	for _, input := range inputs {
		once := NormalizePhone(input)
		assert.Equal(t, once, NormalizePhone(once))
	}
}

func TestNormalizePhoneUnifiesRepresentations(t *testing.T) {
	// Different textual representations of the same number must collapse to
	// one key, or issue/verify would silently desynchronize
	assert.Equal(t, NormalizePhone("9876543210"), NormalizePhone("+919876543210"))
	assert.Equal(t, NormalizePhone("9876543210"), NormalizePhone("919876543210"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("9876543210"))
	assert.True(t, ValidatePhone("6000000000"))
	assert.True(t, ValidatePhone("7123456789"))
	assert.True(t, ValidatePhone("8123456789"))

	assert.False(t, ValidatePhone("5876543210"), "first digit below 6")
	assert.False(t, ValidatePhone("0876543210"), "leading zero")
	assert.False(t, ValidatePhone("987654321"), "too short")
	assert.False(t, ValidatePhone("98765432101"), "too long")
	assert.False(t, ValidatePhone(""), "empty")
	assert.False(t, ValidatePhone("98765abc10"), "non-digits")
}
