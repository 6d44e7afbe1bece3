package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "all classes present", password: "Abcdefg1", want: true},
		{name: "digit in the middle", password: "abcD3fgh", want: true},
		{name: "long mixed", password: "Secur3Pass", want: true},
		{name: "no uppercase", password: "abcdefg1", want: false},
		{name: "no lowercase", password: "ABCDEFG1", want: false},
		{name: "no digit", password: "Abcdefgh", want: false},
		{name: "too short", password: "Ab1", want: false},
		{name: "exactly seven", password: "Abcdef1", want: false},
		{name: "empty", password: "", want: false},
		{name: "digits only", password: "12345678", want: false},
		{name: "spaces and symbols ignored", password: "Ab1!@#$%", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPasswordStrength(tt.password))
		})
	}
}

func TestCheckPasswordStrength_Idempotent(t *testing.T) {
	for _, password := range []string{"Secur3Pass", "weak", "ABCDEFG1"} {
		first := CheckPasswordStrength(password)
		second := CheckPasswordStrength(password)
		assert.Equal(t, first, second, "password %q", password)
	}
}
