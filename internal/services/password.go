package services

import "unicode"

const minPasswordLength = 8

// CheckPasswordStrength reports whether a candidate password is acceptable.
// A password passes when it is at least 8 characters long and contains at
// least one digit, one uppercase letter, and one lowercase letter. There is
// no special-character requirement and no maximum length.
func CheckPasswordStrength(password string) bool {
	runes := []rune(password)
	if len(runes) < minPasswordLength {
		return false
	}

	var hasDigit, hasUpper, hasLower bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
		if hasDigit && hasUpper && hasLower {
			return true
		}
	}
	return false
}
