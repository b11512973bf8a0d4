package app

import (
	"strings"
	"unicode"
)

const passwordMinLength = 8

// passwordSymbols is the fixed punctuation set a password must draw at least
// one character from.
const passwordSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func validatePassword(password string) error {
	if len(password) < passwordMinLength {
		return ErrWeakPassword
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasLetter || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}
	return nil
}
