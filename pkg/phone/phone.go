package phone

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalid = errors.New("invalid phone number")

// E.164: leading + followed by country code and subscriber digits.
var e164Regex = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

// Normalize strips formatting characters and validates the result as an
// E.164 number. Returns ErrInvalid if what remains is not one.
func Normalize(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if !e164Regex.MatchString(cleaned) {
		return "", ErrInvalid
	}
	return cleaned, nil
}
