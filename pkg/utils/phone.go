package utils

import "strings"

// DefaultCallingCode is Haiti.
const DefaultCallingCode = "509"

// Digits keeps only ASCII digits.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone converts user input into E.164 form. A bare 8-digit local
// number gets the calling code prepended; anything else keeps its digits
// behind exactly one leading '+'.
func NormalizePhone(input, callingCode string) string {
	if callingCode == "" {
		callingCode = DefaultCallingCode
	}
	digits := Digits(input)
	if digits == "" {
		return ""
	}
	if len(digits) == 8 && !strings.HasPrefix(digits, callingCode) {
		return "+" + callingCode + digits
	}
	return "+" + digits
}
