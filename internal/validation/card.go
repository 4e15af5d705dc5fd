package validation

import (
	"strings"
	"unicode"
)

// CardDigits strips everything but digits from a card number.
func CardDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// FormatCardNumber groups the digits in blocks of four, at most 19 characters.
func FormatCardNumber(s string) string {
	digits := CardDigits(s)
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiryDate turns typed digits into MM/YY.
func FormatExpiryDate(s string) string {
	digits := CardDigits(s)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) >= 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// SanitizeCVV keeps at most four digits.
func SanitizeCVV(s string) string {
	digits := CardDigits(s)
	if len(digits) > 4 {
		return digits[:4]
	}
	return digits
}

// LastFour returns the last four digits of a card number.
func LastFour(s string) string {
	digits := CardDigits(s)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// Normalize applies the form formatters in place.
func (f *CardForm) Normalize() {
	f.CardNumber = FormatCardNumber(f.CardNumber)
	f.ExpiryDate = FormatExpiryDate(f.ExpiryDate)
	f.CVV = SanitizeCVV(f.CVV)
	f.CardName = strings.TrimSpace(f.CardName)
	f.Email = strings.TrimSpace(f.Email)
}
