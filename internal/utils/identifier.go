package utils

import (
	"net"
	"strings"

	"github.com/and161185/bookdesk/internal/model"
)

// ClassifyIdentifier guesses what a blocked-user identifier is from its shape.
// It is a best-effort label for display and never a validation.
func ClassifyIdentifier(identifier string) model.IdentifierKind {
	id := strings.TrimSpace(identifier)
	if net.ParseIP(id) != nil {
		return model.IdentifierIP
	}

	digits := NormalizePhone(id)
	if digits != "" && len(digits) >= 10 && len(digits) <= 14 && onlyPhoneChars(id) {
		return model.IdentifierPhone
	}

	return model.IdentifierDevice
}

// NormalizePhone strips formatting and the 880 country prefix: "+880 1711-000000" becomes "01711000000".
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if strings.HasPrefix(digits, "880") && len(digits) == 13 {
		digits = "0" + digits[3:]
	}
	return digits
}

func onlyPhoneChars(s string) bool {
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ' || r == '-' || r == '(' || r == ')':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return true
}
