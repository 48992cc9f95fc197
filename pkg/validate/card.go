package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

// IsCardNumber reports whether s passes the Luhn check; withdrawal
// destinations are payout card numbers.
func IsCardNumber(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// MaskCardNumber keeps the last four digits for descriptions and logs.
func MaskCardNumber(s string) string {
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
