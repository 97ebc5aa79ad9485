package util

import "strings"

// NormalizeEmail trims and lower-cases an address before lookup or storage.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
