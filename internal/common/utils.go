package common

import "strings"

// NormalizeCity trims surrounding whitespace and collapses inner runs of spaces.
func NormalizeCity(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
