package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold normalizes text for case-insensitive comparison.
func Fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
