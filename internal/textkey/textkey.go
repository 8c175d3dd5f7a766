// Package textkey builds case-insensitive comparison keys for free-text names and units.
package textkey

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns s trimmed, NFC-normalized and case-folded.
// A Caser is stateful, so one is created per call.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// Pair joins the folded name and unit into a single map key.
func Pair(name, unit string) string {
	return Fold(name) + "\x00" + Fold(unit)
}

// Contains reports whether the folded needle occurs in the folded haystack.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
