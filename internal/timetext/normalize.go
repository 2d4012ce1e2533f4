// Package timetext canonicalises, validates and classifies the free-form
// timestamp strings shown next to inbox rows.
package timetext

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRun = regexp.MustCompile(`\s+`)

	clockPattern     = regexp.MustCompile(`\d{1,2}:\d{2}`)
	dateTokenPattern = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|today|yesterday|\d{1,2}/\d{1,2})`)
)

// Normalize maps no-break spaces to plain spaces, collapses whitespace runs
// and trims. NFKC also folds full-width digits and colons to ASCII.
func Normalize(s string) string {
	s = strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
	s = norm.NFKC.String(s)
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// IsValid reports whether s plausibly names a time or date.
func IsValid(s string) bool {
	if len(s) < 2 {
		return false
	}
	return clockPattern.MatchString(s) || dateTokenPattern.MatchString(s)
}
