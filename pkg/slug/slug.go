// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from material labels.
//
// A derived label such as "AutoMaterial steel gold GeneratedDef" becomes
// "automaterial-steel-gold-generateddef". Accented labels from content packs
// are folded to ASCII first.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	wellFormed      = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// The input is decomposed (NFD) and stripped of combining marks, lowercased,
// and every run of other characters becomes a single hyphen. Leading and
// trailing hyphens are dropped. A label with no letters or digits yields "".
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	folded, _, _ := transform.String(t, s)

	result := nonAlphanumeric.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(result, "-")
}

// Valid reports whether s is already in the form [From] produces.
func Valid(s string) bool {
	return wellFormed.MatchString(s)
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
