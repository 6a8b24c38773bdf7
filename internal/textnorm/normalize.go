// Package textnorm normalizes words for letter comparison.
//
// Comparison always happens on the normalized form: decomposed, stripped of
// combining marks and upper-cased. Callers keep the original string for
// display.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes s and drops combining marks (e.g. "Ó" -> "O").
func stripMarks(s string) string {
	// transform.Chain keeps internal state, so build one per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize returns the uppercase, diacritic-free form of word.
// Normalize(Normalize(w)) == Normalize(w).
func Normalize(word string) string {
	if word == "" {
		return ""
	}
	// Upper-casing can produce compatibility forms (ligatures, etc.), so strip
	// once more to keep the result stable.
	return stripMarks(strings.ToUpper(stripMarks(word)))
}

// Length is the number of characters in the normalized form of word.
func Length(word string) int {
	return utf8.RuneCountInString(Normalize(word))
}

// IsLetter reports whether r is a guessable letter (A-Z).
func IsLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Letter normalizes a guess and returns it if it is exactly one letter A-Z.
func Letter(input string) (rune, bool) {
	n := Normalize(strings.TrimSpace(input))
	if utf8.RuneCountInString(n) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(n)
	if !IsLetter(r) {
		return 0, false
	}
	return r, true
}

// Letters returns the set of guessable letters in word.
func Letters(word string) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range Normalize(word) {
		if IsLetter(r) {
			set[r] = struct{}{}
		}
	}
	return set
}

// DisplayLength counts the characters of word as a player sees them
// (composed form), so "café" is 4 whether stored as NFC or NFD.
func DisplayLength(word string) int {
	return utf8.RuneCountInString(norm.NFC.String(word))
}
