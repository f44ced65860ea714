// Package normalize canonicalizes email text before classification. The
// exported functions are pure and deterministic, and Normalize is idempotent:
// applying it to its own output returns the output unchanged.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	multiSpace   = regexp.MustCompile(`[ ]{2,}`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
	// Keeps letters (accented Portuguese included), digits, underscores,
	// hyphens and whitespace; everything else is punctuation or symbol.
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	strayHyphen = regexp.MustCompile(`\s-\s`)
	onlyDigits  = regexp.MustCompile(`^[0-9]+$`)
)

// CleanWhitespace applies the light cleanup tier: line endings are unified
// to \n, tabs become single spaces, runs of spaces collapse to one, runs of
// three or more newlines collapse to exactly two, and the ends are trimmed.
func CleanWhitespace(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", " ")
	text = multiSpace.ReplaceAllString(text, " ")
	text = multiNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Normalize produces the canonical form handed to classifiers: whitespace
// cleanup, NFC folding, lowercasing, punctuation removal, Portuguese
// stopword and single-rune token removal, purely numeric token removal, and
// a final collapse to single-space-separated tokens. The result may be
// empty when the input carries no classifiable signal (all stopwords,
// punctuation or whitespace), which is a valid terminal state for callers.
func Normalize(text string) string {
	text = CleanWhitespace(text)
	if text == "" {
		return ""
	}
	// Fold to NFC first so decomposed accents ("e" + combining acute)
	// survive the punctuation filter as single letters.
	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	text = punctuation.ReplaceAllString(text, "")
	text = strayHyphen.ReplaceAllString(text, " ")

	fields := strings.Fields(text)
	kept := fields[:0]
	for _, tok := range fields {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if onlyDigits.MatchString(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
