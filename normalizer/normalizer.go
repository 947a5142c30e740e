// Package normalizer canonicalizes free-text words so that case and
// delimiter variants resolve to a single comparable form.
package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	delimiterRe  = regexp.MustCompile(`[-_]|\s+`)
	underscoreRe = regexp.MustCompile(`_+`)
	stripRe      = regexp.MustCompile(`[-_\s]+`)
	hyphenRe     = regexp.MustCompile(`[_]+`)
)

// Normalize lower-cases, applies Unicode compatibility decomposition,
// replaces delimiter runs with a single underscore and trims the edges.
// Empty input yields "". Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	normalized := strings.ToLower(text)
	normalized = norm.NFKD.String(normalized)
	normalized = delimiterRe.ReplaceAllString(normalized, "_")
	normalized = underscoreRe.ReplaceAllString(normalized, "_")
	return strings.Trim(normalized, "_")
}

// GenerateVariants produces the normalized form plus delimiter-free,
// space-joined and hyphen-joined spellings, for alias and suggestion use.
func GenerateVariants(text string) map[string]struct{} {
	variants := make(map[string]struct{})
	variants[Normalize(text)] = struct{}{}

	lower := strings.ToLower(text)
	if noDelims := stripRe.ReplaceAllString(lower, ""); noDelims != "" {
		variants[noDelims] = struct{}{}
	}
	if withSpaces := strings.TrimSpace(delimiterRe.ReplaceAllString(lower, " ")); withSpaces != "" {
		variants[withSpaces] = struct{}{}
	}
	if withHyphens := strings.TrimSpace(hyphenRe.ReplaceAllString(lower, "-")); withHyphens != "" {
		variants[withHyphens] = struct{}{}
	}
	return variants
}

// Tokenize normalizes and splits on the underscore delimiter.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	for _, token := range strings.Split(Normalize(text), "_") {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// CalculateSimilarity is a coarse secondary signal: 1 when the normalized
// forms are equal, otherwise the Jaccard similarity of their character sets.
func CalculateSimilarity(text1, text2 string) float64 {
	norm1 := Normalize(text1)
	norm2 := Normalize(text2)

	if norm1 == norm2 {
		return 1.0
	}
	if norm1 == "" || norm2 == "" {
		return 0.0
	}

	set1 := runeSet(norm1)
	set2 := runeSet(norm2)

	intersection := 0
	for r := range set1 {
		if _, ok := set2[r]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
