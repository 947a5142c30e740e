package lib

import (
	"sort"
	"strings"
)

// Ratio scores the similarity of a and b on a 0-100 scale using the
// normalized indel distance: 100 means equal, 0 means nothing in common.
func Ratio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	if la == 0 || lb == 0 {
		return 0
	}
	return 100 * float64(la+lb-IndelDistance(a, b)) / float64(la+lb)
}

// PartialRatio slides the shorter string over the longer one and returns the
// best Ratio of any equally sized window, so a good substring alignment
// scores high even when the lengths differ a lot.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return Ratio(a, b)
	}
	shorter, longer := ra, rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		score := Ratio(string(shorter), string(longer[i:i+len(shorter)]))
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}

// TokenSortRatio tokenizes both strings, sorts the tokens and scores the
// space-joined results, making the comparison insensitive to word order.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortedTokenString(a), sortedTokenString(b))
}

// TokenSetRatio compares the token intersection against each side's
// remainder, so shared words dominate the score regardless of extras.
func TokenSetRatio(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return Ratio(a, b)
	}

	var common, diffA, diffB []string
	for t := range tokensA {
		if _, ok := tokensB[t]; ok {
			common = append(common, t)
		} else {
			diffA = append(diffA, t)
		}
	}
	for t := range tokensB {
		if _, ok := tokensA[t]; !ok {
			diffB = append(diffB, t)
		}
	}
	sort.Strings(common)
	sort.Strings(diffA)
	sort.Strings(diffB)

	base := strings.Join(common, " ")
	combinedA := strings.TrimSpace(base + " " + strings.Join(diffA, " "))
	combinedB := strings.TrimSpace(base + " " + strings.Join(diffB, " "))

	best := Ratio(base, combinedA)
	if score := Ratio(base, combinedB); score > best {
		best = score
	}
	if score := Ratio(combinedA, combinedB); score > best {
		best = score
	}
	return best
}

func sortedTokenString(s string) string {
	tokens := SplitTokens(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range SplitTokens(s) {
		set[t] = struct{}{}
	}
	return set
}
