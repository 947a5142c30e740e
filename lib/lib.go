package lib

import (
	"strings"
	"unicode"
)

// Levenshtein returns the minimum number of single-character insertions,
// deletions and substitutions needed to turn a into b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// IndelDistance is the edit distance when only insertions and deletions are
// allowed; a substitution counts as one deletion plus one insertion.
func IndelDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	lcs := longestCommonSubsequence(ra, rb)
	return len(ra) + len(rb) - 2*lcs
}

func longestCommonSubsequence(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	return prev[len(b)]
}

// BoundedLevenshtein computes the Levenshtein distance between a and b as
// long as it does not exceed tolerance. The boolean reports whether the
// distance stayed within tolerance.
func BoundedLevenshtein(a []rune, b []rune, tolerance int) (int, bool) {
	distance := boundedLevenshtein(a, b, tolerance)
	return distance, distance >= 0
}

/**
 * Inspired by:
 * https://github.com/Yomguithereal/talisman/blob/86ae55cbd040ff021d05e282e0e6c71f2dde21f8/src/metrics/levenshtein.js#L218-L340
 */
func boundedLevenshtein(a []rune, b []rune, tolerance int) int {
	// the strings are the same
	if string(a) == string(b) {
		return 0
	}

	// a should be the shortest string
	if len(a) > len(b) {
		a, b = b, a
	}

	// ignore common suffix
	lenA, lenB := len(a), len(b)
	for lenA > 0 && a[lenA-1] == b[lenB-1] {
		lenA--
		lenB--
	}

	// early return when the smallest string is empty
	if lenA == 0 {
		if lenB > tolerance {
			return -1
		}
		return lenB
	}

	// ignore common prefix
	startIdx := 0
	for startIdx < lenA && a[startIdx] == b[startIdx] {
		startIdx++
	}
	lenA -= startIdx
	lenB -= startIdx

	if lenA == 0 {
		if lenB > tolerance {
			return -1
		}
		return lenB
	}

	delta := lenB - lenA

	if tolerance > lenB {
		tolerance = lenB
	} else if delta > tolerance {
		return -1
	}

	i := 0
	row := make([]int, lenB)
	characterCodeCache := make([]int, lenB)

	for i < tolerance {
		characterCodeCache[i] = int(b[startIdx+i])
		row[i] = i + 1
		i++
	}

	for i < lenB {
		characterCodeCache[i] = int(b[startIdx+i])
		row[i] = tolerance + 1
		i++
	}

	offset := tolerance - delta
	haveMax := tolerance < lenB

	jStart := 0
	jEnd := tolerance

	var current, left, above, charA, j int

	for i := 0; i < lenA; i++ {
		left = i
		current = i + 1

		charA = int(a[startIdx+i])
		if i > offset {
			jStart = 1
		}
		if jEnd < lenB {
			jEnd++
		}

		for j = jStart; j < jEnd; j++ {
			above = current

			current = left
			left = row[j]

			if charA != characterCodeCache[j] {
				// insert current
				if left < current {
					current = left
				}

				// delete current
				if above < current {
					current = above
				}

				current++
			}

			row[j] = current
		}

		if haveMax && row[i+delta] > tolerance {
			return -1
		}
	}

	if current <= tolerance {
		return current
	}

	return -1
}

// SplitTokens splits on underscores, hyphens and whitespace, dropping empty
// tokens.
func SplitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
}

func Paginate(offset int, limit int, sliceLength int) (int, int) {
	if offset > sliceLength {
		offset = sliceLength
	}

	end := offset + limit
	if end > sliceLength {
		end = sliceLength
	}

	return offset, end
}

func Unique[T comparable](slice []T) (result []T) {
	seen := make(map[T]struct{})
	for _, v := range slice {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	clear(seen)
	return result
}

func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
