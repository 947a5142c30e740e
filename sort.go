package wordmap

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// sortResults orders search results by edit distance ascending, breaking
// ties by confidence descending. The sort is stable so equally ranked words
// keep their index insertion order.
func sortResults(results []SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].EditDistance != results[j].EditDistance {
			return results[i].EditDistance < results[j].EditDistance
		}
		return results[i].Confidence > results[j].Confidence
	})
}

func minOf[T constraints.Ordered](a, b T) T {
	if b < a {
		return b
	}
	return a
}

func maxOf[T constraints.Ordered](a, b T) T {
	if b > a {
		return b
	}
	return a
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
