package wordmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oarkflow/wordmap/lib"
	"github.com/oarkflow/wordmap/normalizer"
)

// Matcher scores a query against candidate words with several string
// distance strategies. It is stateless apart from the default threshold.
type Matcher struct {
	threshold float64
}

func NewMatcher(threshold float64) *Matcher {
	if threshold == 0 {
		threshold = DefaultFuzzyThreshold
	}
	return &Matcher{threshold: threshold}
}

type Match struct {
	Word         string  `json:"word"`
	Confidence   float64 `json:"confidence"`
	MatchType    string  `json:"match_type"`
	EditDistance int     `json:"edit_distance"`
}

// FindBestMatch returns the first candidate whose confidence strictly beats
// the running best and meets the threshold. An exact normalized match wins
// immediately. The strict comparison makes the result depend on candidate
// order when confidences tie.
func (m *Matcher) FindBestMatch(query string, candidates []string, threshold ...float64) (Match, bool) {
	if query == "" || len(candidates) == 0 {
		return Match{}, false
	}
	limit := m.threshold
	if len(threshold) > 0 && threshold[0] != 0 {
		limit = threshold[0]
	}
	normalizedQuery := normalizer.Normalize(query)

	var best Match
	found := false
	for _, candidate := range candidates {
		normalizedCandidate := normalizer.Normalize(candidate)
		if normalizedQuery == normalizedCandidate {
			return Match{Word: candidate, Confidence: 1.0, MatchType: MatchExact}, true
		}
		confidence, matchType, distance := m.score(normalizedQuery, normalizedCandidate)
		if confidence > best.Confidence && confidence >= limit {
			best = Match{Word: candidate, Confidence: confidence, MatchType: matchType, EditDistance: distance}
			found = true
		}
	}
	return best, found
}

// FindMultipleMatches collects every candidate meeting the threshold, exact
// normalized matches first-class at confidence 1, sorted by confidence
// descending and truncated to maxResults.
func (m *Matcher) FindMultipleMatches(query string, candidates []string, maxResults int, threshold ...float64) []Match {
	if query == "" || len(candidates) == 0 {
		return nil
	}
	limit := m.threshold
	if len(threshold) > 0 && threshold[0] != 0 {
		limit = threshold[0]
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	normalizedQuery := normalizer.Normalize(query)

	var matches []Match
	for _, candidate := range candidates {
		normalizedCandidate := normalizer.Normalize(candidate)
		exact := normalizedQuery == normalizedCandidate
		if exact {
			matches = append(matches, Match{Word: candidate, Confidence: 1.0, MatchType: MatchExact})
		}
		// The fuzzy path still runs for exact candidates; only the append is
		// guarded, so one candidate never appears twice.
		confidence, matchType, distance := m.score(normalizedQuery, normalizedCandidate)
		if confidence >= limit && !exact {
			matches = append(matches, Match{Word: candidate, Confidence: confidence, MatchType: matchType, EditDistance: distance})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}

// score runs the four ratio strategies and picks the highest, then applies
// the substring override: containment boosts the winning ratio by 0.1
// (capped at 1), retags the match as fuzzy_substring and replaces the
// reported distance with the length difference. The override runs after the
// four-way selection on purpose, so it can rewrite the type and distance
// even when a non-substring strategy produced the winning ratio.
func (m *Matcher) score(query, candidate string) (float64, string, int) {
	distance := lib.Levenshtein(query, candidate)
	maxLen := maxOf(len([]rune(query)), len([]rune(candidate)))
	levenshteinRatio := 0.0
	if maxLen > 0 {
		levenshteinRatio = 1.0 - float64(distance)/float64(maxLen)
	}
	partialRatio := lib.PartialRatio(query, candidate) / 100.0
	tokenSortRatio := lib.TokenSortRatio(query, candidate) / 100.0
	tokenSetRatio := lib.TokenSetRatio(query, candidate) / 100.0

	bestRatio, bestType := levenshteinRatio, MatchFuzzyLevenshtein
	if partialRatio > bestRatio {
		bestRatio, bestType = partialRatio, MatchFuzzyPartial
	}
	if tokenSortRatio > bestRatio {
		bestRatio, bestType = tokenSortRatio, MatchFuzzyTokenSort
	}
	if tokenSetRatio > bestRatio {
		bestRatio, bestType = tokenSetRatio, MatchFuzzyTokenSet
	}
	bestDistance := distance

	if strings.Contains(candidate, query) || strings.Contains(query, candidate) {
		bestRatio = minOf(1.0, bestRatio+0.1)
		bestType = MatchFuzzySubstring
		if len(candidate) >= len(query) {
			bestDistance = len([]rune(candidate)) - len([]rune(query))
		} else {
			bestDistance = len([]rune(query)) - len([]rune(candidate))
		}
	}
	return bestRatio, bestType, bestDistance
}

// GetEditOperations describes the transformation from query to target with a
// coarse length-based classification, not a real alignment. The exact
// strings are part of the response contract.
func (m *Matcher) GetEditOperations(query, target string) string {
	if query == target {
		return "No changes"
	}
	lenQuery := len([]rune(query))
	lenTarget := len([]rune(target))
	switch {
	case lenQuery < lenTarget:
		return fmt.Sprintf("Insert %d character(s)", lenTarget-lenQuery)
	case lenQuery > lenTarget:
		return fmt.Sprintf("Delete %d character(s)", lenQuery-lenTarget)
	default:
		return fmt.Sprintf("Substitute %d character(s)", lib.Levenshtein(query, target))
	}
}

// SuggestCorrections ranks candidates by the whole-string ratio alone. This
// is deliberately a different algorithm from the search scan and from the
// four-way scorer; downstream consumers depend on each path's output shape.
func (m *Matcher) SuggestCorrections(query string, candidates []string, maxSuggestions int) []string {
	if query == "" || len(candidates) == 0 {
		return nil
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	type scored struct {
		word  string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, scored{word: candidate, score: lib.Ratio(query, candidate)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	var suggestions []string
	for _, s := range ranked {
		if s.score >= m.threshold*100 {
			suggestions = append(suggestions, s.word)
		}
	}
	return suggestions
}
