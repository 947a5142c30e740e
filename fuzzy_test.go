package wordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBestMatchExact(t *testing.T) {
	m := NewMatcher(0)
	match, found := m.FindBestMatch("START_DATE", []string{"other", "start_date"})
	require.True(t, found)
	assert.Equal(t, "start_date", match.Word)
	assert.Equal(t, 1.0, match.Confidence)
	assert.Equal(t, MatchExact, match.MatchType)
	assert.Equal(t, 0, match.EditDistance)
}

func TestFindBestMatchBelowThreshold(t *testing.T) {
	m := NewMatcher(0)
	_, found := m.FindBestMatch("xyz", []string{"date"})
	assert.False(t, found)
}

func TestFindBestMatchFirstQualifyingWins(t *testing.T) {
	m := NewMatcher(0)
	// Both candidates contain the query and score identically; the strict
	// comparison keeps whichever came first.
	match, found := m.FindBestMatch("date", []string{"dates", "datee"})
	require.True(t, found)
	assert.Equal(t, "dates", match.Word)

	match, found = m.FindBestMatch("date", []string{"datee", "dates"})
	require.True(t, found)
	assert.Equal(t, "datee", match.Word)
}

func TestFindBestMatchSubstringOverride(t *testing.T) {
	m := NewMatcher(0)
	match, found := m.FindBestMatch("dat", []string{"start_date"})
	require.True(t, found)
	assert.Equal(t, MatchFuzzySubstring, match.MatchType)
	assert.Equal(t, 1.0, match.Confidence)
	// The override reports the length difference, not the Levenshtein
	// distance.
	assert.Equal(t, 7, match.EditDistance)
}

func TestFindMultipleMatches(t *testing.T) {
	m := NewMatcher(0)
	matches := m.FindMultipleMatches("date", []string{"date", "dates", "xyz"}, 10)
	require.Len(t, matches, 2)
	assert.Equal(t, "date", matches[0].Word)
	assert.Equal(t, MatchExact, matches[0].MatchType)
	assert.Equal(t, "dates", matches[1].Word)

	matches = m.FindMultipleMatches("date", []string{"date", "dates", "datee"}, 2)
	assert.Len(t, matches, 2)
}

func TestGetEditOperations(t *testing.T) {
	m := NewMatcher(0)
	assert.Equal(t, "No changes", m.GetEditOperations("date", "date"))
	assert.Equal(t, "Insert 1 character(s)", m.GetEditOperations("dat", "date"))
	assert.Equal(t, "Delete 1 character(s)", m.GetEditOperations("dates", "date"))
	assert.Equal(t, "Substitute 1 character(s)", m.GetEditOperations("date", "dote"))
}

func TestSuggestCorrections(t *testing.T) {
	m := NewMatcher(0)
	suggestions := m.SuggestCorrections("dat", []string{"date", "start_date", "xyz"}, 5)
	assert.Equal(t, []string{"date"}, suggestions)

	// Truncation to max suggestions runs before the threshold filter.
	suggestions = m.SuggestCorrections("dat", []string{"date", "data"}, 1)
	assert.Equal(t, []string{"date"}, suggestions)

	assert.Nil(t, m.SuggestCorrections("", []string{"date"}, 5))
	assert.Empty(t, m.SuggestCorrections("dat", []string{"xyz"}, 5))
}
