package wordmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEngine() *Engine {
	e := New()
	e.LoadMappings(map[string][]string{
		"date":       {"column3423", "column5738", "column3846", "column4632"},
		"start_date": {"c2", "c4"},
		"end_date":   {"c1", "c3"},
	})
	return e
}

func TestSearchExactMatch(t *testing.T) {
	e := sampleEngine()
	response := e.Search(NewSearchParams("date"))

	require.Equal(t, 1, response.TotalResults)
	result := response.Results[0]
	assert.Equal(t, "date", result.Word)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, MatchExact, result.MatchType)
	assert.Equal(t, 0, result.EditDistance)
	assert.Equal(t, []string{"column3423", "column5738", "column3846", "column4632"}, result.Columns)
	assert.True(t, response.ExactMatch)
	assert.Nil(t, response.Suggestions)
}

func TestSearchSingleTypo(t *testing.T) {
	e := sampleEngine()
	response := e.Search(NewSearchParams("dat"))

	require.Equal(t, 1, response.TotalResults)
	result := response.Results[0]
	assert.Equal(t, "date", result.Word)
	// Reported distance is the length difference plus the Levenshtein
	// distance, so a single missing character counts twice.
	assert.Equal(t, 2, result.EditDistance)
	assert.InDelta(t, 0.5, result.Confidence, 1e-9)
	assert.Equal(t, MatchFuzzyLevenshtein, result.MatchType)
	assert.Equal(t, "Insert 1 character(s)", result.Changes)
	assert.False(t, response.ExactMatch)
}

func TestSearchCaseAndDelimiterInsensitive(t *testing.T) {
	e := sampleEngine()
	for _, query := range []string{"START_DATE", "Start-Date", "start date"} {
		response := e.Search(NewSearchParams(query))
		require.Equal(t, 1, response.TotalResults, "query %q", query)
		assert.Equal(t, "start_date", response.Results[0].Word)
		assert.Equal(t, MatchExact, response.Results[0].MatchType)
		assert.True(t, response.ExactMatch)
	}
}

func TestSearchNoMatch(t *testing.T) {
	e := sampleEngine()
	response := e.Search(NewSearchParams("xyz123"))

	assert.Equal(t, 0, response.TotalResults)
	assert.Empty(t, response.Results)
	assert.False(t, response.ExactMatch)
	// Suggestions may be empty but are never absent when requested.
	assert.NotNil(t, response.Suggestions)
}

func TestSearchBlankQuery(t *testing.T) {
	e := sampleEngine()
	response := e.Search(NewSearchParams("   "))
	assert.Equal(t, 0, response.TotalResults)
	assert.Empty(t, response.Results)

	response = e.Search(nil)
	assert.Equal(t, 0, response.TotalResults)

	// Blank queries never touch the statistics.
	assert.Equal(t, int64(0), e.GetStats().TotalQueries)
}

func TestSearchColumnTotals(t *testing.T) {
	e := New()
	e.LoadMappings(map[string][]string{
		"date":  {"c1", "c2"},
		"datee": {"c2", "c3"},
	})
	response := e.Search(NewSearchParams("date"))
	require.Equal(t, 2, response.TotalResults)
	assert.Equal(t, []string{"c1", "c2", "c2", "c3"}, response.TotalAllColumns)
	assert.Equal(t, []string{"c1", "c2", "c3"}, response.TotalUniqueColumns)
	// An exact hit anywhere in the list flags the whole response.
	assert.True(t, response.ExactMatch)
}

func TestSearchBounds(t *testing.T) {
	e := New()
	mappings := make(map[string][]string)
	for i := 0; i < 10; i++ {
		mappings[fmt.Sprintf("dat%d", i)] = []string{fmt.Sprintf("c%d", i)}
	}
	e.LoadMappings(mappings)

	params := NewSearchParams("date")
	params.MaxResults = 3
	response := e.Search(params)
	assert.LessOrEqual(t, response.TotalResults, 3)

	params = NewSearchParams("date")
	params.MaxEditDistance = 2
	response = e.Search(params)
	for _, result := range response.Results {
		assert.LessOrEqual(t, result.EditDistance, 2)
	}
}

func TestSearchRanking(t *testing.T) {
	e := New()
	e.LoadMappings(map[string][]string{
		"dates": {"c1"},
		"date":  {"c2"},
	})
	response := e.Search(NewSearchParams("date"))
	require.Equal(t, 2, response.TotalResults)
	assert.Equal(t, "date", response.Results[0].Word)
	assert.Equal(t, "dates", response.Results[1].Word)
}

func TestReverseSearch(t *testing.T) {
	e := sampleEngine()
	result, found := e.ReverseSearch("c2")
	require.True(t, found)
	assert.Equal(t, "c2", result.ColumnID)
	assert.Equal(t, []string{"start_date"}, result.Words)
	assert.Equal(t, 1, result.TotalMappings)

	_, found = e.ReverseSearch("nope")
	assert.False(t, found)
}

func TestIntersectionSearch(t *testing.T) {
	e := New()
	e.LoadMappings(map[string][]string{
		"date":       {"c1", "c2", "c3", "c4"},
		"start_date": {"c2", "c4"},
		"end_date":   {"c1", "c3"},
	})

	result, status := e.IntersectionSearch([]string{"date", "start_date"})
	require.Equal(t, SetOpOK, status)
	assert.Equal(t, []string{"c2", "c4"}, result.Columns)
	assert.Equal(t, AND, result.Operation)
	assert.Equal(t, 2, result.TotalColumns)

	_, status = e.IntersectionSearch([]string{"date"})
	assert.Equal(t, SetOpInvalid, status)

	_, status = e.IntersectionSearch([]string{"start_date", "end_date"})
	assert.Equal(t, SetOpEmpty, status)

	_, status = e.IntersectionSearch([]string{"ghost", "phantom"})
	assert.Equal(t, SetOpEmpty, status)
}

func TestUnionSearch(t *testing.T) {
	e := New()
	e.LoadMappings(map[string][]string{
		"start_date": {"c2", "c4"},
		"end_date":   {"c1", "c3"},
	})

	result, status := e.UnionSearch([]string{"start_date", "end_date"})
	require.Equal(t, SetOpOK, status)
	assert.ElementsMatch(t, []string{"c1", "c2", "c3", "c4"}, result.Columns)
	assert.Equal(t, OR, result.Operation)

	_, status = e.UnionSearch(nil)
	assert.Equal(t, SetOpInvalid, status)

	_, status = e.UnionSearch([]string{"ghost"})
	assert.Equal(t, SetOpEmpty, status)
}

func TestStatsAccuracy(t *testing.T) {
	e := sampleEngine()
	e.Search(NewSearchParams("date"))
	e.Search(NewSearchParams("start_date"))
	e.Search(NewSearchParams("dat"))
	e.Search(NewSearchParams("datee"))
	e.Search(NewSearchParams("xyz123"))

	stats := e.GetStats()
	assert.Equal(t, int64(5), stats.TotalQueries)
	assert.Equal(t, int64(2), stats.ExactMatches)
	assert.Equal(t, int64(2), stats.FuzzyMatches)
	assert.Equal(t, int64(1), stats.NoMatches)
	assert.InDelta(t, 0.4, stats.ExactMatchRate, 1e-9)
	assert.InDelta(t, 0.4, stats.FuzzyMatchRate, 1e-9)
	assert.InDelta(t, 0.2, stats.NoMatchRate, 1e-9)
	assert.Greater(t, stats.AverageExecutionTimeMs, 0.0)
	assert.Equal(t, 3, stats.IndexStats.ForwardIndex.TotalWords)
}

func TestStatsZeroBeforeFirstQuery(t *testing.T) {
	e := sampleEngine()
	stats := e.GetStats()
	assert.Equal(t, int64(0), stats.TotalQueries)
	assert.Equal(t, 0.0, stats.ExactMatchRate)
	assert.Equal(t, 0.0, stats.AverageExecutionTimeMs)
}

func TestEngineClear(t *testing.T) {
	e := sampleEngine()
	e.Search(NewSearchParams("date"))
	e.Clear()

	assert.Empty(t, e.AllWords())
	assert.Equal(t, int64(0), e.GetStats().TotalQueries)
}

func TestLoadMappingsWithPool(t *testing.T) {
	e := New()
	mappings := make(map[string][]string)
	for i := 0; i < 100; i++ {
		mappings[fmt.Sprintf("word%d", i)] = []string{fmt.Sprintf("c%d", i)}
	}
	errs := e.LoadMappingsWithPool(mappings, 4, 10)
	assert.Empty(t, errs)
	assert.Len(t, e.AllWords(), 100)
}

func TestEngineRegistry(t *testing.T) {
	key := "registry-test"
	defer RemoveEngine(key)

	_, err := GetEngine(key)
	assert.Error(t, err)

	created := GetOrSetEngine(key)
	fetched, err := GetEngine(key)
	require.NoError(t, err)
	assert.Same(t, created, fetched)
	assert.Contains(t, AvailableEngines(), key)

	replaced := SetEngine(key, &Config{FuzzyThreshold: 0.8})
	assert.NotSame(t, created, replaced)
}
