package wordmap

import (
	"strings"
	"sync"
	"time"

	"github.com/oarkflow/gopool"
	"github.com/oarkflow/gopool/spinlock"
	"github.com/oarkflow/log"
	"github.com/oarkflow/xid"

	"github.com/oarkflow/wordmap/lib"
	"github.com/oarkflow/wordmap/normalizer"
)

// Engine is the top-level search orchestrator: it owns the index manager and
// the fuzzy matcher, runs the exhaustive ranked scan and accumulates usage
// statistics. Every query distance-scores the full vocabulary, so cost is
// O(vocabulary x word length) per call.
type Engine struct {
	key            string
	fuzzyThreshold float64
	matcher        *Matcher
	manager        *IndexManager
	cfg            *Config

	statsMu sync.Mutex
	stats   EngineStats
}

func New(cfg ...*Config) *Engine {
	c := GetConfig("")
	if len(cfg) > 0 && cfg[0] != nil {
		c = MergeConfigs(GetConfig(cfg[0].Key), cfg[0])
	}
	if c.Key == "" {
		c.Key = xid.New().String()
	}
	return &Engine{
		key:            c.Key,
		fuzzyThreshold: c.FuzzyThreshold,
		matcher:        NewMatcher(c.FuzzyThreshold),
		manager:        NewIndexManager(),
		cfg:            c,
	}
}

func (e *Engine) Key() string { return e.key }

func (e *Engine) Matcher() *Matcher { return e.matcher }

// LoadMappings feeds a word-to-columns map into the indexes one entry at a
// time.
func (e *Engine) LoadMappings(mappings map[string][]string) {
	for word, columns := range mappings {
		e.manager.AddMapping(word, columns)
	}
}

// LoadMappingsWithPool spreads a bulk load over a worker pool. Useful for
// large extraction dumps where normalization dominates load time.
func (e *Engine) LoadMappingsWithPool(mappings map[string][]string, noOfWorker, batchSize int) []error {
	if len(mappings) == 0 {
		return nil
	}
	var errs []error
	pool := gopool.NewGoPool(noOfWorker,
		gopool.WithTaskQueueSize(batchSize),
		gopool.WithLock(new(spinlock.SpinLock)),
		gopool.WithErrorCallback(func(err error) {
			errs = append(errs, err)
		}),
	)
	defer pool.Release()
	start := time.Now()
	for word, columns := range mappings {
		word, columns := word, columns
		pool.AddTask(func() (interface{}, error) {
			e.manager.AddMapping(word, columns)
			return nil, nil
		})
	}
	pool.Wait()
	log.Info().Str("key", e.key).Int("total_words", len(mappings)).Str("latency", time.Since(start).String()).Msg("Loaded mappings...")
	return errs
}

func (e *Engine) AddMapping(word string, columns []string) {
	e.manager.AddMapping(word, columns)
}

func (e *Engine) RemoveMapping(word string) bool {
	return e.manager.RemoveMapping(word)
}

func (e *Engine) UpdateMapping(word string, columns []string) {
	e.manager.UpdateMapping(word, columns)
}

func (e *Engine) AllWords() []string { return e.manager.AllWords() }

func (e *Engine) AllColumns() []string { return e.manager.AllColumns() }

func (e *Engine) WordVariants(word string) map[string]struct{} {
	return e.manager.WordVariants(word)
}

func (e *Engine) GetColumns(word string) ([]string, bool) {
	return e.manager.GetColumns(word)
}

// Search runs the exhaustive scan: every indexed word is scored with the
// inflated edit distance (|length difference| + Levenshtein) over the
// normalized forms, filtered by MaxEditDistance, ranked by distance then
// confidence and truncated to MaxResults. Blank queries return an empty
// response without touching the statistics.
func (e *Engine) Search(params *SearchParams) *SearchResponse {
	start := time.Now()
	if params == nil || strings.TrimSpace(params.Query) == "" {
		query := ""
		if params != nil {
			query = params.Query
		}
		return e.emptyResponse(query, start)
	}

	query := strings.TrimSpace(params.Query)
	threshold := params.FuzzyThreshold
	if threshold == 0 {
		threshold = e.fuzzyThreshold
	}
	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = e.cfg.MaxResults
	}
	maxEditDistance := params.MaxEditDistance
	if maxEditDistance <= 0 {
		maxEditDistance = e.cfg.MaxEditDistance
	}

	e.statsMu.Lock()
	e.stats.TotalQueries++
	e.statsMu.Unlock()

	results := e.scan(query, threshold, maxResults, maxEditDistance)

	if len(results) > 0 {
		hasExact := false
		var allColumns []string
		for _, result := range results {
			if result.MatchType == MatchExact {
				hasExact = true
			}
			allColumns = append(allColumns, result.Columns...)
		}

		execution := elapsedMs(start)
		e.statsMu.Lock()
		if hasExact {
			e.stats.ExactMatches++
		} else {
			e.stats.FuzzyMatches++
		}
		e.stats.TotalExecutionTime += execution
		e.statsMu.Unlock()

		return &SearchResponse{
			Query:              query,
			ExecutionTimeMs:    execution,
			ExactMatch:         hasExact,
			TotalResults:       len(results),
			Results:            results,
			TotalUniqueColumns: lib.Unique(allColumns),
			TotalAllColumns:    allColumns,
			Timestamp:          time.Now(),
		}
	}

	execution := elapsedMs(start)
	e.statsMu.Lock()
	e.stats.NoMatches++
	e.stats.TotalExecutionTime += execution
	e.statsMu.Unlock()

	var suggestions []string
	if params.IncludeSuggestions {
		suggestions = e.matcher.SuggestCorrections(query, e.manager.AllWords(), e.cfg.MaxSuggestions)
		if suggestions == nil {
			suggestions = []string{}
		}
	}

	return &SearchResponse{
		Query:              query,
		ExecutionTimeMs:    execution,
		TotalResults:       0,
		Results:            []SearchResult{},
		TotalUniqueColumns: []string{},
		TotalAllColumns:    []string{},
		Suggestions:        suggestions,
		Timestamp:          time.Now(),
	}
}

// scan distance-scores the whole vocabulary. The threshold is resolved by
// the caller for parity with the matcher API but the scan filters on edit
// distance alone; confidence gating belongs to the matcher paths.
func (e *Engine) scan(query string, threshold float64, maxResults, maxEditDistance int) []SearchResult {
	words := e.manager.AllWords()
	if len(words) == 0 {
		return nil
	}
	normalizedQuery := []rune(normalizer.Normalize(query))

	var results []SearchResult
	for _, word := range words {
		normalizedWord := []rune(normalizer.Normalize(word))
		lengthDiff := absDiff(len(normalizedQuery), len(normalizedWord))
		if lengthDiff > maxEditDistance {
			continue
		}
		distance, ok := lib.BoundedLevenshtein(normalizedQuery, normalizedWord, maxEditDistance-lengthDiff)
		if !ok {
			continue
		}
		// The reported edit distance is inflated: length difference plus the
		// Levenshtein distance, counting all operations instead of the
		// optimized path.
		editDistance := lengthDiff + distance

		columns, found := e.manager.GetColumns(word)
		if !found {
			continue
		}
		result := SearchResult{
			Word:         word,
			Columns:      columns,
			EditDistance: editDistance,
		}
		if editDistance == 0 {
			result.Confidence = 1.0
			result.MatchType = MatchExact
		} else {
			maxLen := maxOf(len(normalizedQuery), len(normalizedWord))
			if maxLen > 0 {
				result.Confidence = 1.0 - float64(editDistance)/float64(maxLen)
			}
			result.MatchType = MatchFuzzyLevenshtein
			result.Changes = e.matcher.GetEditOperations(query, word)
		}
		results = append(results, result)
	}
	sortResults(results)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// ReverseSearch lists the words mapped to a column identifier.
func (e *Engine) ReverseSearch(columnID string) (*ReverseLookupResult, bool) {
	start := time.Now()
	words, ok := e.manager.GetWords(columnID)
	if !ok || len(words) == 0 {
		return nil, false
	}
	return &ReverseLookupResult{
		ColumnID:        columnID,
		Words:           words,
		TotalMappings:   len(words),
		ExecutionTimeMs: elapsedMs(start),
	}, true
}

// IntersectionSearch returns the columns shared by every resolvable word.
// Words that resolve to nothing are skipped rather than emptying the
// intersection.
func (e *Engine) IntersectionSearch(words []string) (*SetOperationResult, SetOpStatus) {
	start := time.Now()
	if len(words) < 2 {
		return nil, SetOpInvalid
	}

	var resolved [][]string
	for _, word := range words {
		if columns, ok := e.manager.GetColumns(word); ok && len(columns) > 0 {
			resolved = append(resolved, columns)
		}
	}
	if len(resolved) == 0 {
		return nil, SetOpEmpty
	}

	intersection := resolved[0]
	for _, columns := range resolved[1:] {
		set := make(map[string]struct{}, len(columns))
		for _, c := range columns {
			set[c] = struct{}{}
		}
		var next []string
		for _, c := range intersection {
			if _, ok := set[c]; ok {
				next = append(next, c)
			}
		}
		intersection = next
	}
	intersection = lib.Unique(intersection)
	if len(intersection) == 0 {
		return nil, SetOpEmpty
	}

	return &SetOperationResult{
		QueryWords:      words,
		Operation:       AND,
		Columns:         intersection,
		TotalColumns:    len(intersection),
		ExecutionTimeMs: elapsedMs(start),
	}, SetOpOK
}

// UnionSearch returns every column associated with any of the words.
func (e *Engine) UnionSearch(words []string) (*SetOperationResult, SetOpStatus) {
	start := time.Now()
	if len(words) == 0 {
		return nil, SetOpInvalid
	}

	var all []string
	for _, word := range words {
		if columns, ok := e.manager.GetColumns(word); ok {
			all = append(all, columns...)
		}
	}
	union := lib.Unique(all)
	if len(union) == 0 {
		return nil, SetOpEmpty
	}

	return &SetOperationResult{
		QueryWords:      words,
		Operation:       OR,
		Columns:         union,
		TotalColumns:    len(union),
		ExecutionTimeMs: elapsedMs(start),
	}, SetOpOK
}

// GetStats snapshots the raw counters plus derived rates; all rates are zero
// until the first query.
func (e *Engine) GetStats() EngineStats {
	e.statsMu.Lock()
	stats := e.stats
	e.statsMu.Unlock()

	if stats.TotalQueries > 0 {
		total := float64(stats.TotalQueries)
		stats.AverageExecutionTimeMs = stats.TotalExecutionTime / total
		stats.ExactMatchRate = float64(stats.ExactMatches) / total
		stats.FuzzyMatchRate = float64(stats.FuzzyMatches) / total
		stats.NoMatchRate = float64(stats.NoMatches) / total
	}
	stats.IndexStats = e.manager.Stats()
	return stats
}

// Clear drops every mapping and resets all counters.
func (e *Engine) Clear() {
	e.manager.Clear()
	e.statsMu.Lock()
	e.stats = EngineStats{}
	e.statsMu.Unlock()
}

func (e *Engine) Manager() *IndexManager { return e.manager }

func (e *Engine) WordCount() int {
	return e.manager.Stats().ForwardIndex.TotalWords
}

func (e *Engine) emptyResponse(query string, start time.Time) *SearchResponse {
	return &SearchResponse{
		Query:              query,
		ExecutionTimeMs:    elapsedMs(start),
		Results:            []SearchResult{},
		TotalUniqueColumns: []string{},
		TotalAllColumns:    []string{},
		Timestamp:          time.Now(),
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
