package wordmap

import (
	"time"

	"github.com/oarkflow/xid"
)

const (
	AND Mode = "AND"
	OR  Mode = "OR"
)

type Mode string

// Match type tags reported on search results. The tag names which scoring
// strategy produced the winning confidence.
const (
	MatchExact            = "exact"
	MatchFuzzyLevenshtein = "fuzzy_levenshtein"
	MatchFuzzyPartial     = "fuzzy_partial"
	MatchFuzzyTokenSort   = "fuzzy_token_sort"
	MatchFuzzyTokenSet    = "fuzzy_token_set"
	MatchFuzzySubstring   = "fuzzy_substring"
)

const (
	DefaultFuzzyThreshold  = 0.6
	DefaultMaxResults      = 10
	DefaultMaxEditDistance = 5
	DefaultMaxSuggestions  = 5
)

type SearchParams struct {
	Query              string  `json:"query"`
	FuzzyThreshold     float64 `json:"fuzzy_threshold"`
	MaxResults         int     `json:"max_results"`
	MaxEditDistance    int     `json:"max_edit_distance"`
	IncludeSuggestions bool    `json:"include_suggestions"`
}

// NewSearchParams returns params with the documented defaults; zero values
// for MaxResults and MaxEditDistance are re-defaulted inside Search as well.
func NewSearchParams(query string) *SearchParams {
	return &SearchParams{
		Query:              query,
		MaxResults:         DefaultMaxResults,
		MaxEditDistance:    DefaultMaxEditDistance,
		IncludeSuggestions: true,
	}
}

type SearchResult struct {
	Word         string   `json:"word"`
	Confidence   float64  `json:"confidence"`
	MatchType    string   `json:"match_type"`
	Columns      []string `json:"columns"`
	EditDistance int      `json:"edit_distance"`
	Changes      string   `json:"changes,omitempty"`
}

type SearchResponse struct {
	Query              string         `json:"query"`
	ExecutionTimeMs    float64        `json:"execution_time_ms"`
	ExactMatch         bool           `json:"exact_match"`
	TotalResults       int            `json:"total_results"`
	Results            []SearchResult `json:"results"`
	TotalUniqueColumns []string       `json:"total_unique_columns"`
	TotalAllColumns    []string       `json:"total_all_columns"`
	CacheHit           bool           `json:"cache_hit"`
	// Suggestions is nil when the query matched; on the no-match branch it
	// is always non-nil (possibly empty) if suggestions were requested.
	Suggestions []string  `json:"suggestions"`
	Timestamp   time.Time `json:"timestamp"`
}

type ReverseLookupResult struct {
	ColumnID        string   `json:"column_id"`
	Words           []string `json:"words"`
	TotalMappings   int      `json:"total_mappings"`
	ExecutionTimeMs float64  `json:"execution_time_ms"`
}

// SetOpStatus distinguishes "the operation could not run" from "the
// operation ran and produced nothing", which a single nil result cannot.
type SetOpStatus int

const (
	SetOpOK SetOpStatus = iota
	SetOpEmpty
	SetOpInvalid
)

func (s SetOpStatus) String() string {
	switch s {
	case SetOpOK:
		return "ok"
	case SetOpEmpty:
		return "empty"
	default:
		return "invalid"
	}
}

type SetOperationResult struct {
	QueryWords      []string `json:"query_words"`
	Operation       Mode     `json:"operation"`
	Columns         []string `json:"columns"`
	TotalColumns    int      `json:"total_columns"`
	ExecutionTimeMs float64  `json:"execution_time_ms"`
}

type ForwardIndexStats struct {
	TotalWords int `json:"total_words"`
	// TotalMappings is cumulative over the index lifetime: it grows on every
	// added mapping and is never decremented by removals.
	TotalMappings int64      `json:"total_mappings"`
	LastUpdated   *time.Time `json:"last_updated"`
}

type ReverseIndexStats struct {
	TotalColumns  int        `json:"total_columns"`
	TotalMappings int        `json:"total_mappings"`
	LastUpdated   *time.Time `json:"last_updated"`
}

type IndexStats struct {
	ForwardIndex       ForwardIndexStats `json:"forward_index"`
	ReverseIndex       ReverseIndexStats `json:"reverse_index"`
	TotalUniqueColumns int               `json:"total_unique_columns"`
}

type EngineStats struct {
	TotalQueries       int64   `json:"total_queries"`
	ExactMatches       int64   `json:"exact_matches"`
	FuzzyMatches       int64   `json:"fuzzy_matches"`
	NoMatches          int64   `json:"no_matches"`
	TotalExecutionTime float64 `json:"total_execution_time"`
	// Reserved for a result cache in front of the scan; never written today.
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`

	AverageExecutionTimeMs float64    `json:"average_execution_time_ms"`
	ExactMatchRate         float64    `json:"exact_match_rate"`
	FuzzyMatchRate         float64    `json:"fuzzy_match_rate"`
	NoMatchRate            float64    `json:"no_match_rate"`
	IndexStats             IndexStats `json:"index_stats"`
}

type Config struct {
	Key             string  `json:"key"`
	FuzzyThreshold  float64 `json:"fuzzy_threshold"`
	MaxResults      int     `json:"max_results"`
	MaxEditDistance int     `json:"max_edit_distance"`
	MaxSuggestions  int     `json:"max_suggestions"`
}

func GetConfig(key string) *Config {
	if key == "" {
		key = xid.New().String()
	}
	return &Config{
		Key:             key,
		FuzzyThreshold:  DefaultFuzzyThreshold,
		MaxResults:      DefaultMaxResults,
		MaxEditDistance: DefaultMaxEditDistance,
		MaxSuggestions:  DefaultMaxSuggestions,
	}
}

// MergeConfigs merges multiple Config structs into one, later values winning.
func MergeConfigs(configs ...*Config) *Config {
	merged := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Key != "" {
			merged.Key = cfg.Key
		}
		if cfg.FuzzyThreshold != 0 {
			merged.FuzzyThreshold = cfg.FuzzyThreshold
		}
		if cfg.MaxResults != 0 {
			merged.MaxResults = cfg.MaxResults
		}
		if cfg.MaxEditDistance != 0 {
			merged.MaxEditDistance = cfg.MaxEditDistance
		}
		if cfg.MaxSuggestions != 0 {
			merged.MaxSuggestions = cfg.MaxSuggestions
		}
	}
	return merged
}
