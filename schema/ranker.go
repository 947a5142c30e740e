package schema

import (
	"math"
	"sort"
)

type Ranking struct {
	Table                string   `json:"table"`
	Frequency            int      `json:"frequency"`
	Percentage           float64  `json:"percentage"`
	KeywordCount         int      `json:"keyword_count,omitempty"`
	ContributingKeywords []string `json:"contributing_keywords,omitempty"`
}

// KeywordTables pairs one search keyword with the tables its matched columns
// belong to.
type KeywordTables struct {
	Keyword string   `json:"keyword"`
	Tables  []string `json:"tables"`
}

// RankByFrequency counts table occurrences and returns them sorted by
// frequency descending, ties broken by first appearance. Percentage is the
// share of all occurrences, rounded to two decimals.
func RankByFrequency(allTables []string, minFrequency int) []Ranking {
	if len(allTables) == 0 {
		return nil
	}
	if minFrequency < 1 {
		minFrequency = 1
	}
	counts := make(map[string]int)
	var order []string
	for _, table := range allTables {
		if counts[table] == 0 {
			order = append(order, table)
		}
		counts[table]++
	}
	total := len(allTables)
	var rankings []Ranking
	for _, table := range order {
		count := counts[table]
		if count < minFrequency {
			continue
		}
		rankings = append(rankings, Ranking{
			Table:      table,
			Frequency:  count,
			Percentage: roundPercent(count, total),
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Frequency > rankings[j].Frequency
	})
	return rankings
}

// RankByKeywordRelevance ranks tables across multiple keyword results by
// total occurrence frequency, reporting which keywords contributed to each
// table.
func RankByKeywordRelevance(results []KeywordTables, minKeywords int) []Ranking {
	if len(results) == 0 {
		return nil
	}
	if minKeywords < 1 {
		minKeywords = 1
	}
	keywordsByTable := make(map[string]map[string]struct{})
	frequency := make(map[string]int)
	var order []string
	totalOccurrences := 0
	for _, result := range results {
		for _, table := range result.Tables {
			if _, seen := keywordsByTable[table]; !seen {
				keywordsByTable[table] = make(map[string]struct{})
				order = append(order, table)
			}
			keywordsByTable[table][result.Keyword] = struct{}{}
			frequency[table]++
			totalOccurrences++
		}
	}

	var rankings []Ranking
	for _, table := range order {
		keywords := make([]string, 0, len(keywordsByTable[table]))
		for keyword := range keywordsByTable[table] {
			keywords = append(keywords, keyword)
		}
		if len(keywords) < minKeywords {
			continue
		}
		sort.Strings(keywords)
		rankings = append(rankings, Ranking{
			Table:                table,
			Frequency:            frequency[table],
			Percentage:           roundPercent(frequency[table], totalOccurrences),
			KeywordCount:         len(keywords),
			ContributingKeywords: keywords,
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Frequency > rankings[j].Frequency
	})
	return rankings
}

// TopTables returns the n most frequent table names.
func TopTables(allTables []string, n int) []string {
	rankings := RankByFrequency(allTables, 1)
	if n > 0 && len(rankings) > n {
		rankings = rankings[:n]
	}
	tables := make([]string, 0, len(rankings))
	for _, ranking := range rankings {
		tables = append(tables, ranking.Table)
	}
	return tables
}

// Frequencies folds ranked keyword results into the table frequency map the
// traversal seeds from.
func Frequencies(results []KeywordTables) map[string]int {
	frequencies := make(map[string]int)
	for _, result := range results {
		for _, table := range result.Tables {
			frequencies[table]++
		}
	}
	return frequencies
}

func roundPercent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}
