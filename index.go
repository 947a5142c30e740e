package wordmap

import (
	"time"

	"github.com/oarkflow/wordmap/lib"
	"github.com/oarkflow/wordmap/normalizer"
)

// ForwardIndex maps words to their column lists and keeps a normalized-form
// alias table for case/delimiter-insensitive lookup. It is not synchronized;
// the IndexManager owns all locking.
type ForwardIndex struct {
	index      map[string][]string
	normalized map[string]string // normalized form -> original word, last write wins
	order      []string          // insertion order of words, drives scan order
	cumulative int64
	updatedAt  *time.Time
}

func NewForwardIndex() *ForwardIndex {
	return &ForwardIndex{
		index:      make(map[string][]string),
		normalized: make(map[string]string),
	}
}

// AddMapping stores a copy of columns under the literal word and points the
// normalized alias at it, silently replacing any prior alias holder. Empty
// word or empty columns is a no-op.
func (f *ForwardIndex) AddMapping(word string, columns []string) {
	if word == "" || len(columns) == 0 {
		return
	}
	if _, exists := f.index[word]; !exists {
		f.order = append(f.order, word)
	}
	stored := make([]string, len(columns))
	copy(stored, columns)
	f.index[word] = stored
	f.normalized[normalizer.Normalize(word)] = word
	f.cumulative += int64(len(columns))
	f.touch()
}

// GetColumns resolves a word exactly first, then through the alias table.
func (f *ForwardIndex) GetColumns(word string) ([]string, bool) {
	if columns, ok := f.index[word]; ok {
		return copyColumns(columns), true
	}
	if original, ok := f.normalized[normalizer.Normalize(word)]; ok {
		if columns, ok := f.index[original]; ok {
			return copyColumns(columns), true
		}
	}
	return nil, false
}

// GetAllWords returns every indexed word in insertion order.
func (f *ForwardIndex) GetAllWords() []string {
	words := make([]string, len(f.order))
	copy(words, f.order)
	return words
}

// GetWordVariants collects the word, its normalized form and any other
// original spelling currently aliased to the same normalized form.
func (f *ForwardIndex) GetWordVariants(word string) map[string]struct{} {
	variants := make(map[string]struct{})
	variants[word] = struct{}{}
	normalized := normalizer.Normalize(word)
	variants[normalized] = struct{}{}
	for norm, original := range f.normalized {
		if norm == normalized {
			variants[original] = struct{}{}
		}
	}
	return variants
}

func (f *ForwardIndex) RemoveMapping(word string) bool {
	if _, ok := f.index[word]; !ok {
		return false
	}
	delete(f.index, word)
	for i, w := range f.order {
		if w == word {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	normalized := normalizer.Normalize(word)
	if f.normalized[normalized] == word {
		delete(f.normalized, normalized)
	}
	f.touch()
	return true
}

func (f *ForwardIndex) Clear() {
	f.index = make(map[string][]string)
	f.normalized = make(map[string]string)
	f.order = nil
	f.cumulative = 0
	f.updatedAt = nil
}

func (f *ForwardIndex) Stats() ForwardIndexStats {
	return ForwardIndexStats{
		TotalWords:    len(f.index),
		TotalMappings: f.cumulative,
		LastUpdated:   f.updatedAt,
	}
}

func (f *ForwardIndex) touch() {
	now := time.Now()
	f.updatedAt = &now
}

// ReverseIndex maps column identifiers to the words that resolve to them.
// Word lists are deduplicated per column and columns are pruned once their
// last word is removed. Not synchronized; the IndexManager owns locking.
type ReverseIndex struct {
	index        map[string][]string
	order        []string
	associations int
	updatedAt    *time.Time
}

func NewReverseIndex() *ReverseIndex {
	return &ReverseIndex{index: make(map[string][]string)}
}

func (r *ReverseIndex) AddMapping(word string, columns []string) {
	if word == "" || len(columns) == 0 {
		return
	}
	for _, column := range columns {
		words, exists := r.index[column]
		if !exists {
			r.order = append(r.order, column)
		}
		if lib.Contains(words, word) {
			continue
		}
		r.index[column] = append(words, word)
		r.associations++
	}
	r.touch()
}

func (r *ReverseIndex) GetWords(column string) ([]string, bool) {
	words, ok := r.index[column]
	if !ok {
		return nil, false
	}
	return copyColumns(words), true
}

func (r *ReverseIndex) GetAllColumns() []string {
	columns := make([]string, len(r.order))
	copy(columns, r.order)
	return columns
}

func (r *ReverseIndex) RemoveMapping(word string, columns []string) {
	for _, column := range columns {
		words, ok := r.index[column]
		if !ok {
			continue
		}
		for i, w := range words {
			if w == word {
				r.index[column] = append(words[:i], words[i+1:]...)
				r.associations--
				break
			}
		}
		if len(r.index[column]) == 0 {
			delete(r.index, column)
			for i, c := range r.order {
				if c == column {
					r.order = append(r.order[:i], r.order[i+1:]...)
					break
				}
			}
		}
	}
	r.touch()
}

func (r *ReverseIndex) Clear() {
	r.index = make(map[string][]string)
	r.order = nil
	r.associations = 0
	r.updatedAt = nil
}

func (r *ReverseIndex) Stats() ReverseIndexStats {
	return ReverseIndexStats{
		TotalColumns:  len(r.index),
		TotalMappings: r.associations,
		LastUpdated:   r.updatedAt,
	}
}

func (r *ReverseIndex) touch() {
	now := time.Now()
	r.updatedAt = &now
}

func copyColumns(columns []string) []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}
