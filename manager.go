package wordmap

import (
	"sync"
)

// IndexManager keeps a ForwardIndex and a ReverseIndex consistent with each
// other. Every (word, column) pair recorded on one side is recorded on the
// other; a single RWMutex spans both writes so readers never observe a word
// present in one index but not the other.
type IndexManager struct {
	mu      sync.RWMutex
	forward *ForwardIndex
	reverse *ReverseIndex
}

func NewIndexManager() *IndexManager {
	return &IndexManager{
		forward: NewForwardIndex(),
		reverse: NewReverseIndex(),
	}
}

func (m *IndexManager) AddMapping(word string, columns []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forward.AddMapping(word, columns)
	m.reverse.AddMapping(word, columns)
}

// RemoveMapping deletes the word from both indexes, pruning reverse entries
// whose word list becomes empty. Returns false only when the word is not
// indexed.
func (m *IndexManager) RemoveMapping(word string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(word)
}

// UpdateMapping replaces a word's columns as remove-then-add under one lock,
// so the intermediate state is never observable.
func (m *IndexManager) UpdateMapping(word string, columns []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(word)
	m.forward.AddMapping(word, columns)
	m.reverse.AddMapping(word, columns)
}

func (m *IndexManager) removeLocked(word string) bool {
	columns, ok := m.forward.GetColumns(word)
	if !ok {
		return false
	}
	if !m.forward.RemoveMapping(word) {
		// GetColumns resolved through the alias table; the literal key is
		// the alias target, not the argument.
		return false
	}
	m.reverse.RemoveMapping(word, columns)
	return true
}

func (m *IndexManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forward.Clear()
	m.reverse.Clear()
}

func (m *IndexManager) GetColumns(word string) ([]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forward.GetColumns(word)
}

func (m *IndexManager) GetWords(column string) ([]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reverse.GetWords(column)
}

func (m *IndexManager) AllWords() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forward.GetAllWords()
}

func (m *IndexManager) AllColumns() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reverse.GetAllColumns()
}

func (m *IndexManager) WordVariants(word string) map[string]struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forward.GetWordVariants(word)
}

func (m *IndexManager) Stats() IndexStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return IndexStats{
		ForwardIndex:       m.forward.Stats(),
		ReverseIndex:       m.reverse.Stats(),
		TotalUniqueColumns: len(m.reverse.index),
	}
}
