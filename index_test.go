package wordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardIndexAddAndLookup(t *testing.T) {
	idx := NewForwardIndex()
	idx.AddMapping("start_date", []string{"c1", "c2"})

	columns, ok := idx.GetColumns("start_date")
	require.True(t, ok)
	assert.Equal(t, []string{"c1", "c2"}, columns)

	// Alias resolution through the normalized form.
	columns, ok = idx.GetColumns("START_DATE")
	require.True(t, ok)
	assert.Equal(t, []string{"c1", "c2"}, columns)

	columns, ok = idx.GetColumns("Start-Date")
	require.True(t, ok)
	assert.Equal(t, []string{"c1", "c2"}, columns)

	_, ok = idx.GetColumns("end_date")
	assert.False(t, ok)
}

func TestForwardIndexStoresCopy(t *testing.T) {
	idx := NewForwardIndex()
	source := []string{"c1", "c2"}
	idx.AddMapping("date", source)
	source[0] = "mutated"

	columns, _ := idx.GetColumns("date")
	assert.Equal(t, "c1", columns[0])

	columns[1] = "mutated"
	again, _ := idx.GetColumns("date")
	assert.Equal(t, "c2", again[1])
}

func TestForwardIndexEmptyInputs(t *testing.T) {
	idx := NewForwardIndex()
	idx.AddMapping("", []string{"c1"})
	idx.AddMapping("word", nil)
	assert.Empty(t, idx.GetAllWords())
	assert.Equal(t, int64(0), idx.Stats().TotalMappings)
}

func TestForwardIndexKeepsDuplicateColumns(t *testing.T) {
	idx := NewForwardIndex()
	idx.AddMapping("date", []string{"c1", "c1", "c2"})
	columns, _ := idx.GetColumns("date")
	assert.Equal(t, []string{"c1", "c1", "c2"}, columns)
}

func TestForwardIndexInsertionOrder(t *testing.T) {
	idx := NewForwardIndex()
	idx.AddMapping("gamma", []string{"c1"})
	idx.AddMapping("alpha", []string{"c2"})
	idx.AddMapping("beta", []string{"c3"})
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, idx.GetAllWords())

	idx.RemoveMapping("alpha")
	assert.Equal(t, []string{"gamma", "beta"}, idx.GetAllWords())
}

func TestForwardIndexCumulativeCounter(t *testing.T) {
	idx := NewForwardIndex()
	idx.AddMapping("date", []string{"c1", "c2", "c3"})
	assert.Equal(t, int64(3), idx.Stats().TotalMappings)

	idx.RemoveMapping("date")
	// The counter is cumulative over the index lifetime, never decremented.
	assert.Equal(t, int64(3), idx.Stats().TotalMappings)
	assert.Equal(t, 0, idx.Stats().TotalWords)

	idx.AddMapping("date", []string{"c1"})
	assert.Equal(t, int64(4), idx.Stats().TotalMappings)

	idx.Clear()
	assert.Equal(t, int64(0), idx.Stats().TotalMappings)
}

func TestForwardIndexAliasLastWriteWins(t *testing.T) {
	idx := NewForwardIndex()
	idx.AddMapping("Start_Date", []string{"c1"})
	idx.AddMapping("start-date", []string{"c2"})

	// Both spellings stay indexed under their literal keys.
	columns, _ := idx.GetColumns("Start_Date")
	assert.Equal(t, []string{"c1"}, columns)

	// Normalized lookup resolves through the most recent writer.
	columns, _ = idx.GetColumns("START DATE")
	assert.Equal(t, []string{"c2"}, columns)
}

func TestForwardIndexVariants(t *testing.T) {
	idx := NewForwardIndex()
	idx.AddMapping("Start_Date", []string{"c1"})
	variants := idx.GetWordVariants("Start_Date")
	assert.Contains(t, variants, "Start_Date")
	assert.Contains(t, variants, "start_date")
}

func TestReverseIndexDeduplicatesWords(t *testing.T) {
	idx := NewReverseIndex()
	idx.AddMapping("date", []string{"c1", "c2"})
	idx.AddMapping("date", []string{"c1"})

	words, ok := idx.GetWords("c1")
	require.True(t, ok)
	assert.Equal(t, []string{"date"}, words)
	assert.Equal(t, 2, idx.Stats().TotalMappings)
}

func TestReverseIndexPrunesEmptyColumns(t *testing.T) {
	idx := NewReverseIndex()
	idx.AddMapping("date", []string{"c1", "c2"})
	idx.AddMapping("start_date", []string{"c2"})

	idx.RemoveMapping("date", []string{"c1", "c2"})

	_, ok := idx.GetWords("c1")
	assert.False(t, ok)

	words, ok := idx.GetWords("c2")
	require.True(t, ok)
	assert.Equal(t, []string{"start_date"}, words)
	assert.Equal(t, []string{"c2"}, idx.GetAllColumns())
}

func TestIndexManagerConsistency(t *testing.T) {
	m := NewIndexManager()
	m.AddMapping("date", []string{"c1", "c2"})
	m.AddMapping("start_date", []string{"c2", "c3"})

	for _, column := range []string{"c1", "c2"} {
		words, ok := m.GetWords(column)
		require.True(t, ok, "column %s", column)
		assert.Contains(t, words, "date")
	}

	require.True(t, m.RemoveMapping("date"))
	_, ok := m.GetWords("c1")
	assert.False(t, ok)
	words, ok := m.GetWords("c2")
	require.True(t, ok)
	assert.NotContains(t, words, "date")
}

func TestIndexManagerRemoveMissing(t *testing.T) {
	m := NewIndexManager()
	assert.False(t, m.RemoveMapping("ghost"))
}

func TestIndexManagerUpdateMapping(t *testing.T) {
	m := NewIndexManager()
	m.AddMapping("date", []string{"c1", "c2"})
	m.UpdateMapping("date", []string{"c3"})

	columns, ok := m.GetColumns("date")
	require.True(t, ok)
	assert.Equal(t, []string{"c3"}, columns)

	_, ok = m.GetWords("c1")
	assert.False(t, ok)
	words, ok := m.GetWords("c3")
	require.True(t, ok)
	assert.Equal(t, []string{"date"}, words)
}

func TestIndexManagerStats(t *testing.T) {
	m := NewIndexManager()
	m.AddMapping("date", []string{"c1", "c2"})
	m.AddMapping("start_date", []string{"c2", "c3"})

	stats := m.Stats()
	assert.Equal(t, 2, stats.ForwardIndex.TotalWords)
	assert.Equal(t, int64(4), stats.ForwardIndex.TotalMappings)
	assert.Equal(t, 3, stats.TotalUniqueColumns)
	assert.Equal(t, 4, stats.ReverseIndex.TotalMappings)
	assert.NotNil(t, stats.ForwardIndex.LastUpdated)
}

func TestIndexManagerClear(t *testing.T) {
	m := NewIndexManager()
	m.AddMapping("date", []string{"c1"})
	m.Clear()
	assert.Empty(t, m.AllWords())
	assert.Empty(t, m.AllColumns())
	assert.Equal(t, int64(0), m.Stats().ForwardIndex.TotalMappings)
}
