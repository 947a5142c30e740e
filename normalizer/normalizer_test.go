package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "start_date", Normalize("START_DATE"))
	assert.Equal(t, "start_date", Normalize("Start-Date"))
	assert.Equal(t, "start_date", Normalize("start date"))
	assert.Equal(t, "start_date", Normalize("  start__date  "))
	assert.Equal(t, "file", Normalize("ﬁle"))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"START_DATE", "Start-Date", "start   date", "a--b__c", "", "plain"}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestGenerateVariants(t *testing.T) {
	variants := GenerateVariants("Start_Date")
	assert.Contains(t, variants, "start_date")
	assert.Contains(t, variants, "startdate")
	assert.Contains(t, variants, "start date")
	assert.Contains(t, variants, "start-date")
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"start", "date"}, Tokenize("Start-Date"))
	assert.Equal(t, []string{"start", "date"}, Tokenize("start__date"))
	assert.Nil(t, Tokenize(""))
	assert.Nil(t, Tokenize("___"))
}

func TestCalculateSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, CalculateSimilarity("START_DATE", "start date"))
	assert.Equal(t, 0.0, CalculateSimilarity("date", ""))
	// Jaccard over character sets: {a,b,c} vs {a,b,d} shares 2 of 4.
	assert.InDelta(t, 0.5, CalculateSimilarity("abc", "abd"), 1e-9)
}
