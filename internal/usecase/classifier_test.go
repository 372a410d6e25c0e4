package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier(t *testing.T) {
	cases := []struct {
		description string
		category    string
	}{
		{"Asphalt shingles lifting, gutters need replacing too", "Roofing"},
		{"Leaky faucet in the main bathroom and slow drain", "Plumbing"},
		{"Upgrade 100A panel to 200A and add EV outlet", "Electrical"},
		{"Furnace is 20 years old, want a heat pump quote", "HVAC"},
		{"Build a cedar deck off the back door", "Carpentry"},
		{"New countertop and backsplash for the kitchen", "Kitchen Renovation"},
		{"Finish the basement into a rec room", "Basement Renovation"},
		{"Sod and interlock walkway in the front yard", "Landscaping"},
		{"Fresh coat everywhere before we sell", "General Renovation"},
	}

	classifier := KeywordClassifier{}
	for _, tc := range cases {
		assert.Equal(t, tc.category, classifier.Classify(tc.description), tc.description)
	}
}

func TestKeywordClassifierCaseInsensitive(t *testing.T) {
	classifier := KeywordClassifier{}
	assert.Equal(t, "Roofing", classifier.Classify("ROOF is leaking badly"))
}
