package usecase

import "strings"

// Classifier assigns a trade category to a project description. Kept behind an
// interface so the keyword heuristic can be swapped for a model later without
// touching the claim path.
type Classifier interface {
	Classify(description string) string
}

type KeywordClassifier struct{}

var keywordCategories = []struct {
	category string
	keywords []string
}{
	{"Roofing", []string{"roof", "shingle", "eavestrough", "gutter", "soffit"}},
	{"Plumbing", []string{"plumb", "pipe", "drain", "faucet", "water heater", "sump"}},
	{"Electrical", []string{"electric", "wiring", "panel", "outlet", "breaker", "lighting"}},
	{"HVAC", []string{"hvac", "furnace", "air condition", "heat pump", "duct"}},
	{"Painting", []string{"paint", "stain", "drywall patch"}},
	{"Flooring", []string{"floor", "hardwood", "laminate", "tile", "carpet", "vinyl"}},
	{"Carpentry", []string{"deck", "fence", "framing", "trim", "cabinet", "shelv"}},
	{"Kitchen Renovation", []string{"kitchen", "countertop", "backsplash"}},
	{"Bathroom Renovation", []string{"bathroom", "shower", "bathtub", "vanity", "toilet"}},
	{"Basement Renovation", []string{"basement", "foundation", "crawl space"}},
	{"Landscaping", []string{"landscap", "lawn", "sod", "patio", "interlock", "garden"}},
	{"Windows & Doors", []string{"window", "door", "garage door", "skylight"}},
}

func (KeywordClassifier) Classify(description string) string {
	text := strings.ToLower(description)
	for _, entry := range keywordCategories {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.category
			}
		}
	}
	return "General Renovation"
}
