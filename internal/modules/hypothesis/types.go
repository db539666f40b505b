package hypothesis

import "errors"

var (
	errHypothesisNotFound = errors.New("hypothesis not found")
	errBadGeneration      = errors.New("bad upstream format")
)

type GenerateDTO struct {
	Count int `json:"count"`
}

// ListFilters narrows the hypothesis listing.
type ListFilters struct {
	Category      string
	MinConfidence *int
	Search        string
}

type categoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type statsData struct {
	TotalHypotheses   int64           `json:"totalHypotheses"`
	AverageConfidence float64         `json:"averageConfidence"`
	CategoriesCount   int             `json:"categoriesCount"`
	Categories        []categoryCount `json:"categories"`
}

// generatedHypothesis matches the JSON shape the model is asked to emit.
type generatedHypothesis struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Confidence       int      `json:"confidence"`
	ResearchMethods  []string `json:"research_methods"`
	KeyFactors       []string `json:"key_factors"`
	NoveltyScore     int      `json:"novelty_score"`
	FeasibilityScore int      `json:"feasibility_score"`
}
