// path: engine/classify.go
package engine

import (
	"strings"

	"streetsafety/models"
)

// Default category sets. Matching is case-insensitive; anything outside
// both sets is treated as lower severity, not as an error.
var (
	defaultRedTypes    = []string{"murder", "rape", "robbery", "violent assault"}
	defaultYellowTypes = []string{"theft", "drug", "nuisance"}
)

// Classifier maps a normalized crime category string to a severity tag.
// The sets are fixed at construction so deployments can extend them
// without touching classification logic.
type Classifier struct {
	red    map[string]struct{}
	yellow map[string]struct{}
}

// NewClassifier builds a classifier from explicit category sets. Red wins
// when a category appears in both.
func NewClassifier(red, yellow []string) *Classifier {
	c := &Classifier{
		red:    make(map[string]struct{}, len(red)),
		yellow: make(map[string]struct{}, len(yellow)),
	}
	for _, t := range red {
		c.red[normalizeType(t)] = struct{}{}
	}
	for _, t := range yellow {
		c.yellow[normalizeType(t)] = struct{}{}
	}
	return c
}

// DefaultClassifier returns a classifier with the stock category sets.
func DefaultClassifier() *Classifier {
	return NewClassifier(defaultRedTypes, defaultYellowTypes)
}

// Classify is pure and total: every input yields a severity.
func (c *Classifier) Classify(crimeType string) models.Severity {
	t := normalizeType(crimeType)
	if _, ok := c.red[t]; ok {
		return models.SeverityRed
	}
	if _, ok := c.yellow[t]; ok {
		return models.SeverityYellow
	}
	// Unclassified types default to the lower severity.
	return models.SeverityYellow
}

func normalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
