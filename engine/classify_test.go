// path: engine/classify_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"streetsafety/models"
)

func TestClassifyRedCategories(t *testing.T) {
	c := DefaultClassifier()

	for _, typ := range []string{"murder", "MURDER", "Rape", "robbery", "Violent Assault"} {
		assert.Equal(t, models.SeverityRed, c.Classify(typ), "type %q", typ)
	}
}

func TestClassifyYellowCategories(t *testing.T) {
	c := DefaultClassifier()

	for _, typ := range []string{"theft", "Theft", "drug", "nuisance"} {
		assert.Equal(t, models.SeverityYellow, c.Classify(typ), "type %q", typ)
	}
}

func TestClassifyUnknownDefaultsToYellow(t *testing.T) {
	c := DefaultClassifier()

	// Total: anything outside both sets is lower severity, never an error.
	assert.Equal(t, models.SeverityYellow, c.Classify("jaywalking"))
	assert.Equal(t, models.SeverityYellow, c.Classify(""))
	assert.Equal(t, models.SeverityYellow, c.Classify("   "))
}

func TestClassifyCustomSets(t *testing.T) {
	c := NewClassifier([]string{"arson"}, []string{"littering"})

	assert.Equal(t, models.SeverityRed, c.Classify("Arson"))
	assert.Equal(t, models.SeverityYellow, c.Classify("littering"))
	assert.Equal(t, models.SeverityYellow, c.Classify("murder"), "stock sets replaced, not merged")
}
