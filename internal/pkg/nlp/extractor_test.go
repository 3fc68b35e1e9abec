package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_Diabetes(t *testing.T) {
	e := NewDemoExtractor()
	res, err := e.Extract("Patient reports Diabetes since 2019")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Diagnoses))
	assert.Equal(t, "DIAGNOSIS", res.Diagnoses[0].Label)
	assert.Equal(t, "diabetes", res.Diagnoses[0].Text)
	assert.Empty(t, res.Medications)
}

func TestExtract_Metformin(t *testing.T) {
	e := NewDemoExtractor()
	res, err := e.Extract("takes METFORMIN daily")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Medications))
	assert.Equal(t, "MEDICATION", res.Medications[0].Label)
	assert.Equal(t, "metformin", res.Medications[0].Text)
}

func TestExtract_Nothing(t *testing.T) {
	e := NewDemoExtractor()
	res, err := e.Extract("no complaints today")
	assert.Nil(t, err)
	assert.Empty(t, res.Diagnoses)
	assert.Empty(t, res.Medications)
	assert.Empty(t, res.Symptoms)
}
