package export

import (
	"encoding/json"
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func testEntities() domain.ClinicalEntities {
	return domain.ClinicalEntities{
		Diagnoses:   []domain.ClinicalEntity{{Label: "DIAGNOSIS", Text: "diabetes", Code: "E11"}},
		Medications: []domain.ClinicalEntity{{Label: "MEDICATION", Text: "metformin"}},
	}
}

func testNote() domain.SOAPNote {
	return domain.SOAPNote{Subjective: domain.SOAPSection{Text: "s"},
		Objective:  domain.SOAPSection{Text: "o"},
		Assessment: domain.SOAPSection{Text: "a"},
		Plan:       domain.SOAPSection{Text: "p"}}
}

func TestBuild(t *testing.T) {
	e := NewFHIRExporter()

	b := e.Build("j1", testEntities(), testNote())

	assert.Equal(t, "Bundle", b.ResourceType)
	assert.Equal(t, "document", b.Type)
	assert.Equal(t, "j1", b.ID)
	assert.Equal(t, 3, len(b.Entry))
	comp, _ := b.Entry[0].Resource.(composition)
	assert.Equal(t, "Clinical SOAP Note", comp.Title)
	assert.Equal(t, 4, len(comp.Section))
	assert.Equal(t, "Subjective", comp.Section[0].Title)
	assert.Equal(t, "s", comp.Section[0].Text.Div)
	assert.Equal(t, "p", comp.Section[3].Text.Div)
	cond, _ := b.Entry[1].Resource.(condition)
	assert.Equal(t, "diabetes", cond.Code.Text)
	assert.Equal(t, []coding{{Code: "E11"}}, cond.Code.Coding)
	med, _ := b.Entry[2].Resource.(medicationStatement)
	assert.Equal(t, "metformin", med.MedicationCodeableConcept.Text)
}

func TestBuild_NoEntities(t *testing.T) {
	e := NewFHIRExporter()

	b := e.Build("j1", domain.ClinicalEntities{}, testNote())

	assert.Equal(t, 1, len(b.Entry))
}

func TestBuild_UncodedDiagnosis(t *testing.T) {
	e := NewFHIRExporter()
	entities := domain.ClinicalEntities{
		Diagnoses: []domain.ClinicalEntity{{Label: "DIAGNOSIS", Text: "fatigue"}}}

	b := e.Build("j1", entities, testNote())

	cond, _ := b.Entry[1].Resource.(condition)
	assert.Equal(t, 0, len(cond.Code.Coding))
	bytes, err := json.Marshal(cond)
	assert.Nil(t, err)
	assert.Contains(t, string(bytes), `"coding":[]`)
}
