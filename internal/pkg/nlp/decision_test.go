package nlp

import (
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func diagnoses(texts ...string) []domain.ClinicalEntity {
	var res []domain.ClinicalEntity
	for _, t := range texts {
		res = append(res, domain.ClinicalEntity{Label: "DIAGNOSIS", Text: t})
	}
	return res
}

func medications(texts ...string) []domain.ClinicalEntity {
	var res []domain.ClinicalEntity
	for _, t := range texts {
		res = append(res, domain.ClinicalEntity{Label: "MEDICATION", Text: t})
	}
	return res
}

func TestSuggest_DiabetesWithoutMetformin(t *testing.T) {
	ds := NewDecisionSupport()
	res := ds.Suggest(domain.ClinicalEntities{Diagnoses: diagnoses("diabetes")}, nil)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, domain.SuggestionMedAdjustment, res[0].Type)
	assert.Equal(t, domain.SeverityInfo, res[0].Severity)
	assert.Equal(t, "Diabetes diagnosis without metformin detected.", res[0].Summary)
	assert.Equal(t, []string{"demo-guideline-diabetes-1"}, res[0].EvidenceRefs)
}

func TestSuggest_MetforminWithoutDiabetes(t *testing.T) {
	ds := NewDecisionSupport()
	res := ds.Suggest(domain.ClinicalEntities{Medications: medications("metformin")}, nil)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, domain.SuggestionContraindication, res[0].Type)
	assert.Equal(t, domain.SeverityWarning, res[0].Severity)
	assert.Equal(t, []string{"demo-guideline-diabetes-2"}, res[0].EvidenceRefs)
}

func TestSuggest_DiabetesOnTreatment(t *testing.T) {
	ds := NewDecisionSupport()
	res := ds.Suggest(domain.ClinicalEntities{
		Diagnoses:   diagnoses("diabetes"),
		Medications: medications("metformin")}, nil)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, domain.SuggestionDifferential, res[0].Type)
	assert.Equal(t, "Diabetes on treatment – consider labs and monitoring.", res[0].Summary)
}

func TestSuggest_HeartFailure(t *testing.T) {
	ds := NewDecisionSupport()
	note := &domain.SOAPNote{Assessment: domain.SOAPSection{Text: "Likely heart failure"}}
	res := ds.Suggest(domain.ClinicalEntities{}, note)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, domain.SuggestionRedFlag, res[0].Type)
	assert.Equal(t, domain.SeverityInfo, res[0].Severity)
	assert.Equal(t, []string{"demo-guideline-hf-1"}, res[0].EvidenceRefs)
}

func TestSuggest_Prenatal(t *testing.T) {
	ds := NewDecisionSupport()
	note := &domain.SOAPNote{Subjective: domain.SOAPSection{Text: "Prenatal visit, week 24"}}
	res := ds.Suggest(domain.ClinicalEntities{}, note)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []string{"demo-guideline-ob-1"}, res[0].EvidenceRefs)
}

func TestSuggest_Suicidality(t *testing.T) {
	ds := NewDecisionSupport()
	note := &domain.SOAPNote{Subjective: domain.SOAPSection{Text: "Patient mentioned feeling suicidal"}}
	res := ds.Suggest(domain.ClinicalEntities{}, note)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, domain.SeverityCritical, res[0].Severity)
	assert.Equal(t, "Possible suicidality mentioned – follow safety protocol.", res[0].Summary)
}

func TestSuggest_Empty(t *testing.T) {
	ds := NewDecisionSupport()
	assert.Empty(t, ds.Suggest(domain.ClinicalEntities{}, nil))
}

func TestSuggest_Defaults(t *testing.T) {
	ds := NewDecisionSupport()
	res := ds.Suggest(domain.ClinicalEntities{Diagnoses: diagnoses("diabetes")}, nil)
	assert.NotEmpty(t, res[0].ID)
	assert.Equal(t, "demo_rule", res[0].Source)
	assert.False(t, res[0].Regulated)
}

func TestSuggest_UniqueIDs(t *testing.T) {
	ds := NewDecisionSupport()
	note := &domain.SOAPNote{Assessment: domain.SOAPSection{Text: "heart failure, prenatal"}}
	res := ds.Suggest(domain.ClinicalEntities{}, note)
	assert.Equal(t, 2, len(res))
	assert.NotEqual(t, res[0].ID, res[1].ID)
}
