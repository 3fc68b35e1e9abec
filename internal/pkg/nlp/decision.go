package nlp

import (
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/google/uuid"
)

//DecisionSupport is a small rule based CDS layer.
//Suggestions are always advisory only
type DecisionSupport struct {
}

//NewDecisionSupport creates DecisionSupport instance
func NewDecisionSupport() *DecisionSupport {
	return &DecisionSupport{}
}

//Suggest derives advisory suggestions from entities and note text
func (ds *DecisionSupport) Suggest(entities domain.ClinicalEntities,
	note *domain.SOAPNote) []domain.DecisionSupportSuggestion {
	var res []domain.DecisionSupportSuggestion

	hasDiabetes := mentions(entities.Diagnoses, "diabetes")
	hasMetformin := mentions(entities.Medications, "metformin")

	if hasDiabetes && !hasMetformin {
		res = append(res, newSuggestion(domain.SuggestionMedAdjustment, domain.SeverityInfo,
			"Diabetes diagnosis without metformin detected.",
			"Consider whether first-line therapy such as metformin or other "+
				"appropriate agents is indicated based on guidelines and patient context.",
			"demo-guideline-diabetes-1"))
	}
	if hasMetformin && !hasDiabetes {
		res = append(res, newSuggestion(domain.SuggestionContraindication, domain.SeverityWarning,
			"Metformin mentioned without an obvious diabetes diagnosis.",
			"Verify indication and ensure documentation of the underlying condition.",
			"demo-guideline-diabetes-2"))
	}
	if hasDiabetes && hasMetformin {
		res = append(res, newSuggestion(domain.SuggestionDifferential, domain.SeverityInfo,
			"Diabetes on treatment – consider labs and monitoring.",
			"Ensure recent HbA1c, renal function, and follow-up plan are documented.",
			"demo-guideline-diabetes-3"))
	}

	if note == nil {
		return res
	}
	text := noteText(note)
	if containsAny(text, "heart failure", "hfref") {
		res = append(res, newSuggestion(domain.SuggestionRedFlag, domain.SeverityInfo,
			"Heart failure mentioned – ensure guideline-directed therapy.",
			"Consider ACEi/ARB/ARNI, beta-blocker, MRA, and SGLT2i as appropriate.",
			"demo-guideline-hf-1"))
	}
	if containsAny(text, "pregnancy", "prenatal") {
		res = append(res, newSuggestion(domain.SuggestionRedFlag, domain.SeverityInfo,
			"Prenatal visit – check key maternal/fetal parameters.",
			"Confirm blood pressure, fetal movement, warning signs, and follow-up interval are documented.",
			"demo-guideline-ob-1"))
	}
	if containsAny(text, "suicidal", "self-harm") {
		res = append(res, newSuggestion(domain.SuggestionRedFlag, domain.SeverityCritical,
			"Possible suicidality mentioned – follow safety protocol.",
			"Ensure immediate risk assessment, safety planning, and escalation per clinic policy.",
			"demo-guideline-psych-1"))
	}
	return res
}

func mentions(bucket []domain.ClinicalEntity, keyword string) bool {
	for _, e := range bucket {
		if strings.Contains(strings.ToLower(e.Text), keyword) {
			return true
		}
	}
	return false
}

func newSuggestion(sType domain.SuggestionType, severity domain.SuggestionSeverity,
	summary, details string, evidenceRefs ...string) domain.DecisionSupportSuggestion {
	return domain.DecisionSupportSuggestion{
		ID:           uuid.New().String(),
		Type:         sType,
		Severity:     severity,
		Summary:      summary,
		Details:      details,
		EvidenceRefs: evidenceRefs,
		Source:       "demo_rule",
	}
}
