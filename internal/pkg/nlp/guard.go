package nlp

import (
	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//SafetyGuard is a conservative post processor for decision support suggestions.
//It never removes or downgrades existing suggestions, it only appends
//advisories in clearly identified cases
type SafetyGuard struct {
}

//NewSafetyGuard creates SafetyGuard instance
func NewSafetyGuard() *SafetyGuard {
	return &SafetyGuard{}
}

//Review appends a cultural context advisory when spiritual language appears
//in the note together with high severity alerts
func (g *SafetyGuard) Review(suggestions []domain.DecisionSupportSuggestion,
	note *domain.SOAPNote) []domain.DecisionSupportSuggestion {
	if len(suggestions) == 0 || note == nil {
		return suggestions
	}
	text := noteText(note)
	hasSpiritualLanguage := containsAny(text, "my ancestors are calling", "spirits", "spiritual")
	hasCritical := false
	for _, s := range suggestions {
		hasCritical = hasCritical || s.Severity == domain.SeverityCritical
	}
	if !hasSpiritualLanguage || !hasCritical {
		return suggestions
	}
	res := make([]domain.DecisionSupportSuggestion, 0, len(suggestions)+1)
	res = append(res, suggestions...)
	return append(res, newSuggestion(domain.SuggestionDifferential, domain.SeverityInfo,
		"Spiritual language present – interpret high-severity alerts in cultural context.",
		"Transcript includes spiritual or ancestral language. Ensure high-severity "+
			"alerts are interpreted within the patient's cultural and spiritual context "+
			"and, where appropriate, in consultation with culturally knowledgeable "+
			"clinicians or community representatives.",
		"demo-cultural-safety-1"))
}
