package nlp

import (
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//CulturalRiskEngine adds region and environment aware advisories.
//It only triggers on explicit structured hints in patient metadata so that
//behavior without metadata stays unchanged
type CulturalRiskEngine struct {
}

//NewCulturalRiskEngine creates CulturalRiskEngine instance
func NewCulturalRiskEngine() *CulturalRiskEngine {
	return &CulturalRiskEngine{}
}

//Assess derives advisories from patient metadata and note wording
func (e *CulturalRiskEngine) Assess(entities domain.ClinicalEntities, note *domain.SOAPNote,
	md *domain.PatientMetadata) []domain.DecisionSupportSuggestion {
	if md == nil {
		return nil
	}
	var res []domain.DecisionSupportSuggestion

	environment := strings.ToLower(md.Environment)
	region := strings.ToLower(md.Region)
	text := noteText(note)

	if containsAny(environment, "outdoor", "pastoralist") && containsAny(text, "heat", "dizzy", "exhausted") {
		res = append(res, newSuggestion(domain.SuggestionRedFlag, domain.SeverityInfo,
			"Possible heat-related illness in high-exposure environment.",
			"Patient is described as working or living in an outdoor/pastoralist "+
				"environment with symptoms that may suggest heat stress. Consider "+
				"assessing for dehydration and heat-related illness in context of local "+
				"climate and resources.",
			"demo-cultural-heat-1"))
	}
	if strings.Contains(region, "malaria_endemic") && strings.Contains(text, "fever") {
		res = append(res, newSuggestion(domain.SuggestionDifferential, domain.SeverityInfo,
			"Fever in malaria-endemic region – consider infectious causes.",
			"Patient is in a region marked as malaria-endemic in metadata. Ensure "+
				"local guidelines for fever workup are followed; malaria is only one "+
				"of several possible causes.",
			"demo-cultural-malaria-1"))
	}
	return res
}

//IndigenousRiskEngine surfaces gentle reminders about trauma informed and
//culturally safe care. It only acts on explicit metadata, never on guesses
type IndigenousRiskEngine struct {
}

//NewIndigenousRiskEngine creates IndigenousRiskEngine instance
func NewIndigenousRiskEngine() *IndigenousRiskEngine {
	return &IndigenousRiskEngine{}
}

//Assess derives advisories from documented affiliation and history
func (e *IndigenousRiskEngine) Assess(entities domain.ClinicalEntities, note *domain.SOAPNote,
	md *domain.PatientMetadata) []domain.DecisionSupportSuggestion {
	if md == nil {
		return nil
	}
	affiliation := strings.TrimSpace(md.IndigenousAffiliation)
	hasTrauma := md.HasHistoricalTraumaDocumented != nil && *md.HasHistoricalTraumaDocumented
	if affiliation == "" || !hasTrauma {
		return nil
	}
	return []domain.DecisionSupportSuggestion{newSuggestion(
		domain.SuggestionDifferential, domain.SeverityInfo,
		"Trauma-informed, culturally safe care is recommended.",
		"Patient is documented as having an Indigenous affiliation and a "+
			"history of trauma. Ensure assessment and care planning follow "+
			"trauma-informed and culturally safe practices, in partnership with "+
			"local community guidance where available.",
		"demo-indigenous-trauma-1")}
}
