package consent

import "github.com/equiscribe/scribego/internal/pkg/domain"

//Context represents cultural data sovereignty consent for one request.
//Cultural AI features default to allowed so analysis works out of the box,
//training reuse defaults to denied unless explicitly consented.
type Context struct {
	TenantID          string
	CulturalAIAllowed bool
	TrainingAllowed   bool
	Reason            string
}

//Evaluate computes the consent posture from patient level flags
func Evaluate(tenantID string, md *domain.PatientMetadata) Context {
	res := Context{TenantID: tenantID, CulturalAIAllowed: true}
	if md == nil {
		return res
	}
	if md.ConsentCulturalAI != nil {
		res.CulturalAIAllowed = *md.ConsentCulturalAI
		res.Reason = "patient_level_consent"
	}
	if md.ConsentDataTraining != nil {
		res.TrainingAllowed = *md.ConsentDataTraining
		if res.Reason == "" {
			res.Reason = "patient_level_training_consent"
		}
	}
	return res
}
