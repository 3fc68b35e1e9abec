package nlp

import (
	"strings"
	"unicode"

	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//CodingOrchestrator derives code assignments and a naive billing risk summary.
//It sits on top of the Coder, which may already have filled entity codes,
//and turns those codes into richer structures
type CodingOrchestrator struct {
}

//NewCodingOrchestrator creates CodingOrchestrator instance
func NewCodingOrchestrator() *CodingOrchestrator {
	return &CodingOrchestrator{}
}

//AssignCodes maps coded entities to assignments and computes billing risk
func (o *CodingOrchestrator) AssignCodes(entities domain.ClinicalEntities,
	note *domain.SOAPNote) ([]domain.CodeAssignment, *domain.BillingRiskSummary) {
	var res []domain.CodeAssignment
	res = addFromBucket(res, entities.Diagnoses, "diagnosis")
	res = addFromBucket(res, entities.Medications, "medication")
	res = addFromBucket(res, entities.Symptoms, "symptom")

	if note != nil && containsAny(noteText(note), "follow-up", "follow up") {
		res = append(res, domain.CodeAssignment{
			CodeSystem:        domain.CodeSystemCPT,
			Code:              "99213_DEMO",
			Display:           "Established patient office visit (demo)",
			SourceEntityLabel: "PROCEDURE",
			SourceText:        "follow-up visit",
			Category:          "procedure",
		})
	}
	return res, computeBillingRisk(res)
}

func addFromBucket(res []domain.CodeAssignment, bucket []domain.ClinicalEntity, category string) []domain.CodeAssignment {
	for _, e := range bucket {
		if e.Text == "" {
			continue
		}
		code := e.Code
		if code == "" {
			code = "UNCODED"
		}
		res = append(res, domain.CodeAssignment{
			CodeSystem:        guessSystem(e.Code),
			Code:              code,
			SourceEntityLabel: e.Label,
			SourceText:        e.Text,
			Category:          category,
		})
	}
	return res
}

//guessSystem takes the coding system from the code pattern
func guessSystem(code string) domain.CodeSystem {
	if code == "" {
		return domain.CodeSystemOther
	}
	r := []rune(code)
	if unicode.IsLetter(r[0]) && strings.IndexFunc(code, unicode.IsDigit) >= 0 {
		return domain.CodeSystemICD10
	}
	return domain.CodeSystemOther
}

func computeBillingRisk(assignments []domain.CodeAssignment) *domain.BillingRiskSummary {
	if len(assignments) == 0 {
		return &domain.BillingRiskSummary{
			Level:            domain.BillingRiskHigh,
			Reasons:          []string{"No codes assigned; potential under-coding or missing documentation."},
			SuggestedActions: []string{"Review encounter for billable diagnoses and procedures."},
		}
	}
	hasDx, hasProc := false, false
	for _, a := range assignments {
		hasDx = hasDx || a.Category == "diagnosis"
		hasProc = hasProc || a.Category == "procedure"
	}
	if hasDx && hasProc {
		return &domain.BillingRiskSummary{
			Level:            domain.BillingRiskLow,
			Reasons:          []string{"Both diagnoses and procedures are present."},
			SuggestedActions: []string{"Consider reviewing E/M level for optimization where allowed."},
		}
	}
	if hasDx || hasProc {
		return &domain.BillingRiskSummary{
			Level:            domain.BillingRiskMedium,
			Reasons:          []string{"Only diagnoses or only procedures present."},
			SuggestedActions: []string{"Check whether additional supporting codes are appropriate."},
		}
	}
	return &domain.BillingRiskSummary{
		Level:            domain.BillingRiskHigh,
		Reasons:          []string{"Only symptom/other codes present."},
		SuggestedActions: []string{"Ensure definitive diagnoses and procedures are captured when clinically appropriate."},
	}
}

//noteText joins all note sections into one lowercase string
func noteText(note *domain.SOAPNote) string {
	if note == nil {
		return ""
	}
	return strings.ToLower(strings.Join([]string{
		note.Subjective.Text, note.Objective.Text, note.Assessment.Text, note.Plan.Text}, " "))
}

func containsAny(text string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
