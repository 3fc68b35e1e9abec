package nlp

import (
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//DemoExtractor is a small deterministic extractor used for tests and prototyping.
//It looks for a couple of hard coded keywords so higher layers have stable
//output without any external ML dependency
type DemoExtractor struct {
}

//NewDemoExtractor creates DemoExtractor instance
func NewDemoExtractor() *DemoExtractor {
	return &DemoExtractor{}
}

//Extract finds the demo keywords in the text
func (e *DemoExtractor) Extract(text string) (domain.ClinicalEntities, error) {
	var res domain.ClinicalEntities
	lower := strings.ToLower(text)
	if strings.Contains(lower, "diabetes") {
		res.Diagnoses = append(res.Diagnoses, domain.ClinicalEntity{Label: "DIAGNOSIS", Text: "diabetes"})
	}
	if strings.Contains(lower, "metformin") {
		res.Medications = append(res.Medications, domain.ClinicalEntity{Label: "MEDICATION", Text: "metformin"})
	}
	return res, nil
}
