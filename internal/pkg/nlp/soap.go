package nlp

import (
	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//DemoSOAPGenerator echoes the transcript into the subjective section and
//fills the rest with fixed placeholders
type DemoSOAPGenerator struct {
}

//NewDemoSOAPGenerator creates DemoSOAPGenerator instance
func NewDemoSOAPGenerator() *DemoSOAPGenerator {
	return &DemoSOAPGenerator{}
}

//Generate builds the demo note
func (g *DemoSOAPGenerator) Generate(text string, entities domain.ClinicalEntities) (domain.SOAPNote, error) {
	return domain.SOAPNote{
		Subjective: domain.SOAPSection{Text: "Subjective summary: " + text},
		Objective:  domain.SOAPSection{Text: "Objective: demo placeholder"},
		Assessment: domain.SOAPSection{Text: "Assessment: demo placeholder"},
		Plan:       domain.SOAPSection{Text: "Plan: demo placeholder"},
	}, nil
}
