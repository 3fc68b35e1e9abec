package export

import (
	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//Bundle is a minimal FHIR document bundle built from pipeline output
type Bundle struct {
	ResourceType string  `json:"resourceType"`
	Type         string  `json:"type"`
	ID           string  `json:"id"`
	Entry        []Entry `json:"entry"`
}

//Entry wraps one bundle resource
type Entry struct {
	Resource interface{} `json:"resource"`
}

type narrative struct {
	Status string `json:"status"`
	Div    string `json:"div"`
}

type section struct {
	Title string    `json:"title"`
	Text  narrative `json:"text"`
}

type composition struct {
	ResourceType string    `json:"resourceType"`
	Status       string    `json:"status"`
	Title        string    `json:"title"`
	Section      []section `json:"section"`
}

type coding struct {
	Code string `json:"code"`
}

type codeableConcept struct {
	Text   string   `json:"text"`
	Coding []coding `json:"coding"`
}

type condition struct {
	ResourceType string          `json:"resourceType"`
	Code         codeableConcept `json:"code"`
}

type medicationConcept struct {
	Text string `json:"text"`
}

type medicationStatement struct {
	ResourceType              string            `json:"resourceType"`
	MedicationCodeableConcept medicationConcept `json:"medicationCodeableConcept"`
}

//FHIRExporter maps a note and entities into a FHIR like document bundle.
//It is a demo level exporter, not a full FHIR implementation.
type FHIRExporter struct {
}

//NewFHIRExporter creates the exporter
func NewFHIRExporter() *FHIRExporter {
	return &FHIRExporter{}
}

//Build makes the document bundle for the job. The first entry is the SOAP
//composition, followed by a Condition per diagnosis and a
//MedicationStatement per medication.
func (e *FHIRExporter) Build(jobID string, entities domain.ClinicalEntities,
	note domain.SOAPNote) Bundle {
	entries := []Entry{{Resource: composition{ResourceType: "Composition", Status: "final",
		Title: "Clinical SOAP Note",
		Section: []section{
			{Title: "Subjective", Text: narrative{Status: "generated", Div: note.Subjective.Text}},
			{Title: "Objective", Text: narrative{Status: "generated", Div: note.Objective.Text}},
			{Title: "Assessment", Text: narrative{Status: "generated", Div: note.Assessment.Text}},
			{Title: "Plan", Text: narrative{Status: "generated", Div: note.Plan.Text}},
		}}}}
	for _, d := range entities.Diagnoses {
		c := condition{ResourceType: "Condition",
			Code: codeableConcept{Text: d.Text, Coding: []coding{}}}
		if d.Code != "" {
			c.Code.Coding = []coding{{Code: d.Code}}
		}
		entries = append(entries, Entry{Resource: c})
	}
	for _, m := range entities.Medications {
		entries = append(entries, Entry{Resource: medicationStatement{
			ResourceType:              "MedicationStatement",
			MedicationCodeableConcept: medicationConcept{Text: m.Text}}})
	}
	return Bundle{ResourceType: "Bundle", Type: "document", ID: jobID, Entry: entries}
}
