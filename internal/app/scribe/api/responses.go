package api

import (
	"time"

	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/export"
	"github.com/equiscribe/scribego/internal/pkg/status"
)

// IngestAudioResponse - audio upload response in JSON
type IngestAudioResponse struct {
	Job         *domain.TranscriptionJob `json:"job"`
	EncounterID string                   `json:"encounter_id"`
}

// AnalyzeTranscriptionResponse carries the full analysis of one transcript
type AnalyzeTranscriptionResponse struct {
	Entities    domain.ClinicalEntities    `json:"entities"`
	SOAPNote    domain.SOAPNote            `json:"soap_note"`
	Codes       []domain.CodeAssignment    `json:"codes"`
	BillingRisk *domain.BillingRiskSummary `json:"billing_risk"`
	Segments    []domain.TranscriptSegment `json:"segments"`
}

// AnalyzeResponse carries entities and a SOAP note for a raw transcript
type AnalyzeResponse struct {
	Entities domain.ClinicalEntities `json:"entities"`
	SOAPNote domain.SOAPNote         `json:"soap_note"`
}

// FHIRExportResponse wraps an exported FHIR bundle document
type FHIRExportResponse struct {
	Bundle export.Bundle `json:"bundle"`
}

// EncounterSummary is one row of an encounter listing
type EncounterSummary struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	ClinicianID string           `json:"clinician_id"`
	PatientID   string           `json:"patient_id"`
	Status      status.Encounter `json:"status"`
	Title       string           `json:"title"`
}

// EncounterDetailResponse returns an encounter with its jobs and note
type EncounterDetailResponse struct {
	Encounter *domain.Encounter          `json:"encounter"`
	Jobs      []*domain.TranscriptionJob `json:"jobs"`
	Note      *domain.Note               `json:"note"`
}

// EncounterDecisionSupportResponse lists advisory suggestions
type EncounterDecisionSupportResponse struct {
	Suggestions []domain.DecisionSupportSuggestion `json:"suggestions"`
}

// EncounterRegulatedDecisionSupportResponse reports the regulated lane state
type EncounterRegulatedDecisionSupportResponse struct {
	Enabled     bool                               `json:"enabled"`
	Suggestions []domain.DecisionSupportSuggestion `json:"suggestions"`
}
