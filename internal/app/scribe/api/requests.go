package api

import "github.com/equiscribe/scribego/internal/pkg/domain"

// CreateTranscriptionRequest is the input for submitting a transcription job
type CreateTranscriptionRequest struct {
	AudioURL       string `json:"audio_url"`
	LanguageCode   string `json:"language_code"`
	TargetLanguage string `json:"target_language"`
}

// AnalyzeRequest is the input for analyzing a raw transcript
type AnalyzeRequest struct {
	Transcript      string                  `json:"transcript"`
	PatientMetadata *domain.PatientMetadata `json:"patient_metadata"`
}

// CreateSessionRequest is the input for starting a conversation session
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// AttachTranscriptionRequest names the job to attach to a session
type AttachTranscriptionRequest struct {
	JobID string `json:"job_id"`
}

// EncounterCreateRequest is the input for starting an encounter
type EncounterCreateRequest struct {
	PatientID string `json:"patient_id"`
	Title     string `json:"title"`
}

// EncounterNoteUpdateRequest carries the four SOAP sections of a note update
type EncounterNoteUpdateRequest struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
	Finalize   bool   `json:"finalize"`
}

// EncounterFinalizeRequest is the input for note finalization
type EncounterFinalizeRequest struct {
	ReviewComment string `json:"review_comment"`
}
