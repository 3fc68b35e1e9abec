package domain

import (
	"time"

	"github.com/equiscribe/scribego/internal/pkg/status"
)

//Role is a user role within a tenant
type Role string

const (
	//RoleClinician value
	RoleClinician Role = "clinician"
	//RoleAdmin value
	RoleAdmin Role = "admin"
)

//User is an authenticated caller resolved from an API key subject
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	TenantID string `json:"tenant_id"`
}

//IsAdmin tests the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

//TranscriptionJob tracks one audio transcription from submission to result
type TranscriptionJob struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	Status         status.Job `json:"status"`
	AudioURL       string     `json:"audio_url"`
	LanguageCode   string     `json:"language_code,omitempty"`
	TargetLanguage string     `json:"target_language,omitempty"`
	ResultText     string     `json:"result_text,omitempty"`
	TranslatedText string     `json:"translated_text,omitempty"`
	Error          string     `json:"error,omitempty"`
	TenantID       string     `json:"tenant_id"`
}

//Encounter groups transcription jobs and a note for one patient visit
type Encounter struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	ClinicianID string           `json:"clinician_id,omitempty"`
	PatientID   string           `json:"patient_id,omitempty"`
	Status      status.Encounter `json:"status"`
	Title       string           `json:"title,omitempty"`
	JobIDs      []string         `json:"transcription_job_ids"`
	TenantID    string           `json:"tenant_id"`
}

//Note is the SOAP style clinical note of an encounter, one active note per encounter
type Note struct {
	ID            string      `json:"id"`
	EncounterID   string      `json:"encounter_id"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	CreatedBy     string      `json:"created_by,omitempty"`
	LastEditedBy  string      `json:"last_edited_by,omitempty"`
	IsFinalized   bool        `json:"is_finalized"`
	ReviewedBy    string      `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time  `json:"reviewed_at,omitempty"`
	ReviewComment string      `json:"review_comment,omitempty"`
	Subjective    SOAPSection `json:"subjective"`
	Objective     SOAPSection `json:"objective"`
	Assessment    SOAPSection `json:"assessment"`
	Plan          SOAPSection `json:"plan"`
	TenantID      string      `json:"tenant_id"`
}

//Session is a logical conversation spanning one or more transcription jobs
type Session struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Title     string     `json:"title,omitempty"`
	JobIDs    []string   `json:"transcription_job_ids"`
	TenantID  string     `json:"tenant_id"`
}

//PatientMetadata carries self reported cultural and consent flags into the
//NLP pipeline. It is request scoped, never persisted as a patient record.
type PatientMetadata struct {
	CulturalIdentity      []string `json:"cultural_identity,omitempty"`
	IndigenousAffiliation string   `json:"indigenous_affiliation,omitempty"`
	LanguagePreferences   []string `json:"language_preferences,omitempty"`

	ConsentCulturalAI   *bool `json:"consent_cultural_ai,omitempty"`
	ConsentDataTraining *bool `json:"consent_data_training,omitempty"`

	Region                        string `json:"region,omitempty"`
	Environment                   string `json:"environment,omitempty"`
	HasHistoricalTraumaDocumented *bool  `json:"has_historical_trauma_documented,omitempty"`
}
