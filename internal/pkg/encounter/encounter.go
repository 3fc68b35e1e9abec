package encounter

import (
	"strings"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/persistence"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

//NoteText carries the four SOAP sections of a note update
type NoteText struct {
	Subjective string
	Objective  string
	Assessment string
	Plan       string
}

//Filter narrows an encounter listing, zero fields match everything
type Filter struct {
	ClinicianID string
	PatientID   string
	Status      status.Encounter
}

// Service manages the encounter and note lifecycle
type Service struct {
	encounters persistence.Encounters
	notes      persistence.Notes
	jobs       persistence.Jobs
}

//NewService creates the encounter service
func NewService(encounters persistence.Encounters, notes persistence.Notes,
	jobs persistence.Jobs) (*Service, error) {
	if encounters == nil {
		return nil, errors.New("No encounter store provided")
	}
	if notes == nil {
		return nil, errors.New("No note store provided")
	}
	if jobs == nil {
		return nil, errors.New("No job store provided")
	}
	return &Service{encounters: encounters, notes: notes, jobs: jobs}, nil
}

//Create starts a new encounter for the clinician
func (s *Service) Create(tenant, clinicianID, patientID, title string) (*domain.Encounter, error) {
	enc := &domain.Encounter{ID: uuid.New().String(), CreatedAt: time.Now().UTC(),
		ClinicianID: clinicianID, PatientID: patientID, Status: status.EncCreated,
		Title: title, TenantID: tenant}
	if err := s.encounters.Save(enc); err != nil {
		return nil, errors.Wrap(err, "Can't save encounter")
	}
	cmdapp.Log.Infof("Created encounter %s", enc.ID)
	return enc, nil
}

//Get returns the tenant encounter
func (s *Service) Get(tenant, id string) (*domain.Encounter, error) {
	enc, err := s.encounters.Get(tenant, id)
	if err != nil {
		return nil, errors.Wrap(err, "Can't get encounter")
	}
	if enc == nil {
		return nil, errs.Errorf(errs.NotFound, "No encounter %s", id)
	}
	return enc, nil
}

//List returns the tenant encounters matching the filter, ordered by creation time
func (s *Service) List(tenant string, filter Filter) ([]*domain.Encounter, error) {
	encs, err := s.encounters.List(tenant)
	if err != nil {
		return nil, errors.Wrap(err, "Can't list encounters")
	}
	res := make([]*domain.Encounter, 0, len(encs))
	for _, enc := range encs {
		if filter.ClinicianID != "" && enc.ClinicianID != filter.ClinicianID {
			continue
		}
		if filter.PatientID != "" && enc.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != 0 && enc.Status != filter.Status {
			continue
		}
		res = append(res, enc)
	}
	return res, nil
}

//AttachJob adds the job to the encounter list, a repeated attach is a no op.
//The first attached job moves a created encounter to in progress.
func (s *Service) AttachJob(tenant, encounterID, jobID string) (*domain.Encounter, error) {
	enc, err := s.Get(tenant, encounterID)
	if err != nil {
		return nil, err
	}
	for _, id := range enc.JobIDs {
		if id == jobID {
			return enc, nil
		}
	}
	enc.JobIDs = append(enc.JobIDs, jobID)
	if enc.Status == status.EncCreated {
		enc.Status = status.EncInProgress
	}
	if err := s.encounters.Save(enc); err != nil {
		return nil, errors.Wrap(err, "Can't save encounter")
	}
	cmdapp.Log.Infof("Attached job %s to encounter %s", jobID, encounterID)
	return enc, nil
}

//FindForJob returns the first tenant encounter referencing the job, nil when none
func (s *Service) FindForJob(tenant, jobID string) (*domain.Encounter, error) {
	encs, err := s.encounters.List(tenant)
	if err != nil {
		return nil, errors.Wrap(err, "Can't list encounters")
	}
	for _, enc := range encs {
		for _, id := range enc.JobIDs {
			if id == jobID {
				return enc, nil
			}
		}
	}
	return nil, nil
}

//Jobs resolves the encounter jobs, skipping ids with no stored job
func (s *Service) Jobs(tenant string, enc *domain.Encounter) ([]*domain.TranscriptionJob, error) {
	res := make([]*domain.TranscriptionJob, 0, len(enc.JobIDs))
	for _, id := range enc.JobIDs {
		job, err := s.jobs.Get(tenant, id)
		if err != nil {
			return nil, errors.Wrap(err, "Can't get job")
		}
		if job != nil {
			res = append(res, job)
		}
	}
	return res, nil
}

//GetNote returns the encounter note, nil when the encounter has none
func (s *Service) GetNote(tenant, encounterID string) (*domain.Note, error) {
	note, err := s.notes.GetByEncounter(tenant, encounterID)
	if err != nil {
		return nil, errors.Wrap(err, "Can't get note")
	}
	return note, nil
}

//UpsertNote creates or replaces the encounter note from SOAP sections.
//A finalized note is immutable, any further update fails. Finalizing
//requires all four sections to contain text, a failed check changes nothing.
func (s *Service) UpsertNote(tenant, encounterID string, text NoteText, editorID string,
	finalize bool) (*domain.Note, error) {
	enc, err := s.Get(tenant, encounterID)
	if err != nil {
		return nil, err
	}
	note, err := s.notes.GetByEncounter(tenant, encounterID)
	if err != nil {
		return nil, errors.Wrap(err, "Can't get note")
	}
	if note != nil && note.IsFinalized {
		return nil, errs.Errorf(errs.Conflict, "Note of encounter %s is finalized", encounterID)
	}
	if finalize {
		if err := validateComplete(text); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	if note == nil {
		note = &domain.Note{ID: uuid.New().String(), EncounterID: encounterID,
			CreatedAt: now, CreatedBy: editorID, TenantID: tenant}
	}
	note.UpdatedAt = now
	if editorID != "" {
		note.LastEditedBy = editorID
	}
	note.IsFinalized = note.IsFinalized || finalize
	note.Subjective = domain.SOAPSection{Text: text.Subjective}
	note.Objective = domain.SOAPSection{Text: text.Objective}
	note.Assessment = domain.SOAPSection{Text: text.Assessment}
	note.Plan = domain.SOAPSection{Text: text.Plan}
	if err := s.notes.Save(note); err != nil {
		return nil, errors.Wrap(err, "Can't save note")
	}
	if err := s.advance(enc, finalize); err != nil {
		return nil, err
	}
	return note, nil
}

//SubmitForReview moves a created or in progress encounter to ready for review.
//Other statuses are left unchanged.
func (s *Service) SubmitForReview(tenant, encounterID string) (*domain.Encounter, error) {
	enc, err := s.Get(tenant, encounterID)
	if err != nil {
		return nil, err
	}
	if enc.Status == status.EncCreated || enc.Status == status.EncInProgress {
		enc.Status = status.EncReadyForReview
		if err := s.encounters.Save(enc); err != nil {
			return nil, errors.Wrap(err, "Can't save encounter")
		}
	}
	return enc, nil
}

//Finalize marks the encounter note reviewed and final. The note becomes
//immutable and the encounter moves to finalized.
func (s *Service) Finalize(tenant, encounterID, reviewerID, reviewComment string) (*domain.Note, error) {
	enc, err := s.Get(tenant, encounterID)
	if err != nil {
		return nil, err
	}
	note, err := s.notes.GetByEncounter(tenant, encounterID)
	if err != nil {
		return nil, errors.Wrap(err, "Can't get note")
	}
	if note == nil {
		return nil, errs.New(errs.Conflict, "No note available to finalize")
	}
	if note.IsFinalized {
		return nil, errs.Errorf(errs.Conflict, "Note of encounter %s is finalized", encounterID)
	}
	if err := validateComplete(NoteText{Subjective: note.Subjective.Text,
		Objective: note.Objective.Text, Assessment: note.Assessment.Text,
		Plan: note.Plan.Text}); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	note.IsFinalized = true
	note.ReviewedBy = reviewerID
	note.ReviewedAt = &now
	note.ReviewComment = reviewComment
	if err := s.notes.Save(note); err != nil {
		return nil, errors.Wrap(err, "Can't save note")
	}
	if err := s.advance(enc, true); err != nil {
		return nil, err
	}
	cmdapp.Log.Infof("Finalized encounter %s", encounterID)
	return note, nil
}

func (s *Service) advance(enc *domain.Encounter, finalize bool) error {
	to := enc.Status
	if finalize {
		to = status.EncFinalized
	} else if enc.Status == status.EncCreated || enc.Status == status.EncInProgress {
		to = status.EncReadyForReview
	}
	if to == enc.Status || !status.EncounterCanChange(enc.Status, to) {
		return nil
	}
	enc.Status = to
	if err := s.encounters.Save(enc); err != nil {
		return errors.Wrap(err, "Can't save encounter")
	}
	cmdapp.Log.Infof("Encounter %s moved to %s", enc.ID, to)
	return nil
}

//validateComplete checks that every note section contains text
func validateComplete(text NoteText) error {
	var missing []string
	if strings.TrimSpace(text.Subjective) == "" {
		missing = append(missing, "subjective")
	}
	if strings.TrimSpace(text.Objective) == "" {
		missing = append(missing, "objective")
	}
	if strings.TrimSpace(text.Assessment) == "" {
		missing = append(missing, "assessment")
	}
	if strings.TrimSpace(text.Plan) == "" {
		missing = append(missing, "plan")
	}
	if len(missing) > 0 {
		return errs.Errorf(errs.Validation, "Empty note sections: %s", strings.Join(missing, ", "))
	}
	return nil
}
