package session

import (
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/persistence"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Service manages conversation sessions spanning several transcription jobs
type Service struct {
	sessions persistence.Sessions
	jobs     persistence.Jobs
}

//NewService creates the session service
func NewService(sessions persistence.Sessions, jobs persistence.Jobs) (*Service, error) {
	if sessions == nil {
		return nil, errors.New("No session store provided")
	}
	if jobs == nil {
		return nil, errors.New("No job store provided")
	}
	return &Service{sessions: sessions, jobs: jobs}, nil
}

//Create starts a new session
func (s *Service) Create(tenant, title string) (*domain.Session, error) {
	ses := &domain.Session{ID: uuid.New().String(), CreatedAt: time.Now().UTC(),
		Title: title, TenantID: tenant}
	if err := s.sessions.Save(ses); err != nil {
		return nil, errors.Wrap(err, "Can't save session")
	}
	cmdapp.Log.Infof("Created session %s", ses.ID)
	return ses, nil
}

//Get returns the tenant session
func (s *Service) Get(tenant, id string) (*domain.Session, error) {
	ses, err := s.sessions.Get(tenant, id)
	if err != nil {
		return nil, errors.Wrap(err, "Can't get session")
	}
	if ses == nil {
		return nil, errs.Errorf(errs.NotFound, "No session %s", id)
	}
	return ses, nil
}

//AttachJob links a job to the session, repeated attach changes nothing
func (s *Service) AttachJob(tenant, sessionID, jobID string) (*domain.Session, error) {
	ses, err := s.Get(tenant, sessionID)
	if err != nil {
		return nil, err
	}
	for _, id := range ses.JobIDs {
		if id == jobID {
			return ses, nil
		}
	}
	ses.JobIDs = append(ses.JobIDs, jobID)
	if err := s.sessions.Save(ses); err != nil {
		return nil, errors.Wrap(err, "Can't save session")
	}
	cmdapp.Log.Infof("Attached job %s to session %s", jobID, sessionID)
	return ses, nil
}

//CompletedTexts collects result texts of the session jobs that finished.
//Jobs missing from the store are skipped
func (s *Service) CompletedTexts(tenant string, ses *domain.Session) ([]string, error) {
	var res []string
	for _, id := range ses.JobIDs {
		job, err := s.jobs.Get(tenant, id)
		if err != nil {
			return nil, errors.Wrap(err, "Can't get job")
		}
		if job != nil && job.Status == status.JobCompleted && job.ResultText != "" {
			res = append(res, job.ResultText)
		}
	}
	return res, nil
}
