package orchestrator

import (
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/persistence"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"github.com/equiscribe/scribego/internal/pkg/transcriber"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Service runs transcription jobs from submission to result
type Service struct {
	jobs        persistence.Jobs
	transcriber transcriber.Transcriber
	translator  transcriber.Translator
}

//NewService creates the transcription job service
func NewService(jobs persistence.Jobs, tr transcriber.Transcriber,
	tl transcriber.Translator) (*Service, error) {
	if jobs == nil {
		return nil, errors.New("No job store provided")
	}
	if tr == nil {
		return nil, errors.New("No transcriber provided")
	}
	if tl == nil {
		return nil, errors.New("No translator provided")
	}
	return &Service{jobs: jobs, transcriber: tr, translator: tl}, nil
}

//Enqueue creates a new job and leaves it pending for a later Process call
func (s *Service) Enqueue(tenant, audioURL, languageCode, targetLanguage string) (*domain.TranscriptionJob, error) {
	job := &domain.TranscriptionJob{ID: uuid.New().String(), CreatedAt: time.Now().UTC(),
		Status: status.JobPending, AudioURL: audioURL, LanguageCode: languageCode,
		TargetLanguage: targetLanguage, TenantID: tenant}
	if err := s.jobs.Save(job); err != nil {
		return nil, errors.Wrap(err, "Can't save job")
	}
	cmdapp.Log.Infof("Created job %s", job.ID)
	return job, nil
}

//Process runs the transcription pipeline for a pending job
func (s *Service) Process(tenant, id string) (*domain.TranscriptionJob, error) {
	job, err := s.Get(tenant, id)
	if err != nil {
		return nil, err
	}
	return s.run(job)
}

//Create makes a job and processes it synchronously
func (s *Service) Create(tenant, audioURL, languageCode, targetLanguage string) (*domain.TranscriptionJob, error) {
	job, err := s.Enqueue(tenant, audioURL, languageCode, targetLanguage)
	if err != nil {
		return nil, err
	}
	return s.run(job)
}

//Get returns the tenant job
func (s *Service) Get(tenant, id string) (*domain.TranscriptionJob, error) {
	job, err := s.jobs.Get(tenant, id)
	if err != nil {
		return nil, errors.Wrap(err, "Can't get job")
	}
	if job == nil {
		return nil, errs.Errorf(errs.NotFound, "No job %s", id)
	}
	return job, nil
}

//List returns the tenant jobs ordered by creation time
func (s *Service) List(tenant string) ([]*domain.TranscriptionJob, error) {
	jobs, err := s.jobs.List(tenant)
	if err != nil {
		return nil, errors.Wrap(err, "Can't list jobs")
	}
	return jobs, nil
}

func (s *Service) run(job *domain.TranscriptionJob) (*domain.TranscriptionJob, error) {
	if !status.JobCanChange(job.Status, status.JobProcessing) {
		return nil, errs.Errorf(errs.Conflict, "Job %s is not pending", job.ID)
	}
	job.Status = status.JobProcessing
	if err := s.jobs.Save(job); err != nil {
		return nil, errors.Wrap(err, "Can't save job")
	}

	text, err := s.transcriber.Transcribe(job.AudioURL, job.LanguageCode)
	if err != nil {
		return s.fail(job, errors.Wrap(err, "Can't transcribe"))
	}
	translated := ""
	if job.TargetLanguage != "" {
		translated, err = s.translator.Translate(text, job.LanguageCode, job.TargetLanguage)
		if err != nil {
			return s.fail(job, errors.Wrap(err, "Can't translate"))
		}
	}

	job.ResultText = text
	job.TranslatedText = translated
	job.Status = status.JobCompleted
	if err := s.jobs.Save(job); err != nil {
		return nil, errors.Wrap(err, "Can't save job")
	}
	cmdapp.Log.Infof("Completed job %s", job.ID)
	return job, nil
}

//fail marks the job terminally failed keeping the error message.
//The failed job is returned with no error so callers can expose it.
func (s *Service) fail(job *domain.TranscriptionJob, err error) (*domain.TranscriptionJob, error) {
	job.Status = status.JobFailed
	job.Error = err.Error()
	if errS := s.jobs.Save(job); errS != nil {
		return nil, errors.Wrap(errS, "Can't save job")
	}
	cmdapp.Log.Infof("Failed job %s: %s", job.ID, err.Error())
	return job, nil
}
