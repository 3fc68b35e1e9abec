package orchestrator

import (
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/persistence"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"github.com/equiscribe/scribego/internal/pkg/test/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	trMock *mocks.Transcriber
	tlMock *mocks.Translator
	jobs   *persistence.InMemJobs
	srv    *Service
)

func initTest(t *testing.T) {
	t.Helper()
	trMock = &mocks.Transcriber{}
	tlMock = &mocks.Translator{}
	jobs = persistence.NewInMemJobs()
	var err error
	srv, err = NewService(jobs, trMock, tlMock)
	assert.Nil(t, err)
}

func TestNewService_Fails(t *testing.T) {
	_, err := NewService(nil, &mocks.Transcriber{}, &mocks.Translator{})
	assert.NotNil(t, err)
	_, err = NewService(persistence.NewInMemJobs(), nil, &mocks.Translator{})
	assert.NotNil(t, err)
	_, err = NewService(persistence.NewInMemJobs(), &mocks.Transcriber{}, nil)
	assert.NotNil(t, err)
}

func TestEnqueue(t *testing.T) {
	initTest(t)

	job, err := srv.Enqueue("t1", "/data/a.wav", "en-US", "")

	assert.Nil(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, status.JobPending, job.Status)
	saved, _ := jobs.Get("t1", job.ID)
	assert.Equal(t, status.JobPending, saved.Status)
}

func TestCreate(t *testing.T) {
	initTest(t)
	trMock.On("Transcribe", "/data/a.wav", "en-US").Return("text", nil)

	job, err := srv.Create("t1", "/data/a.wav", "en-US", "")

	assert.Nil(t, err)
	assert.Equal(t, status.JobCompleted, job.Status)
	assert.Equal(t, "text", job.ResultText)
	assert.Equal(t, "", job.TranslatedText)
	tlMock.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_Translates(t *testing.T) {
	initTest(t)
	trMock.On("Transcribe", "/data/a.wav", "en-US").Return("text", nil)
	tlMock.On("Translate", "text", "en-US", "es-ES").Return("texto", nil)

	job, err := srv.Create("t1", "/data/a.wav", "en-US", "es-ES")

	assert.Nil(t, err)
	assert.Equal(t, status.JobCompleted, job.Status)
	assert.Equal(t, "text", job.ResultText)
	assert.Equal(t, "texto", job.TranslatedText)
}

func TestCreate_FailsOnTranscribe(t *testing.T) {
	initTest(t)
	trMock.On("Transcribe", mock.Anything, mock.Anything).Return("", errors.New("olia"))

	job, err := srv.Create("t1", "/data/a.wav", "en-US", "")

	assert.Nil(t, err)
	assert.Equal(t, status.JobFailed, job.Status)
	assert.Contains(t, job.Error, "olia")
	assert.Equal(t, "", job.ResultText)
}

func TestCreate_FailsOnTranslate(t *testing.T) {
	initTest(t)
	trMock.On("Transcribe", mock.Anything, mock.Anything).Return("text", nil)
	tlMock.On("Translate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("olia"))

	job, err := srv.Create("t1", "/data/a.wav", "en-US", "es-ES")

	assert.Nil(t, err)
	assert.Equal(t, status.JobFailed, job.Status)
	assert.Contains(t, job.Error, "olia")
}

func TestCreate_SavesFailedStatus(t *testing.T) {
	initTest(t)
	trMock.On("Transcribe", mock.Anything, mock.Anything).Return("", errors.New("olia"))

	enq, err := srv.Enqueue("t1", "/data/a.wav", "en-US", "")
	assert.Nil(t, err)
	job, err := srv.Process("t1", enq.ID)

	assert.Nil(t, err)
	assert.Equal(t, status.JobFailed, job.Status)
	saved, _ := jobs.Get("t1", enq.ID)
	assert.Equal(t, status.JobFailed, saved.Status)
	assert.NotEmpty(t, saved.Error)
}

func TestProcess(t *testing.T) {
	initTest(t)
	trMock.On("Transcribe", "/data/a.wav", "en-US").Return("text", nil)
	enq, err := srv.Enqueue("t1", "/data/a.wav", "en-US", "")
	assert.Nil(t, err)

	job, err := srv.Process("t1", enq.ID)

	assert.Nil(t, err)
	assert.Equal(t, status.JobCompleted, job.Status)
}

func TestProcess_NoJob(t *testing.T) {
	initTest(t)

	_, err := srv.Process("t1", "id1")

	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestProcess_WrongTenant(t *testing.T) {
	initTest(t)
	enq, err := srv.Enqueue("t1", "/data/a.wav", "en-US", "")
	assert.Nil(t, err)

	_, err = srv.Process("t2", enq.ID)

	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestProcess_CompletedFails(t *testing.T) {
	initTest(t)
	trMock.On("Transcribe", mock.Anything, mock.Anything).Return("text", nil)
	job, err := srv.Create("t1", "/data/a.wav", "en-US", "")
	assert.Nil(t, err)

	_, err = srv.Process("t1", job.ID)

	assert.Equal(t, errs.Conflict, errs.KindOf(err))
}

func TestGet(t *testing.T) {
	initTest(t)
	enq, err := srv.Enqueue("t1", "/data/a.wav", "en-US", "")
	assert.Nil(t, err)

	job, err := srv.Get("t1", enq.ID)

	assert.Nil(t, err)
	assert.Equal(t, enq.ID, job.ID)
}

func TestGet_WrongTenant(t *testing.T) {
	initTest(t)
	enq, err := srv.Enqueue("t1", "/data/a.wav", "en-US", "")
	assert.Nil(t, err)

	_, err = srv.Get("t2", enq.ID)

	assert.Equal(t, errs.NotFound, errs.KindOf(err))
}

func TestList(t *testing.T) {
	initTest(t)
	_, err := srv.Enqueue("t1", "/data/a.wav", "en-US", "")
	assert.Nil(t, err)
	_, err = srv.Enqueue("t1", "/data/b.wav", "en-US", "")
	assert.Nil(t, err)
	_, err = srv.Enqueue("t2", "/data/c.wav", "en-US", "")
	assert.Nil(t, err)

	res, err := srv.List("t1")

	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
}
