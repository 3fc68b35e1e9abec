package scribe

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"github.com/equiscribe/scribego/internal/pkg/tenancy"
	"github.com/stretchr/testify/assert"
)

func TestCreateTranscription(t *testing.T) {
	initTest(t)
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions",
		api.CreateTranscriptionRequest{AudioURL: "/data/a.wav", LanguageCode: "en-AU"}))

	assert.Equal(t, 201, resp.Code)
	var job domain.TranscriptionJob
	decodeResp(t, resp, &job)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, status.JobCompleted, job.Status)
	assert.NotEmpty(t, job.ResultText)

	ev := testEvents.Last()
	assert.Equal(t, "create_transcription", ev.Action)
	assert.Equal(t, false, ev.Extra["async"])
}

func TestCreateTranscription_NoURL(t *testing.T) {
	initTest(t)
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions",
		api.CreateTranscriptionRequest{}))
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Body.String(), "No audio_url")
}

func TestCreateTranscription_BadBody(t *testing.T) {
	initTest(t)
	req := httptest.NewRequest("POST", "/api/v1/transcriptions", strings.NewReader("olia"))
	resp := doRequest(req)
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Body.String(), "Can't decode request")
}

func TestCreateTranscriptionAsync(t *testing.T) {
	initTest(t)
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions/async",
		api.CreateTranscriptionRequest{AudioURL: "/data/a.wav"}))

	assert.Equal(t, 202, resp.Code)
	var job domain.TranscriptionJob
	decodeResp(t, resp, &job)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, status.JobPending, job.Status)

	ev := testEvents.Last()
	assert.Equal(t, "enqueue_transcription", ev.Action)
	assert.Equal(t, true, ev.Extra["async"])
}

func TestGetTranscription(t *testing.T) {
	initTest(t)
	job := seedJob(t, "Patient has diabetes.")
	resp := doRequest(newReq(t, "GET", "/api/v1/transcriptions/"+job.ID, nil))

	assert.Equal(t, 200, resp.Code)
	var res domain.TranscriptionJob
	decodeResp(t, resp, &res)
	assert.Equal(t, job.ID, res.ID)
	assert.Equal(t, "get_transcription", testEvents.Last().Action)
}

func TestGetTranscription_NotFound(t *testing.T) {
	initTest(t)
	resp := doRequest(newReq(t, "GET", "/api/v1/transcriptions/olia", nil))
	assert.Equal(t, 404, resp.Code)
	assert.Contains(t, resp.Body.String(), "Transcription job not found")
}

func TestListTranscriptions(t *testing.T) {
	initTest(t)
	j1 := seedJob(t, "First visit.")
	j2 := seedJob(t, "Second visit.")
	resp := doRequest(newReq(t, "GET", "/api/v1/transcriptions", nil))

	assert.Equal(t, 200, resp.Code)
	var res []*domain.TranscriptionJob
	decodeResp(t, resp, &res)
	assert.Equal(t, 2, len(res))
	ids := []string{res[0].ID, res[1].ID}
	assert.Contains(t, ids, j1.ID)
	assert.Contains(t, ids, j2.ID)

	ev := testEvents.Last()
	assert.Equal(t, "list_transcriptions", ev.Action)
	assert.Equal(t, 2, ev.Extra["count"])
}

func TestListTranscriptions_Empty(t *testing.T) {
	initTest(t)
	resp := doRequest(newReq(t, "GET", "/api/v1/transcriptions", nil))
	assert.Equal(t, 200, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestListTranscriptions_TenantScoped(t *testing.T) {
	initTest(t)
	seedJob(t, "Mine.")
	_, err := testData.Transcriptions.Enqueue("clinicB", "/data/b.wav", "", "")
	assert.Nil(t, err)

	resp := doRequest(newReq(t, "GET", "/api/v1/transcriptions", nil))
	assert.Equal(t, 200, resp.Code)
	var res []*domain.TranscriptionJob
	decodeResp(t, resp, &res)
	assert.Equal(t, 1, len(res))
}

func TestAnalyzeTranscription(t *testing.T) {
	initTest(t)
	job := seedJob(t, "Patient has diabetes. Needs a follow-up visit.")
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions/"+job.ID+"/analyze", nil))

	assert.Equal(t, 200, resp.Code)
	var res api.AnalyzeTranscriptionResponse
	decodeResp(t, resp, &res)
	assert.Equal(t, 1, len(res.Entities.Diagnoses))
	assert.Equal(t, "E11", res.Entities.Diagnoses[0].Code)
	assert.True(t, len(res.Codes) >= 1)
	assert.NotNil(t, res.BillingRisk)
	assert.Equal(t, 2, len(res.Segments))
	assert.Equal(t, domain.EmotionNeutral, res.Segments[0].Emotion)

	ev := testEvents.Last()
	assert.Equal(t, "analyze_transcription", ev.Action)
	assert.Equal(t, true, ev.Extra["has_codes"])
	assert.Equal(t, 2, ev.Extra["segment_count"])
}

func TestAnalyzeTranscription_NotFound(t *testing.T) {
	initTest(t)
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions/olia/analyze", nil))
	assert.Equal(t, 404, resp.Code)
}

func TestAnalyzeTranscription_NoResult(t *testing.T) {
	initTest(t)
	job, err := testData.Transcriptions.Enqueue(tenancy.Default, "/data/a.wav", "", "")
	assert.Nil(t, err)
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions/"+job.ID+"/analyze", nil))
	assert.Equal(t, 409, resp.Code)
	assert.Contains(t, resp.Body.String(), "Transcription result not available yet")
}

func TestAnalyzeTranscription_UpdatesNote(t *testing.T) {
	initTest(t)
	job := seedJob(t, "Patient has diabetes.")
	enc, err := testData.Encounters.Create(tenancy.Default, "c1", "p1", "Visit")
	assert.Nil(t, err)
	_, err = testData.Encounters.AttachJob(tenancy.Default, enc.ID, job.ID)
	assert.Nil(t, err)

	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions/"+job.ID+"/analyze", nil))
	assert.Equal(t, 200, resp.Code)

	note, err := testData.Encounters.GetNote(tenancy.Default, enc.ID)
	assert.Nil(t, err)
	assert.NotNil(t, note)
	assert.True(t, strings.HasPrefix(note.Subjective.Text, "Subjective summary: "))
	assert.False(t, note.IsFinalized)
}

func TestExportFHIR(t *testing.T) {
	initTest(t)
	job := seedJob(t, "Patient has diabetes, takes metformin.")
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions/"+job.ID+"/export/fhir", nil))

	assert.Equal(t, 200, resp.Code)
	var res api.FHIRExportResponse
	decodeResp(t, resp, &res)
	assert.Equal(t, "Bundle", res.Bundle.ResourceType)
	assert.Equal(t, job.ID, res.Bundle.ID)
	assert.Equal(t, 3, len(res.Bundle.Entry))

	ev := testEvents.Last()
	assert.Equal(t, "export_transcription_fhir", ev.Action)
	assert.Equal(t, 3, ev.Extra["bundle_entry_count"])
}

func TestExportFHIR_NoResult(t *testing.T) {
	initTest(t)
	job, err := testData.Transcriptions.Enqueue(tenancy.Default, "/data/a.wav", "", "")
	assert.Nil(t, err)
	resp := doRequest(newReq(t, "POST", "/api/v1/transcriptions/"+job.ID+"/export/fhir", nil))
	assert.Equal(t, 409, resp.Code)
}

func TestAnalyzeTranscript(t *testing.T) {
	initTest(t)
	resp := doRequest(newReq(t, "POST", "/api/v1/nlp/analyze",
		api.AnalyzeRequest{Transcript: "My spirit is tired, doctor."}))

	assert.Equal(t, 200, resp.Code)
	var res api.AnalyzeResponse
	decodeResp(t, resp, &res)
	assert.Contains(t, res.SOAPNote.Subjective.Text, "low in mood")
	assert.Equal(t, "analyze_transcript", testEvents.Last().Action)
}

func TestAnalyzeTranscript_ConsentDenied(t *testing.T) {
	initTest(t)
	denied := false
	resp := doRequest(newReq(t, "POST", "/api/v1/nlp/analyze",
		api.AnalyzeRequest{Transcript: "My spirit is tired, doctor.",
			PatientMetadata: &domain.PatientMetadata{ConsentCulturalAI: &denied}}))

	assert.Equal(t, 200, resp.Code)
	var res api.AnalyzeResponse
	decodeResp(t, resp, &res)
	assert.Contains(t, res.SOAPNote.Subjective.Text, "spirit is tired")
	assert.NotContains(t, res.SOAPNote.Subjective.Text, "low in mood")
}
