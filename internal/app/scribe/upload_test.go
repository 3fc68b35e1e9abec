package scribe

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"github.com/equiscribe/scribego/internal/pkg/test"
	"github.com/stretchr/testify/assert"
)

func newUploadReq(t *testing.T, fileName, contentType string, size int,
	fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, api.PrmFile, fileName))
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		assert.Nil(t, err)
		_, err = part.Write(make([]byte, size))
		assert.Nil(t, err)
	}
	for k, v := range fields {
		assert.Nil(t, writer.WriteField(k, v))
	}
	assert.Nil(t, writer.Close())
	req := httptest.NewRequest("POST", "/api/v1/audio/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 100, nil))

	assert.Equal(t, 201, resp.Code)
	var res api.IngestAudioResponse
	decodeResp(t, resp, &res)
	assert.NotEmpty(t, res.Job.ID)
	assert.Equal(t, status.JobCompleted, res.Job.Status)
	assert.NotEmpty(t, res.Job.ResultText)
	assert.NotEmpty(t, res.EncounterID)

	ev := testEvents.Last()
	assert.Equal(t, "upload_audio", ev.Action)
	assert.Equal(t, res.Job.ID, ev.ResourceID)
	assert.Equal(t, int64(100), ev.Extra["size_bytes"])
}

func TestUpload_CreatesEncounter(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 10,
		map[string]string{api.PrmPatientID: "p1", api.PrmClinicianID: "c1"}))
	assert.Equal(t, 201, resp.Code)
	var res api.IngestAudioResponse
	decodeResp(t, resp, &res)

	enc, err := testData.Encounters.Get("default", res.EncounterID)
	assert.Nil(t, err)
	assert.Equal(t, status.EncInProgress, enc.Status)
	assert.Equal(t, "visit.wav", enc.Title)
	assert.Equal(t, "p1", enc.PatientID)
	assert.Equal(t, "c1", enc.ClinicianID)
	assert.Equal(t, []string{res.Job.ID}, enc.JobIDs)
}

func TestUpload_AttachesToEncounter(t *testing.T) {
	initTest(t)
	enc, err := testData.Encounters.Create("default", "c1", "p1", "Visit")
	assert.Nil(t, err)

	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 10,
		map[string]string{api.PrmEncounterID: enc.ID}))
	assert.Equal(t, 201, resp.Code)
	var res api.IngestAudioResponse
	decodeResp(t, resp, &res)
	assert.Equal(t, enc.ID, res.EncounterID)

	updated, err := testData.Encounters.Get("default", enc.ID)
	assert.Nil(t, err)
	assert.Equal(t, []string{res.Job.ID}, updated.JobIDs)
}

func TestUpload_AttachesToSession(t *testing.T) {
	initTest(t)
	ses, err := testData.Sessions.Create("default", "Ward round")
	assert.Nil(t, err)

	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 10,
		map[string]string{api.PrmSessionID: ses.ID}))
	assert.Equal(t, 201, resp.Code)
	var res api.IngestAudioResponse
	decodeResp(t, resp, &res)

	updated, err := testData.Sessions.Get("default", ses.ID)
	assert.Nil(t, err)
	assert.Equal(t, []string{res.Job.ID}, updated.JobIDs)
	assert.Equal(t, ses.ID, testEvents.Last().Extra["session_id"])
}

func TestUpload_UnknownSession(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 10,
		map[string]string{api.PrmSessionID: "olia"}))
	assert.Equal(t, 404, resp.Code)
	assert.Contains(t, resp.Body.String(), "Session not found")
	assert.False(t, test.Contains(testEvents.Actions(), "upload_audio"))
}

func TestUpload_UnknownEncounter(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 10,
		map[string]string{api.PrmEncounterID: "olia"}))
	assert.Equal(t, 404, resp.Code)
	assert.Contains(t, resp.Body.String(), "Encounter not found")
}

func TestUpload_NoFile(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "", "", 0, map[string]string{api.PrmPatientID: "p1"}))
	assert.Equal(t, 400, resp.Code)
}

func TestUpload_NoMultipart(t *testing.T) {
	initTest(t)
	resp := doRequest(httptest.NewRequest("POST", "/api/v1/audio/upload", nil))
	assert.Equal(t, 400, resp.Code)
}

func TestUpload_WrongType(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "notes.txt", "text/plain", 10, nil))
	assert.Equal(t, 400, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid file type")
	assert.Empty(t, testEvents.Get())
}

func TestUpload_NoType(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "visit.wav", "", 10, nil))
	assert.Equal(t, 400, resp.Code)
}

func TestUpload_TooBig(t *testing.T) {
	initTest(t)
	testData.UploadLimit = 50
	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 51, nil))
	assert.Equal(t, 413, resp.Code)
	assert.Contains(t, resp.Body.String(), "Uploaded file too large.")
	assert.Empty(t, testEvents.Get())
}

func TestUpload_LanguagePassed(t *testing.T) {
	initTest(t)
	resp := doRequest(newUploadReq(t, "visit.wav", "audio/wav", 10,
		map[string]string{api.PrmLanguageCode: "en-AU", api.PrmTargetLanguage: "es-ES"}))
	assert.Equal(t, 201, resp.Code)
	var res api.IngestAudioResponse
	decodeResp(t, resp, &res)
	assert.Equal(t, "en-AU", res.Job.LanguageCode)
	assert.NotEmpty(t, res.Job.TranslatedText)
}
