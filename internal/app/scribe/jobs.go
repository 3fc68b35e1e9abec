package scribe

import (
	"net/http"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/encounter"
	"github.com/equiscribe/scribego/internal/pkg/nlp"
	"github.com/equiscribe/scribego/internal/pkg/tenancy"
	"github.com/gorilla/mux"
)

type createTranscriptionHandler struct {
	data *ServiceData
}

func (h createTranscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Transcription request from %s", r.Host)
	var input api.CreateTranscriptionRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.AudioURL == "" {
		http.Error(w, "No audio_url", http.StatusBadRequest)
		cmdapp.Log.Errorf("No audio_url")
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	job, err := h.data.Transcriptions.Create(tenant, input.AudioURL, input.LanguageCode,
		input.TargetLanguage)
	if err != nil {
		writeError(w, err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "create_transcription", ResourceType: "transcription_job",
		ResourceID: job.ID, Subject: subjectFrom(ctx),
		Extra: map[string]interface{}{"async": false}})
	writeJSON(w, http.StatusCreated, job)
}

type createAsyncTranscriptionHandler struct {
	data *ServiceData
}

func (h createAsyncTranscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Async transcription request from %s", r.Host)
	var input api.CreateTranscriptionRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.AudioURL == "" {
		http.Error(w, "No audio_url", http.StatusBadRequest)
		cmdapp.Log.Errorf("No audio_url")
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	job, err := h.data.Transcriptions.Enqueue(tenant, input.AudioURL, input.LanguageCode,
		input.TargetLanguage)
	if err != nil {
		writeError(w, err)
		return
	}
	go func() {
		if _, err := h.data.Transcriptions.Process(tenant, job.ID); err != nil {
			cmdapp.Log.Error(err)
		}
	}()
	h.data.Audit.Log(audit.Event{Action: "enqueue_transcription", ResourceType: "transcription_job",
		ResourceID: job.ID, Subject: subjectFrom(ctx),
		Extra: map[string]interface{}{"async": true}})
	writeJSON(w, http.StatusAccepted, job)
}

type listTranscriptionsHandler struct {
	data *ServiceData
}

func (h listTranscriptionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobs, err := h.data.Transcriptions.List(tenancy.FromContext(ctx))
	if err != nil {
		writeError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*domain.TranscriptionJob{}
	}
	h.data.Audit.Log(audit.Event{Action: "list_transcriptions", ResourceType: "transcription_job",
		Subject: subjectFrom(ctx), Extra: map[string]interface{}{"count": len(jobs)}})
	writeJSON(w, http.StatusOK, jobs)
}

type getTranscriptionHandler struct {
	data *ServiceData
}

func (h getTranscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return
	}
	ctx := r.Context()
	job, err := h.data.Transcriptions.Get(tenancy.FromContext(ctx), id)
	if err != nil {
		http.Error(w, "Transcription job not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "get_transcription", ResourceType: "transcription_job",
		ResourceID: id, Subject: subjectFrom(ctx)})
	writeJSON(w, http.StatusOK, job)
}

type analyzeTranscriptionHandler struct {
	data *ServiceData
}

func (h analyzeTranscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	job, err := h.data.Transcriptions.Get(tenant, id)
	if err != nil {
		http.Error(w, "Transcription job not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return
	}
	if job.ResultText == "" {
		http.Error(w, "Transcription result not available yet", http.StatusConflict)
		cmdapp.Log.Errorf("No result for job %s", id)
		return
	}

	entities, note, err := h.data.NLP.Analyze(tenant, job.ResultText, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	codes, risk := h.data.Coding.AssignCodes(entities, &note)
	segments := nlp.FillEmotion(nlp.Segments(job.ResultText))

	h.updateNote(tenant, id, note)

	var riskLevel interface{}
	if risk != nil {
		riskLevel = string(risk.Level)
	}
	h.data.Audit.Log(audit.Event{Action: "analyze_transcription", ResourceType: "transcription_job",
		ResourceID: id, Subject: subjectFrom(ctx),
		Extra: map[string]interface{}{"has_codes": len(codes) > 0, "billing_risk_level": riskLevel,
			"segment_count": len(segments)}})

	writeJSON(w, http.StatusOK, newAnalysisResponse(entities, note, codes, risk, segments))
}

//updateNote refreshes the note of an encounter referencing the job.
//Best effort, failures only get logged
func (h analyzeTranscriptionHandler) updateNote(tenant, jobID string, note domain.SOAPNote) {
	enc, err := h.data.Encounters.FindForJob(tenant, jobID)
	if err != nil {
		cmdapp.Log.Error(err)
		return
	}
	if enc == nil {
		return
	}
	_, err = h.data.Encounters.UpsertNote(tenant, enc.ID, encounter.NoteText{
		Subjective: note.Subjective.Text, Objective: note.Objective.Text,
		Assessment: note.Assessment.Text, Plan: note.Plan.Text}, "", false)
	if err != nil {
		cmdapp.Log.Error(err)
	}
}

type exportFHIRHandler struct {
	data *ServiceData
}

func (h exportFHIRHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	job, err := h.data.Transcriptions.Get(tenant, id)
	if err != nil {
		http.Error(w, "Transcription job not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return
	}
	if job.ResultText == "" {
		http.Error(w, "Transcription result not available yet", http.StatusConflict)
		cmdapp.Log.Errorf("No result for job %s", id)
		return
	}

	entities, note, err := h.data.NLP.Analyze(tenant, job.ResultText, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	bundle := h.data.Exporter.Build(id, entities, note)

	h.data.Audit.Log(audit.Event{Action: "export_transcription_fhir", ResourceType: "transcription_job",
		ResourceID: id, Subject: subjectFrom(ctx),
		Extra: map[string]interface{}{"bundle_entry_count": len(bundle.Entry)}})

	writeJSON(w, http.StatusOK, &api.FHIRExportResponse{Bundle: bundle})
}

type analyzeTranscriptHandler struct {
	data *ServiceData
}

func (h analyzeTranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Analyze request from %s", r.Host)
	var input api.AnalyzeRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	ctx := r.Context()
	entities, note, err := h.data.NLP.Analyze(tenancy.FromContext(ctx), input.Transcript,
		input.PatientMetadata)
	if err != nil {
		writeError(w, err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "analyze_transcript", ResourceType: "nlp_transcript",
		Subject: subjectFrom(ctx)})
	writeJSON(w, http.StatusOK, &api.AnalyzeResponse{Entities: entities, SOAPNote: note})
}
