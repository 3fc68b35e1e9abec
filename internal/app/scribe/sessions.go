package scribe

import (
	"net/http"
	"strings"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/nlp"
	"github.com/equiscribe/scribego/internal/pkg/tenancy"
	"github.com/gorilla/mux"
)

type createSessionHandler struct {
	data *ServiceData
}

func (h createSessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Session create request from %s", r.Host)
	var input api.CreateSessionRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	ctx := r.Context()
	ses, err := h.data.Sessions.Create(tenancy.FromContext(ctx), input.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "create_session", ResourceType: "conversation_session",
		ResourceID: ses.ID, Subject: subjectFrom(ctx)})
	writeJSON(w, http.StatusCreated, ses)
}

type getSessionHandler struct {
	data *ServiceData
}

func (h getSessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return
	}
	ctx := r.Context()
	ses, err := h.data.Sessions.Get(tenancy.FromContext(ctx), id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "get_session", ResourceType: "conversation_session",
		ResourceID: id, Subject: subjectFrom(ctx)})
	writeJSON(w, http.StatusOK, ses)
}

type attachTranscriptionHandler struct {
	data *ServiceData
}

func (h attachTranscriptionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return
	}
	var input api.AttachTranscriptionRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.JobID == "" {
		http.Error(w, "No job_id", http.StatusBadRequest)
		cmdapp.Log.Errorf("No job_id")
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	if _, err := h.data.Sessions.Get(tenant, id); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return
	}
	if _, err := h.data.Transcriptions.Get(tenant, input.JobID); err != nil {
		http.Error(w, "Transcription job not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return
	}
	updated, err := h.data.Sessions.AttachJob(tenant, id, input.JobID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "attach_transcription_to_session",
		ResourceType: "conversation_session", ResourceID: id, Subject: subjectFrom(ctx),
		Extra: map[string]interface{}{"job_id": input.JobID}})
	writeJSON(w, http.StatusOK, updated)
}

type analyzeSessionHandler struct {
	data *ServiceData
}

func (h analyzeSessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	ses, err := h.data.Sessions.Get(tenant, id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return
	}
	texts, err := h.data.Sessions.CompletedTexts(tenant, ses)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(texts) == 0 {
		http.Error(w, "No completed transcription results available for this session",
			http.StatusConflict)
		cmdapp.Log.Errorf("No results in session %s", id)
		return
	}

	combined := strings.Join(texts, "\n\n")
	entities, note, err := h.data.NLP.Analyze(tenant, combined, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	codes, risk := h.data.Coding.AssignCodes(entities, &note)
	segments := nlp.FillEmotion(nlp.Segments(combined))

	var riskLevel interface{}
	if risk != nil {
		riskLevel = string(risk.Level)
	}
	h.data.Audit.Log(audit.Event{Action: "analyze_session", ResourceType: "conversation_session",
		ResourceID: id, Subject: subjectFrom(ctx),
		Extra: map[string]interface{}{"job_count": len(texts), "has_codes": len(codes) > 0,
			"billing_risk_level": riskLevel, "segment_count": len(segments)}})

	writeJSON(w, http.StatusOK, newAnalysisResponse(entities, note, codes, risk, segments))
}
