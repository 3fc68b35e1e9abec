package scribe

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/tenancy"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type uploadHandler struct {
	data *ServiceData
}

func (h uploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Saving audio from %s", r.Host)

	err := r.ParseMultipartForm(32 << 20)
	if err != nil {
		http.Error(w, "Can't parse MultipartForm", http.StatusBadRequest)
		cmdapp.Log.Error(errors.Wrap(err, "Can't parse MultipartForm"))
		return
	}
	defer cleanFiles(r.MultipartForm)

	file, handler, err := r.FormFile(api.PrmFile)
	if err != nil {
		http.Error(w, "No file", http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return
	}
	defer file.Close()

	if !strings.HasPrefix(handler.Header.Get("Content-Type"), "audio/") {
		http.Error(w, "Invalid file type; expected audio/*.", http.StatusBadRequest)
		cmdapp.Log.Errorf("Wrong content type '%s'", handler.Header.Get("Content-Type"))
		return
	}
	if h.data.UploadLimit > 0 && handler.Size > h.data.UploadLimit {
		http.Error(w, "Uploaded file too large.", http.StatusRequestEntityTooLarge)
		cmdapp.Log.Errorf("Too big file of %d b", handler.Size)
		return
	}

	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	name := uuid.New().String() + ext
	size, err := h.data.AudioStore.Save(name, file)
	if err != nil {
		http.Error(w, "Can not save file", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}

	job, err := h.data.Transcriptions.Create(tenant, h.data.AudioStore.Path(name),
		r.FormValue(api.PrmLanguageCode), r.FormValue(api.PrmTargetLanguage))
	if err != nil {
		writeError(w, err)
		return
	}

	var sessionID interface{}
	if id := r.FormValue(api.PrmSessionID); id != "" {
		if _, err := h.data.Sessions.AttachJob(tenant, id, job.ID); err != nil {
			if errs.KindOf(err) == errs.NotFound {
				http.Error(w, "Session not found", http.StatusNotFound)
				cmdapp.Log.Error(err)
				return
			}
			writeError(w, err)
			return
		}
		sessionID = id
	}

	encounterID := r.FormValue(api.PrmEncounterID)
	if encounterID != "" {
		if _, err := h.data.Encounters.AttachJob(tenant, encounterID, job.ID); err != nil {
			if errs.KindOf(err) == errs.NotFound {
				http.Error(w, "Encounter not found", http.StatusNotFound)
				cmdapp.Log.Error(err)
				return
			}
			writeError(w, err)
			return
		}
	} else {
		enc, err := h.data.Encounters.Create(tenant, r.FormValue(api.PrmClinicianID),
			r.FormValue(api.PrmPatientID), handler.Filename)
		if err != nil {
			writeError(w, err)
			return
		}
		if _, err := h.data.Encounters.AttachJob(tenant, enc.ID, job.ID); err != nil {
			writeError(w, err)
			return
		}
		encounterID = enc.ID
	}

	h.data.Audit.Log(audit.Event{Action: "upload_audio", ResourceType: "transcription_job",
		ResourceID: job.ID, Subject: subjectFrom(ctx),
		Extra: map[string]interface{}{"session_id": sessionID, "encounter_id": encounterID,
			"size_bytes": size}})

	writeJSON(w, http.StatusCreated, &api.IngestAudioResponse{Job: job, EncounterID: encounterID})
}

func cleanFiles(f *multipart.Form) {
	if f != nil {
		f.RemoveAll()
	}
}
