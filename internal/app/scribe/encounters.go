package scribe

import (
	"net/http"
	"strings"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/encounter"
	"github.com/equiscribe/scribego/internal/pkg/status"
	"github.com/equiscribe/scribego/internal/pkg/tenancy"
	"github.com/gorilla/mux"
)

//canAccess tells if the user may work with the encounter.
//Admins reach every tenant encounter, clinicians only their own
func canAccess(user *domain.User, enc *domain.Encounter) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return enc.ClinicianID != "" && enc.ClinicianID == user.ID
}

//loadEncounter fetches the tenant encounter checking the caller may work
//with it. A denied encounter is reported exactly as a missing one
func loadEncounter(data *ServiceData, w http.ResponseWriter, r *http.Request) (*domain.Encounter, bool) {
	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return nil, false
	}
	ctx := r.Context()
	enc, err := data.Encounters.Get(tenancy.FromContext(ctx), id)
	if err != nil {
		http.Error(w, "Encounter not found", http.StatusNotFound)
		cmdapp.Log.Error(err)
		return nil, false
	}
	if !canAccess(userFrom(ctx), enc) {
		http.Error(w, "Encounter not found", http.StatusNotFound)
		cmdapp.Log.Errorf("Access to encounter %s denied", id)
		return nil, false
	}
	return enc, true
}

func userExtra(user *domain.User) map[string]interface{} {
	return map[string]interface{}{"user_id": user.ID, "role": string(user.Role)}
}

type createEncounterHandler struct {
	data *ServiceData
}

func (h createEncounterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Encounter create request from %s", r.Host)
	var input api.EncounterCreateRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	ctx := r.Context()
	user := userFrom(ctx)
	enc, err := h.data.Encounters.Create(tenancy.FromContext(ctx), user.ID, input.PatientID,
		input.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "create_encounter", ResourceType: "clinical_encounter",
		ResourceID: enc.ID, Subject: subjectFrom(ctx), Extra: userExtra(user)})
	writeJSON(w, http.StatusCreated, enc)
}

type encounterDetailHandler struct {
	data *ServiceData
}

func (h encounterDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc, ok := loadEncounter(h.data, w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	jobs, err := h.data.Encounters.Jobs(tenant, enc)
	if err != nil {
		writeError(w, err)
		return
	}
	note, err := h.data.Encounters.GetNote(tenant, enc.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "get_encounter", ResourceType: "clinical_encounter",
		ResourceID: enc.ID, Subject: subjectFrom(ctx), Extra: userExtra(userFrom(ctx))})
	writeJSON(w, http.StatusOK, &api.EncounterDetailResponse{Encounter: enc, Jobs: jobs, Note: note})
}

type listEncountersHandler struct {
	data *ServiceData
}

func (h listEncountersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFrom(ctx)
	filter := encounter.Filter{PatientID: r.URL.Query().Get(api.PrmPatientID),
		Status: status.EncounterFrom(r.URL.Query().Get(api.PrmStatus))}
	if !user.IsAdmin() {
		filter.ClinicianID = user.ID
	}
	encs, err := h.data.Encounters.List(tenancy.FromContext(ctx), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	res := make([]api.EncounterSummary, 0, len(encs))
	for _, enc := range encs {
		res = append(res, api.EncounterSummary{ID: enc.ID, CreatedAt: enc.CreatedAt,
			ClinicianID: enc.ClinicianID, PatientID: enc.PatientID, Status: enc.Status,
			Title: enc.Title})
	}
	extra := userExtra(user)
	extra["count"] = len(res)
	h.data.Audit.Log(audit.Event{Action: "list_encounters", ResourceType: "clinical_encounter",
		Subject: subjectFrom(ctx), Extra: extra})
	writeJSON(w, http.StatusOK, res)
}

type updateEncounterNoteHandler struct {
	data *ServiceData
}

func (h updateEncounterNoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc, ok := loadEncounter(h.data, w, r)
	if !ok {
		return
	}
	var input api.EncounterNoteUpdateRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	ctx := r.Context()
	user := userFrom(ctx)
	note, err := h.data.Encounters.UpsertNote(tenancy.FromContext(ctx), enc.ID,
		encounter.NoteText{Subjective: input.Subjective, Objective: input.Objective,
			Assessment: input.Assessment, Plan: input.Plan}, user.ID, input.Finalize)
	if err != nil {
		writeError(w, err)
		return
	}
	extra := userExtra(user)
	extra["finalize"] = input.Finalize
	h.data.Audit.Log(audit.Event{Action: "update_encounter_note", ResourceType: "clinical_encounter",
		ResourceID: enc.ID, Subject: subjectFrom(ctx), Extra: extra})
	writeJSON(w, http.StatusOK, note)
}

type submitForReviewHandler struct {
	data *ServiceData
}

func (h submitForReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc, ok := loadEncounter(h.data, w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	updated, err := h.data.Encounters.SubmitForReview(tenancy.FromContext(ctx), enc.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	extra := userExtra(userFrom(ctx))
	extra["status"] = updated.Status.String()
	h.data.Audit.Log(audit.Event{Action: "submit_encounter_for_review",
		ResourceType: "clinical_encounter", ResourceID: enc.ID, Subject: subjectFrom(ctx),
		Extra: extra})
	writeJSON(w, http.StatusOK, updated)
}

type finalizeEncounterHandler struct {
	data *ServiceData
}

func (h finalizeEncounterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc, ok := loadEncounter(h.data, w, r)
	if !ok {
		return
	}
	var input api.EncounterFinalizeRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	ctx := r.Context()
	user := userFrom(ctx)
	note, err := h.data.Encounters.Finalize(tenancy.FromContext(ctx), enc.ID, user.ID,
		input.ReviewComment)
	if err != nil {
		writeError(w, err)
		return
	}
	h.data.Audit.Log(audit.Event{Action: "finalize_encounter", ResourceType: "clinical_encounter",
		ResourceID: enc.ID, Subject: subjectFrom(ctx), Extra: userExtra(user)})
	writeJSON(w, http.StatusOK, note)
}

type decisionSupportHandler struct {
	data *ServiceData
}

func (h decisionSupportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc, ok := loadEncounter(h.data, w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	tenant := tenancy.FromContext(ctx)
	jobs, err := h.data.Encounters.Jobs(tenant, enc)
	if err != nil {
		writeError(w, err)
		return
	}
	var texts []string
	for _, job := range jobs {
		if job.ResultText != "" {
			texts = append(texts, job.ResultText)
		}
	}
	if len(texts) == 0 {
		http.Error(w, "No transcription results available for this encounter", http.StatusConflict)
		cmdapp.Log.Errorf("No results in encounter %s", enc.ID)
		return
	}

	combined := strings.Join(texts, "\n\n")
	entities, note, err := h.data.NLP.Analyze(tenant, combined, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	suggestions := h.data.Decision.Suggest(entities, &note)
	suggestions = append(suggestions, h.data.CulturalRisk.Assess(entities, &note, nil)...)
	suggestions = append(suggestions, h.data.IndigenousRisk.Assess(entities, &note, nil)...)
	suggestions = h.data.Guard.Review(suggestions, &note)
	h.data.Bias.Audit(suggestions)
	if suggestions == nil {
		suggestions = []domain.DecisionSupportSuggestion{}
	}

	extra := userExtra(userFrom(ctx))
	extra["suggestion_count"] = len(suggestions)
	h.data.Audit.Log(audit.Event{Action: "encounter_decision_support",
		ResourceType: "clinical_encounter", ResourceID: enc.ID, Subject: subjectFrom(ctx),
		Extra: extra})

	writeJSON(w, http.StatusOK, &api.EncounterDecisionSupportResponse{Suggestions: suggestions})
}

type regulatedDecisionSupportHandler struct {
	data *ServiceData
}

//regulated CDS is not active yet, the endpoint reports it disabled
func (h regulatedDecisionSupportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	enc, ok := loadEncounter(h.data, w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	extra := userExtra(userFrom(ctx))
	extra["enabled"] = false
	h.data.Audit.Log(audit.Event{Action: "encounter_decision_support_regulated",
		ResourceType: "clinical_encounter", ResourceID: enc.ID, Subject: subjectFrom(ctx),
		Extra: extra})
	writeJSON(w, http.StatusOK, &api.EncounterRegulatedDecisionSupportResponse{Enabled: false,
		Suggestions: []domain.DecisionSupportSuggestion{}})
}
