package scribe

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/equiscribe/scribego/internal/app/scribe/api"
	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/equiscribe/scribego/internal/pkg/encounter"
	"github.com/equiscribe/scribego/internal/pkg/errs"
	"github.com/equiscribe/scribego/internal/pkg/export"
	"github.com/equiscribe/scribego/internal/pkg/nlp"
	"github.com/equiscribe/scribego/internal/pkg/orchestrator"
	"github.com/equiscribe/scribego/internal/pkg/saver"
	"github.com/equiscribe/scribego/internal/pkg/session"
	"github.com/equiscribe/scribego/internal/pkg/tenancy"
	"github.com/equiscribe/scribego/internal/pkg/transcriber"
	"github.com/equiscribe/scribego/internal/pkg/users"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/gorilla/mux"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//KeyHeader is the HTTP header carrying the caller API key
const KeyHeader = "X-API-Key"

type serviceMetric struct {
	uploadResponseDur prometheus.ObserverVec
	uploadRequestSize prometheus.ObserverVec

	jobResponseDur       prometheus.ObserverVec
	analysisResponseDur  prometheus.ObserverVec
	sessionResponseDur   prometheus.ObserverVec
	encounterResponseDur prometheus.ObserverVec
}

// ServiceData keeps data required for service work
type ServiceData struct {
	Transcriptions *orchestrator.Service
	NLP            *nlp.Service
	Coding         *nlp.CodingOrchestrator
	Decision       *nlp.DecisionSupport
	CulturalRisk   *nlp.CulturalRiskEngine
	IndigenousRisk *nlp.IndigenousRiskEngine
	Guard          *nlp.SafetyGuard
	Bias           *nlp.BiasAuditor
	Encounters     *encounter.Service
	Sessions       *session.Service
	Users          *users.Service
	AudioStore     *saver.LocalAudioStore
	Audit          audit.Logger
	Exporter       *export.FHIRExporter
	StreamASR      transcriber.Transcriber

	AuthEnabled bool
	APIKeys     []string
	UploadLimit int64
	StreamLimit int64

	Port    int
	health  healthcheck.Handler
	metrics serviceMetric
}

//StartWebServer starts the HTTP service and listens for the requests
func StartWebServer(data *ServiceData) error {
	cmdapp.Log.Infof("Starting HTTP service at %d", data.Port)
	r := NewRouter(data)

	portStr := strconv.Itoa(data.Port)
	srv := http.Server{
		Addr:              ":" + portStr,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       180 * time.Second,
		Handler:           r,
	}

	w := cmdapp.Log.Writer()
	defer w.Close()
	l := log.New(w, "", 0)
	gracehttp.SetLogger(l)

	return gracehttp.Serve(&srv)
}

//NewRouter creates the router for HTTP service
func NewRouter(data *ServiceData) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	v1 := router.PathPrefix("/api/v1").Subrouter()

	uh := promhttp.InstrumentHandlerDuration(data.metrics.uploadResponseDur,
		promhttp.InstrumentHandlerRequestSize(data.metrics.uploadRequestSize,
			authHandler{data: data, next: uploadHandler{data: data}}))
	v1.Methods("POST").Path("/audio/upload").Handler(uh)
	v1.Handle("/audio/ws", authHandler{data: data, next: streamHandler{data: data}})

	jh := func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerDuration(data.metrics.jobResponseDur,
			authHandler{data: data, next: next})
	}
	v1.Methods("POST").Path("/transcriptions").Handler(jh(createTranscriptionHandler{data: data}))
	v1.Methods("GET").Path("/transcriptions").Handler(jh(listTranscriptionsHandler{data: data}))
	v1.Methods("POST").Path("/transcriptions/async").Handler(jh(createAsyncTranscriptionHandler{data: data}))
	v1.Methods("GET").Path("/transcriptions/{id}").Handler(jh(getTranscriptionHandler{data: data}))

	ah := func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerDuration(data.metrics.analysisResponseDur,
			authHandler{data: data, next: next})
	}
	v1.Methods("POST").Path("/transcriptions/{id}/analyze").Handler(ah(analyzeTranscriptionHandler{data: data}))
	v1.Methods("POST").Path("/transcriptions/{id}/export/fhir").Handler(ah(exportFHIRHandler{data: data}))
	v1.Methods("POST").Path("/nlp/analyze").Handler(ah(analyzeTranscriptHandler{data: data}))

	sh := func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerDuration(data.metrics.sessionResponseDur,
			authHandler{data: data, next: next})
	}
	v1.Methods("POST").Path("/sessions").Handler(sh(createSessionHandler{data: data}))
	v1.Methods("GET").Path("/sessions/{id}").Handler(sh(getSessionHandler{data: data}))
	v1.Methods("POST").Path("/sessions/{id}/transcriptions").Handler(sh(attachTranscriptionHandler{data: data}))
	v1.Methods("POST").Path("/sessions/{id}/analyze").Handler(sh(analyzeSessionHandler{data: data}))

	eh := func(next http.Handler) http.Handler {
		return promhttp.InstrumentHandlerDuration(data.metrics.encounterResponseDur,
			authHandler{data: data, next: next})
	}
	v1.Methods("POST").Path("/encounters").Handler(eh(createEncounterHandler{data: data}))
	v1.Methods("GET").Path("/encounters").Handler(eh(listEncountersHandler{data: data}))
	v1.Methods("GET").Path("/encounters/{id}").Handler(eh(encounterDetailHandler{data: data}))
	v1.Methods("PUT").Path("/encounters/{id}/note").Handler(eh(updateEncounterNoteHandler{data: data}))
	v1.Methods("POST").Path("/encounters/{id}/submit-for-review").Handler(eh(submitForReviewHandler{data: data}))
	v1.Methods("POST").Path("/encounters/{id}/finalize").Handler(eh(finalizeEncounterHandler{data: data}))
	v1.Methods("POST").Path("/encounters/{id}/decision-support").Handler(eh(decisionSupportHandler{data: data}))
	v1.Methods("POST").Path("/encounters/{id}/decision-support/regulated").Handler(eh(regulatedDecisionSupportHandler{data: data}))

	router.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	if data.health != nil {
		router.Methods("GET").Path("/live").HandlerFunc(data.health.LiveEndpoint)
		router.Methods("GET").Path("/ready").HandlerFunc(data.health.ReadyEndpoint)
	}
	return router
}

type ctxKey int

const (
	userKey ctxKey = iota
	subjectKey
)

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func userFrom(ctx context.Context) *domain.User {
	if u, ok := ctx.Value(userKey).(*domain.User); ok {
		return u
	}
	return nil
}

func withSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

func subjectFrom(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey).(string); ok {
		return s
	}
	return ""
}

//authHandler authenticates the caller, resolves the tenant and the user
//and passes them down in the request context
type authHandler struct {
	data *ServiceData
	next http.Handler
}

func (h authHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subject, err := checkAPIKey(h.data, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		cmdapp.Log.Error(err)
		return
	}
	if subject == "" {
		subject = users.AnonymousSubject
	}
	tenant := r.Header.Get(tenancy.Header)
	if tenant == "" {
		tenant = tenancy.Default
	}
	user, err := h.data.Users.Resolve(tenant, subject)
	if err != nil {
		http.Error(w, "Service error", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}
	ctx := tenancy.WithTenant(r.Context(), tenant)
	ctx = withUser(ctx, user)
	ctx = withSubject(ctx, subject)
	h.next.ServeHTTP(w, r.WithContext(ctx))
}

//checkAPIKey validates the caller key and derives a stable subject from it.
//The raw key never leaves this function
func checkAPIKey(data *ServiceData, r *http.Request) (string, error) {
	if !data.AuthEnabled {
		return "", nil
	}
	if len(data.APIKeys) == 0 {
		return "", errs.New(errs.Authorization, "API authentication is enabled but no API keys are configured.")
	}
	key := r.Header.Get(KeyHeader)
	for _, k := range data.APIKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			sum := sha256.Sum256([]byte(key))
			return "api-key:" + hex.EncodeToString(sum[:])[:16], nil
		}
	}
	return "", errs.New(errs.Authorization, "Invalid or missing API key.")
}

//writeError maps a service error to the HTTP response
func writeError(w http.ResponseWriter, err error) {
	cmdapp.Log.Error(err)
	switch errs.KindOf(err) {
	case errs.Validation:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errs.NotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case errs.Conflict:
		http.Error(w, err.Error(), http.StatusConflict)
	case errs.Authorization:
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, "Service error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	encoder := json.NewEncoder(w)
	if err := encoder.Encode(data); err != nil {
		cmdapp.Log.Error(err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(data); err != nil {
		http.Error(w, "Can't decode request", http.StatusBadRequest)
		cmdapp.Log.Error(err)
		return false
	}
	return true
}

//newAnalysisResponse packs pipeline output keeping empty lists explicit
func newAnalysisResponse(entities domain.ClinicalEntities, note domain.SOAPNote,
	codes []domain.CodeAssignment, risk *domain.BillingRiskSummary,
	segments []domain.TranscriptSegment) *api.AnalyzeTranscriptionResponse {
	if codes == nil {
		codes = []domain.CodeAssignment{}
	}
	if segments == nil {
		segments = []domain.TranscriptSegment{}
	}
	return &api.AnalyzeTranscriptionResponse{Entities: entities, SOAPNote: note,
		Codes: codes, BillingRisk: risk, Segments: segments}
}
