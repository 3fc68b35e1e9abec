package clean

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/facebookgo/grace/gracehttp"
	"github.com/gorilla/mux"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cleaner deletes all data of one job by ID
type Cleaner interface {
	Clean(ID string) error
}

type serviceMetric struct {
	responseDur prometheus.ObserverVec
}

// ServiceData keeps data required for service work
type ServiceData struct {
	Port    int
	health  healthcheck.Handler
	cleaner Cleaner
	metrics serviceMetric
}

// StartWebServer starts the HTTP service and listens for the requests
func StartWebServer(data *ServiceData) error {
	cmdapp.Log.Infof("Starting HTTP service at %d", data.Port)
	r := NewRouter(data)

	portStr := strconv.Itoa(data.Port)
	srv := http.Server{
		Addr:              ":" + portStr,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		Handler:           r,
	}

	w := cmdapp.Log.Writer()
	defer w.Close()
	l := log.New(w, "", 0)
	gracehttp.SetLogger(l)

	return gracehttp.Serve(&srv)
}

// NewRouter creates the router for HTTP service
func NewRouter(data *ServiceData) *mux.Router {
	router := mux.NewRouter()
	eh := promhttp.InstrumentHandlerDuration(data.metrics.responseDur, &eraseHandler{data: data})
	router.Methods("DELETE").Path("/{id}").Handler(eh)
	router.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	if data.health != nil {
		router.Methods("GET").Path("/live").HandlerFunc(data.health.LiveEndpoint)
		router.Methods("GET").Path("/ready").HandlerFunc(data.health.ReadyEndpoint)
	}
	return router
}

type eraseResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type eraseHandler struct {
	data *ServiceData
}

func (h *eraseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cmdapp.Log.Infof("Erase request from %s", r.RemoteAddr)

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "No ID", http.StatusBadRequest)
		cmdapp.Log.Errorf("No ID")
		return
	}
	cmdapp.Log.Infof("Erasing job %s", id)
	err := h.data.cleaner.Clean(id)
	if err != nil {
		http.Error(w, "Erase failed", http.StatusInternalServerError)
		cmdapp.Log.Error(err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(eraseResponse{ID: id, Deleted: true}); err != nil {
		cmdapp.Log.Error(err)
	}
}
