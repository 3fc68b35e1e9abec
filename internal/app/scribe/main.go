package scribe

import (
	"strings"
	"time"

	"github.com/equiscribe/scribego/internal/pkg/audit"
	"github.com/equiscribe/scribego/internal/pkg/encounter"
	"github.com/equiscribe/scribego/internal/pkg/export"
	"github.com/equiscribe/scribego/internal/pkg/metrics"
	"github.com/equiscribe/scribego/internal/pkg/mongo"
	"github.com/equiscribe/scribego/internal/pkg/nlp"
	"github.com/equiscribe/scribego/internal/pkg/orchestrator"
	"github.com/equiscribe/scribego/internal/pkg/persistence"
	"github.com/equiscribe/scribego/internal/pkg/rabbit"
	"github.com/equiscribe/scribego/internal/pkg/session"
	"github.com/equiscribe/scribego/internal/pkg/transcriber"
	"github.com/equiscribe/scribego/internal/pkg/users"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/saver"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scribeService",
	Short: "EquiScribe Clinical Scribe Service",
	Long:  `HTTP server to ingest encounter audio, transcribe it and draft clinical notes`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	rootCmd.PersistentFlags().Int32P("port", "", 8000, "Default service port")
	cmdapp.Config.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	cmdapp.Config.SetDefault("port", 8080)
	cmdapp.Config.SetDefault("fileStorage.path", "/data/audio.in/")
	cmdapp.Config.SetDefault("upload.maxBytes", 10485760)
	cmdapp.Config.SetDefault("stream.maxBytes", 10485760)
}

//Execute starts the server
func Execute() {
	cmdapp.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting scribeService")
	data := &ServiceData{}
	err := initMetrics(data)
	cmdapp.CheckOrPanic(err, "Can't init metrics")

	data.health = healthcheck.NewHandler()

	fs, err := saver.NewLocalAudioStore(cmdapp.Config.GetString("fileStorage.path"))
	cmdapp.CheckOrPanic(err, "Can't init audio storage")
	data.AudioStore = fs
	data.health.AddLivenessCheck("fs", fs.HealthyFunc())

	var jobs persistence.Jobs
	var encounters persistence.Encounters
	var notes persistence.Notes
	var sessions persistence.Sessions
	var userStore persistence.Users
	if cmdapp.Config.GetString("mongo.url") != "" {
		mongoSessionProvider, err := mongo.NewSessionProvider()
		cmdapp.CheckOrPanic(err, "Can't init mongo")
		defer mongoSessionProvider.Close()
		data.health.AddLivenessCheck("mongo", healthcheck.Async(mongoSessionProvider.Healthy, 10*time.Second))

		jobs, err = mongo.NewJobStore(mongoSessionProvider)
		cmdapp.CheckOrPanic(err, "Can't init job store")
		encounters, err = mongo.NewEncounterStore(mongoSessionProvider)
		cmdapp.CheckOrPanic(err, "Can't init encounter store")
		notes, err = mongo.NewNoteStore(mongoSessionProvider)
		cmdapp.CheckOrPanic(err, "Can't init note store")
		sessions, err = mongo.NewSessionStore(mongoSessionProvider)
		cmdapp.CheckOrPanic(err, "Can't init session store")
		userStore, err = mongo.NewUserStore(mongoSessionProvider)
		cmdapp.CheckOrPanic(err, "Can't init user store")
	} else {
		cmdapp.Log.Info("No mongo URL provided, using in-memory stores")
		jobs = persistence.NewInMemJobs()
		encounters = persistence.NewInMemEncounters()
		notes = persistence.NewInMemNotes()
		sessions = persistence.NewInMemSessions()
		userStore = persistence.NewInMemUsers()
	}

	if cmdapp.Config.GetString("messageServer.url") != "" {
		msgChannelProvider, err := rabbit.NewChannelProvider()
		cmdapp.CheckOrPanic(err, "Can't init rabbit channel")
		defer msgChannelProvider.Close()
		data.health.AddLivenessCheck("rabbit", healthcheck.Async(msgChannelProvider.Healthy, 10*time.Second))
		data.Audit = audit.NewService(rabbit.NewSender(msgChannelProvider))
	} else {
		cmdapp.Log.Info("No message server provided, audit events go to log only")
		data.Audit = audit.NewService(nil)
	}

	asr, err := transcriber.NewTranscriber()
	cmdapp.CheckOrPanic(err, "Can't init transcriber")
	accented := transcriber.NewMultiAccentTranscriber(asr)
	translator, err := transcriber.NewTranslator()
	cmdapp.CheckOrPanic(err, "Can't init translator")
	data.Transcriptions, err = orchestrator.NewService(jobs, accented, translator)
	cmdapp.CheckOrPanic(err, "Can't init transcription service")
	data.StreamASR = accented

	rules, err := nlp.NewRules()
	cmdapp.CheckOrPanic(err, "Can't init terminology rules")
	cultural, err := nlp.NewCulturalNormalizer(rules)
	cmdapp.CheckOrPanic(err, "Can't init cultural normalizer")
	indigenous, err := nlp.NewIndigenousNormalizer(rules)
	cmdapp.CheckOrPanic(err, "Can't init indigenous normalizer")
	extractor, err := nlp.NewExtractor()
	cmdapp.CheckOrPanic(err, "Can't init entity extractor")
	coder, err := nlp.NewCoder()
	cmdapp.CheckOrPanic(err, "Can't init medical coder")
	soap, err := nlp.NewSOAPGenerator()
	cmdapp.CheckOrPanic(err, "Can't init SOAP generator")
	data.NLP, err = nlp.NewService(extractor, coder, soap, cultural, indigenous)
	cmdapp.CheckOrPanic(err, "Can't init NLP service")
	data.Coding = nlp.NewCodingOrchestrator()
	data.Decision = nlp.NewDecisionSupport()
	data.CulturalRisk = nlp.NewCulturalRiskEngine()
	data.IndigenousRisk = nlp.NewIndigenousRiskEngine()
	data.Guard = nlp.NewSafetyGuard()
	data.Bias, err = nlp.NewBiasAuditor(data.Audit)
	cmdapp.CheckOrPanic(err, "Can't init bias auditor")

	data.Encounters, err = encounter.NewService(encounters, notes, jobs)
	cmdapp.CheckOrPanic(err, "Can't init encounter service")
	data.Sessions, err = session.NewService(sessions, jobs)
	cmdapp.CheckOrPanic(err, "Can't init session service")
	data.Users, err = users.NewService(userStore)
	cmdapp.CheckOrPanic(err, "Can't init user service")
	data.Exporter = export.NewFHIRExporter()

	data.AuthEnabled = cmdapp.Config.GetBool("auth.enabled")
	data.APIKeys = parseKeys(cmdapp.Config.GetString("auth.keys"))
	data.UploadLimit = cmdapp.Config.GetInt64("upload.maxBytes")
	data.StreamLimit = cmdapp.Config.GetInt64("stream.maxBytes")
	data.Port = cmdapp.Config.GetInt("port")

	err = StartWebServer(data)
	cmdapp.CheckOrPanic(err, "Can't start web server")
}

func parseKeys(s string) []string {
	var res []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			res = append(res, k)
		}
	}
	return res
}

func initMetrics(data *ServiceData) error {
	namespace := "scribe_service"
	data.metrics.uploadResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_request_durations_seconds",
			Help:      "Upload request latency distributions.",
		}, nil)

	err := metrics.Register(data.metrics.uploadResponseDur)
	if err != nil {
		return err
	}
	data.metrics.uploadRequestSize = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      "upload_request_size_bytes",
			Help:      "Upload request size in bytes."}, nil)
	err = metrics.Register(data.metrics.uploadRequestSize)
	if err != nil {
		return err
	}
	data.metrics.jobResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_request_durations_seconds",
			Help:      "Transcription job request latency distributions.",
		}, nil)

	err = metrics.Register(data.metrics.jobResponseDur)
	if err != nil {
		return err
	}
	data.metrics.analysisResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_request_durations_seconds",
			Help:      "NLP analysis request latency distributions.",
		}, nil)

	err = metrics.Register(data.metrics.analysisResponseDur)
	if err != nil {
		return err
	}
	data.metrics.sessionResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_request_durations_seconds",
			Help:      "Session request latency distributions.",
		}, nil)

	err = metrics.Register(data.metrics.sessionResponseDur)
	if err != nil {
		return err
	}
	data.metrics.encounterResponseDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encounter_request_durations_seconds",
			Help:      "Encounter request latency distributions.",
		}, nil)
	return metrics.Register(data.metrics.encounterResponseDur)
}
