package clean

import (
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/metrics"
	"github.com/equiscribe/scribego/internal/pkg/mongo"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var appName = "EquiScribe Data Retention Service"

var rootCmd = &cobra.Command{
	Use:   "cleanService",
	Short: appName,
	Long:  `Service to delete job data on request and to sweep expired jobs`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	rootCmd.PersistentFlags().Int32P("port", "", 8000, "Default service port")
	cmdapp.Config.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	cmdapp.Config.SetDefault("port", 8080)
	cmdapp.Config.SetDefault("fileStorage.path", "/data/audio.in/")
	cmdapp.Config.SetDefault("retention.runEvery", "1h")
}

//Execute starts the server
func Execute() {
	cmdapp.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting " + appName)

	data := &ServiceData{}
	err := initMetrics(data)
	cmdapp.CheckOrPanic(err, "Can't init metrics")

	data.health = healthcheck.NewHandler()
	data.Port = cmdapp.Config.GetInt("port")

	mongoSessionProvider, err := mongo.NewSessionProvider()
	cmdapp.CheckOrPanic(err, "Can't init mongo")
	defer mongoSessionProvider.Close()
	data.health.AddLivenessCheck("mongo", healthcheck.Async(mongoSessionProvider.Healthy,
		10*time.Second))

	data.cleaner, err = newCleanerImpl(mongoSessionProvider,
		cmdapp.Config.GetString("fileStorage.path"))
	cmdapp.CheckOrPanic(err, "Can't init cleaner")

	expire := cmdapp.Config.GetDuration("retention.expire")
	if expire > 0 {
		idsProvider, err := mongo.NewCleanIDsProvider(mongoSessionProvider, expire)
		cmdapp.CheckOrPanic(err, "Can't init IDs provider")
		timerData := &timerServiceData{runEvery: cmdapp.Config.GetDuration("retention.runEvery"),
			cleaner: data.cleaner, idsProvider: idsProvider,
			qChan: make(chan struct{}), workWaitChan: make(chan struct{})}
		err = startCleanTimer(timerData)
		cmdapp.CheckOrPanic(err, "Can't start retention timer")
	} else {
		cmdapp.Log.Info("No retention.expire set, retention timer disabled")
	}

	err = StartWebServer(data)
	cmdapp.CheckOrPanic(err, "")
}

func initMetrics(data *ServiceData) error {
	namespace := "clean_service"
	data.metrics.responseDur = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_durations_seconds",
		Help:      "Request latency distributions.",
	}, nil)
	return metrics.Register(data.metrics.responseDur)
}
