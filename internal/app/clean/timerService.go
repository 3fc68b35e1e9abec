package clean

import (
	"time"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
)

//OldIDsProvider returns expired job IDs for the retention sweep
type OldIDsProvider interface {
	Get() ([]string, error)
}

type timerServiceData struct {
	runEvery     time.Duration
	cleaner      Cleaner
	idsProvider  OldIDsProvider
	qChan        chan struct{}
	workWaitChan chan struct{}
}

func startCleanTimer(data *timerServiceData) error {
	cmdapp.Log.Infof("Starting retention timer every %v", data.runEvery)
	go serviceLoop(data)
	return nil
}

func serviceLoop(data *timerServiceData) {
	ticker := time.NewTicker(data.runEvery)
	// run on startup
	doSweep(data)
mainloop:
	for {
		select {
		case <-ticker.C:
			doSweep(data)
		case <-data.qChan:
			ticker.Stop()
			break mainloop
		}
	}
	cmdapp.Log.Infof("Stopped retention timer")
	close(data.workWaitChan)
}

func doSweep(data *timerServiceData) {
	cmdapp.Log.Info("Running retention sweep")
	ids, err := data.idsProvider.Get()
	if err != nil {
		cmdapp.Log.Error(err)
	}
	erased, failed := 0, 0
	for _, id := range ids {
		err = data.cleaner.Clean(id)
		if err != nil {
			cmdapp.Log.Error(err)
			failed++
			continue
		}
		erased++
	}
	cmdapp.Log.Infof("Retention sweep done: %d expired, %d erased, %d failed",
		len(ids), erased, failed)
}
