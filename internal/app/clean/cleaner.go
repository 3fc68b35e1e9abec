package clean

import (
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/mongo"
	"github.com/pkg/errors"
)

type cleanerImpl struct {
	jobs []Cleaner
}

//audio removal goes first, it needs the job record for the path lookup
func newCleanerImpl(provider *mongo.SessionProvider, fileStorage string) (*cleanerImpl, error) {
	c := cleanerImpl{}
	c.jobs = make([]Cleaner, 0)
	audioProvider, err := mongo.NewJobAudioProvider(provider)
	if err != nil {
		return nil, err
	}
	af, err := newAudioFile(audioProvider, fileStorage)
	if err != nil {
		return nil, err
	}
	c.jobs = append(c.jobs, af)
	for _, cl := range mongo.NewCleanRecords(provider) {
		c.jobs = append(c.jobs, cl)
	}
	for _, cl := range mongo.NewJobRefCleaners(provider) {
		c.jobs = append(c.jobs, cl)
	}
	return &c, nil
}

func (c *cleanerImpl) Clean(ID string) error {
	failed := 0
	for _, job := range c.jobs {
		err := job.Clean(ID)
		if err != nil {
			cmdapp.Log.Error(err)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d delete tasks failed", failed, len(c.jobs))
	}
	return nil
}
