package clean

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

// AudioPathProvider returns the stored audio path of a job
type AudioPathProvider interface {
	AudioPath(ID string) (string, error)
}

type audioFile struct {
	provider    AudioPathProvider
	storagePath string
}

func newAudioFile(provider AudioPathProvider, storagePath string) (*audioFile, error) {
	if provider == nil {
		return nil, errors.New("No audio path provider")
	}
	if storagePath == "" {
		return nil, errors.New("No storage path provided")
	}
	sp, err := filepath.Abs(storagePath)
	if err != nil {
		return nil, errors.Wrap(err, "Wrong storage path "+storagePath)
	}
	cmdapp.Log.Infof("Init audio file clean at: %s", sp)
	return &audioFile{provider: provider, storagePath: sp}, nil
}

// Clean removes the audio file of the job from the storage folder.
// Jobs submitted by URL keep audio outside the storage folder, those files stay
func (fs *audioFile) Clean(ID string) error {
	fp, err := fs.provider.AudioPath(ID)
	if err != nil {
		return errors.Wrap(err, "Can't get audio path for "+ID)
	}
	if fp == "" {
		cmdapp.Log.Infof("No audio for %s", ID)
		return nil
	}
	if !fs.inStorage(fp) {
		cmdapp.Log.Infof("Audio of %s is not in storage, skipping", ID)
		return nil
	}
	cmdapp.Log.Infof("Removing %s", fp)
	err = os.Remove(fp)
	if os.IsNotExist(err) {
		cmdapp.Log.Infof("Already removed %s", fp)
		return nil
	}
	return err
}

func (fs *audioFile) inStorage(fp string) bool {
	ap, err := filepath.Abs(fp)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(fs.storagePath, ap)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
