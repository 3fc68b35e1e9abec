package saver

import (
	"io"
	"os"
	"path/filepath"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//WriterCloser keeps Writer interface and close function
type WriterCloser interface {
	io.Writer
	Close() error
}

//OpenFileFunc declares function to open file by name with os flags and return Writer
type OpenFileFunc func(fileName string, flag int) (WriterCloser, error)

// LocalAudioStore saves audio files on local disk
type LocalAudioStore struct {
	// StoragePath is the main folder to save into
	StoragePath  string
	OpenFileFunc OpenFileFunc
}

//NewLocalAudioStore creates LocalAudioStore instance and prepares the storage folder
func NewLocalAudioStore(storagePath string) (*LocalAudioStore, error) {
	if storagePath == "" {
		return nil, errors.New("No storage path provided")
	}
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return nil, errors.Wrap(err, "Can't create storage folder "+storagePath)
	}
	f := LocalAudioStore{StoragePath: storagePath, OpenFileFunc: openFile}
	return &f, nil
}

// Save writes a new audio file to disk and returns the saved size
func (fs *LocalAudioStore) Save(name string, reader io.Reader) (int64, error) {
	fileName := fs.Path(name)
	f, err := fs.OpenFileFunc(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return 0, errors.Wrap(err, "Can not create file "+fileName)
	}
	defer f.Close()
	savedBytes, err := io.Copy(f, reader)
	if err != nil {
		return 0, errors.Wrap(err, "Can not save file "+fileName)
	}
	cmdapp.Log.Infof("Saved file %s. Size = %d b", fileName, savedBytes)
	return savedBytes, nil
}

// Append adds a chunk to the end of the audio file, creating it if needed
func (fs *LocalAudioStore) Append(name string, data []byte) error {
	fileName := fs.Path(name)
	f, err := fs.OpenFileFunc(fileName, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
	if err != nil {
		return errors.Wrap(err, "Can not open file "+fileName)
	}
	defer f.Close()
	_, err = f.Write(data)
	if err != nil {
		return errors.Wrap(err, "Can not append to file "+fileName)
	}
	return nil
}

// Remove drops the audio file from disk
func (fs *LocalAudioStore) Remove(name string) error {
	fileName := fs.Path(name)
	err := os.Remove(fileName)
	if err != nil {
		return errors.Wrap(err, "Can not remove file "+fileName)
	}
	cmdapp.Log.Infof("Removed file %s", fileName)
	return nil
}

// Path returns the full on disk path of a stored file
func (fs *LocalAudioStore) Path(name string) string {
	return filepath.Join(fs.StoragePath, name)
}

//HealthyFunc returns a checker testing the storage folder is available
func (fs *LocalAudioStore) HealthyFunc() func() error {
	return func() error {
		info, err := os.Stat(fs.StoragePath)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return errors.New("Not a folder " + fs.StoragePath)
		}
		return nil
	}
}

func openFile(fileName string, flag int) (WriterCloser, error) {
	return os.OpenFile(fileName, flag, 0666)
}
