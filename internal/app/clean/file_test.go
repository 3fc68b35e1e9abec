package clean

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/test/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var pathProviderMock *mocks.AudioPathProvider

func initFileTest(t *testing.T) {
	t.Helper()
	pathProviderMock = &mocks.AudioPathProvider{}
}

func TestFailsInit_NoProvider(t *testing.T) {
	f, err := newAudioFile(nil, "/path")
	assert.Nil(t, f)
	assert.NotNil(t, err)
}

func TestFailsInit_NoStoragePath(t *testing.T) {
	initFileTest(t)
	f, err := newAudioFile(pathProviderMock, "")
	assert.Nil(t, f)
	assert.NotNil(t, err)
}

func TestInit(t *testing.T) {
	initFileTest(t)
	f, err := newAudioFile(pathProviderMock, "/path")
	assert.Nil(t, err)
	assert.NotNil(t, f)
	assert.Equal(t, "/path", f.storagePath)
}

func TestFileClean(t *testing.T) {
	initFileTest(t)
	dir := t.TempDir()
	fp := filepath.Join(dir, "a.wav")
	assert.Nil(t, os.WriteFile(fp, []byte("olia"), 0644))
	pathProviderMock.On("AudioPath", "1").Return(fp, nil)
	f, _ := newAudioFile(pathProviderMock, dir)

	assert.Nil(t, f.Clean("1"))

	_, err := os.Stat(fp)
	assert.True(t, os.IsNotExist(err))
}

func TestFileClean_NoAudio(t *testing.T) {
	initFileTest(t)
	pathProviderMock.On("AudioPath", "1").Return("", nil)
	f, _ := newAudioFile(pathProviderMock, t.TempDir())

	assert.Nil(t, f.Clean("1"))
}

func TestFileClean_SkipsOutsideStorage(t *testing.T) {
	initFileTest(t)
	outDir := t.TempDir()
	fp := filepath.Join(outDir, "a.wav")
	assert.Nil(t, os.WriteFile(fp, []byte("olia"), 0644))
	pathProviderMock.On("AudioPath", "1").Return(fp, nil)
	f, _ := newAudioFile(pathProviderMock, t.TempDir())

	assert.Nil(t, f.Clean("1"))

	_, err := os.Stat(fp)
	assert.Nil(t, err)
}

func TestFileClean_AlreadyRemoved(t *testing.T) {
	initFileTest(t)
	dir := t.TempDir()
	pathProviderMock.On("AudioPath", "1").Return(filepath.Join(dir, "a.wav"), nil)
	f, _ := newAudioFile(pathProviderMock, dir)

	assert.Nil(t, f.Clean("1"))
}

func TestFileClean_ProviderFails(t *testing.T) {
	initFileTest(t)
	pathProviderMock.On("AudioPath", "1").Return("", errors.New("olia"))
	f, _ := newAudioFile(pathProviderMock, t.TempDir())

	assert.NotNil(t, f.Clean("1"))
}
