package transcriber

import (
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/errs"
)

//Transcriber converts a stored audio file to text
type Transcriber interface {
	Transcribe(audioPath, languageCode string) (string, error)
}

//Translator converts text between languages
type Translator interface {
	Translate(text, sourceLanguage, targetLanguage string) (string, error)
}

//NewTranscriber creates a transcriber selected by the backend.asr setting
func NewTranscriber() (Transcriber, error) {
	name := strings.ToLower(cmdapp.Config.GetString("backend.asr"))
	switch name {
	case "", "demo":
		return NewDemoTranscriber(), nil
	case "http":
		return NewHTTPTranscriber()
	}
	return nil, errs.Errorf(errs.Configuration, "Unknown ASR backend '%s'", name)
}

//NewTranslator creates a translator selected by the backend.translate setting
func NewTranslator() (Translator, error) {
	name := strings.ToLower(cmdapp.Config.GetString("backend.translate"))
	switch name {
	case "", "demo":
		return NewDemoTranslator(), nil
	case "http":
		return NewHTTPTranslator()
	case "cloud":
		return NewCloudTranslator()
	}
	return nil, errs.Errorf(errs.Configuration, "Unknown translation backend '%s'", name)
}

type backoffProvider interface {
	Get() backoff.BackOff
}

type expBackOffProvider struct {
}

func (bp *expBackOffProvider) Get() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     backoff.DefaultInitialInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         backoff.DefaultMaxInterval,
		MaxElapsedTime:      45 * time.Second,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return b
}
