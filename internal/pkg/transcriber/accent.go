package transcriber

import (
	"strings"
	"sync"

	"github.com/equiscribe/scribego/internal/pkg/cmdapp"
	"github.com/equiscribe/scribego/internal/pkg/domain"
)

//AccentClassifier derives a coarse accent label from language codes and region hints.
//The mapping is heuristic, a learned model can replace it without changing callers.
type AccentClassifier struct {
}

//Classify maps the language code and an optional region hint to an accent label
func (ac *AccentClassifier) Classify(languageCode, region string) domain.AccentLabel {
	code := strings.ToLower(languageCode)
	regionStr := strings.ToLower(region)

	if strings.HasPrefix(code, "en-ke") || strings.HasPrefix(code, "en-ug") ||
		strings.HasPrefix(code, "en-tz") {
		return domain.AccentEastAfricanEnglish
	}
	if strings.HasPrefix(code, "en-ng") || strings.HasPrefix(code, "en-gh") {
		return domain.AccentWestAfricanEnglish
	}
	if strings.Contains(regionStr, "aae") || strings.Contains(regionStr, "african_american") {
		return domain.AccentAfricanAmericanEnglish
	}
	if strings.HasPrefix(code, "en-jm") || strings.Contains(regionStr, "caribbean") {
		return domain.AccentCaribbeanEnglish
	}
	if strings.Contains(regionStr, "arab") {
		return domain.AccentArabEnglish
	}
	if strings.HasPrefix(code, "en-in") || strings.Contains(regionStr, "india") {
		return domain.AccentIndianEnglish
	}
	if code == "nv" || code == "nv-us" || code == "cr" || code == "mi" ||
		strings.Contains(regionStr, "indigenous") {
		return domain.AccentIndigenousLanguage
	}
	return domain.AccentUnknown
}

//MultiAccentTranscriber wraps a transcriber and records the accent label of the
//last request for diagnostics. The label does not change the transcription result.
type MultiAccentTranscriber struct {
	base       Transcriber
	classifier *AccentClassifier

	lock       sync.Mutex
	lastAccent domain.AccentLabel
}

//NewMultiAccentTranscriber wraps the base transcriber
func NewMultiAccentTranscriber(base Transcriber) *MultiAccentTranscriber {
	return &MultiAccentTranscriber{base: base, classifier: &AccentClassifier{},
		lastAccent: domain.AccentUnknown}
}

// Transcribe classifies the accent and delegates to the base transcriber
func (t *MultiAccentTranscriber) Transcribe(audioPath, languageCode string) (string, error) {
	accent := t.classifier.Classify(languageCode, "")
	t.lock.Lock()
	t.lastAccent = accent
	t.lock.Unlock()
	cmdapp.Log.Debugf("Accent: %s", accent)
	return t.base.Transcribe(audioPath, languageCode)
}

//LastAccent returns the accent label of the most recent request
func (t *MultiAccentTranscriber) LastAccent() domain.AccentLabel {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.lastAccent
}
