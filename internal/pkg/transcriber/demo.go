package transcriber

import "fmt"

// DemoTranscriber returns a deterministic placeholder transcript.
// It keeps the service working fast and offline when no speech model is deployed.
type DemoTranscriber struct {
}

//NewDemoTranscriber creates DemoTranscriber instance
func NewDemoTranscriber() *DemoTranscriber {
	return &DemoTranscriber{}
}

// Transcribe makes a placeholder transcript for the audio
func (t *DemoTranscriber) Transcribe(audioPath, languageCode string) (string, error) {
	lang := languageCode
	if lang == "" {
		lang = "unknown-lang"
	}
	return fmt.Sprintf("Demo transcript for %s in %s", audioPath, lang), nil
}

// DemoTranslator wraps the text with a language marker instead of translating
type DemoTranslator struct {
}

//NewDemoTranslator creates DemoTranslator instance
func NewDemoTranslator() *DemoTranslator {
	return &DemoTranslator{}
}

// Translate marks the text with the source and target languages
func (t *DemoTranslator) Translate(text, sourceLanguage, targetLanguage string) (string, error) {
	src := sourceLanguage
	if src == "" {
		src = "unknown-lang"
	}
	return fmt.Sprintf("[%s→%s] %s", src, targetLanguage, text), nil
}
