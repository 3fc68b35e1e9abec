package transcriber

import (
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_ByLanguageCode(t *testing.T) {
	ac := AccentClassifier{}
	assert.Equal(t, domain.AccentEastAfricanEnglish, ac.Classify("en-KE", ""))
	assert.Equal(t, domain.AccentEastAfricanEnglish, ac.Classify("en-ug", ""))
	assert.Equal(t, domain.AccentEastAfricanEnglish, ac.Classify("en-TZ", ""))
	assert.Equal(t, domain.AccentWestAfricanEnglish, ac.Classify("en-NG", ""))
	assert.Equal(t, domain.AccentWestAfricanEnglish, ac.Classify("en-GH", ""))
	assert.Equal(t, domain.AccentCaribbeanEnglish, ac.Classify("en-JM", ""))
	assert.Equal(t, domain.AccentIndianEnglish, ac.Classify("en-IN", ""))
}

func TestClassify_ByRegion(t *testing.T) {
	ac := AccentClassifier{}
	assert.Equal(t, domain.AccentAfricanAmericanEnglish, ac.Classify("en-US", "aae"))
	assert.Equal(t, domain.AccentAfricanAmericanEnglish, ac.Classify("en-US", "african_american"))
	assert.Equal(t, domain.AccentCaribbeanEnglish, ac.Classify("en-US", "caribbean"))
	assert.Equal(t, domain.AccentArabEnglish, ac.Classify("en-US", "arab"))
	assert.Equal(t, domain.AccentIndianEnglish, ac.Classify("en-US", "india"))
	assert.Equal(t, domain.AccentIndigenousLanguage, ac.Classify("en-US", "indigenous"))
}

func TestClassify_IndigenousCodes(t *testing.T) {
	ac := AccentClassifier{}
	assert.Equal(t, domain.AccentIndigenousLanguage, ac.Classify("nv", ""))
	assert.Equal(t, domain.AccentIndigenousLanguage, ac.Classify("nv-US", ""))
	assert.Equal(t, domain.AccentIndigenousLanguage, ac.Classify("cr", ""))
	assert.Equal(t, domain.AccentIndigenousLanguage, ac.Classify("mi", ""))
}

func TestClassify_Unknown(t *testing.T) {
	ac := AccentClassifier{}
	assert.Equal(t, domain.AccentUnknown, ac.Classify("en-US", ""))
	assert.Equal(t, domain.AccentUnknown, ac.Classify("", ""))
	assert.Equal(t, domain.AccentUnknown, ac.Classify("lt-LT", ""))
}

func TestMultiAccent_RecordsAccent(t *testing.T) {
	tr := NewMultiAccentTranscriber(NewDemoTranscriber())
	assert.Equal(t, domain.AccentUnknown, tr.LastAccent())
	_, err := tr.Transcribe("/data/a.wav", "en-KE")
	assert.Nil(t, err)
	assert.Equal(t, domain.AccentEastAfricanEnglish, tr.LastAccent())
}

func TestMultiAccent_KeepsResult(t *testing.T) {
	tr := NewMultiAccentTranscriber(NewDemoTranscriber())
	res, err := tr.Transcribe("/data/a.wav", "en-KE")
	assert.Nil(t, err)
	assert.Equal(t, "Demo transcript for /data/a.wav in en-KE", res)
}
