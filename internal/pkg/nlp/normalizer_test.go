package nlp

import (
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/consent"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_ReplacesCulturalPhrase(t *testing.T) {
	n, err := NewCulturalNormalizer(StaticRules{})
	assert.Nil(t, err)
	res := n.Normalize("Doctor, my blood is hot today", nil)
	assert.Equal(t, "Doctor, my body feels hot, like I have a fever today", res)
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	n, _ := NewCulturalNormalizer(StaticRules{})
	res := n.Normalize("My Blood Is Hot", nil)
	assert.Equal(t, "my body feels hot, like I have a fever", res)
}

func TestNormalize_SeveralPhrases(t *testing.T) {
	n, _ := NewCulturalNormalizer(StaticRules{})
	res := n.Normalize("my spirit is tired and the child is not active", nil)
	assert.Equal(t, "I feel very tired and low in mood and the child is less active and less playful than usual", res)
}

func TestNormalize_KeepsTextWithoutConsent(t *testing.T) {
	n, _ := NewCulturalNormalizer(StaticRules{})
	cc := consent.Context{CulturalAIAllowed: false}
	res := n.Normalize("my blood is hot", &cc)
	assert.Equal(t, "my blood is hot", res)
}

func TestNormalize_EmptyText(t *testing.T) {
	n, _ := NewCulturalNormalizer(StaticRules{})
	assert.Equal(t, "", n.Normalize("", nil))
}

func TestNormalize_Idempotent(t *testing.T) {
	n, _ := NewCulturalNormalizer(StaticRules{})
	once := n.Normalize("the sun is burning my blood", nil)
	assert.Equal(t, once, n.Normalize(once, nil))
}

func TestNormalize_Indigenous(t *testing.T) {
	n, err := NewIndigenousNormalizer(StaticRules{})
	assert.Nil(t, err)
	res := n.Normalize("Lately my ancestors are calling me", nil)
	assert.Equal(t, "Lately I feel a strong spiritual pull and emotional distress from my ancestors me", res)
}

func TestNormalize_IndigenousKeepsTextWithoutConsent(t *testing.T) {
	n, _ := NewIndigenousNormalizer(StaticRules{})
	cc := consent.Context{CulturalAIAllowed: false}
	res := n.Normalize("my ancestors are calling", &cc)
	assert.Equal(t, "my ancestors are calling", res)
}

func TestNewNormalizer_FailsOnNoRules(t *testing.T) {
	_, err := NewCulturalNormalizer(nil)
	assert.NotNil(t, err)
	_, err = NewIndigenousNormalizer(nil)
	assert.NotNil(t, err)
}
