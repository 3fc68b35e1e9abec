package consent

import (
	"testing"

	"github.com/equiscribe/scribego/internal/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_Defaults(t *testing.T) {
	res := Evaluate("t1", nil)
	assert.Equal(t, "t1", res.TenantID)
	assert.True(t, res.CulturalAIAllowed)
	assert.False(t, res.TrainingAllowed)
	assert.Equal(t, "", res.Reason)
}

func TestEvaluate_EmptyMetadata(t *testing.T) {
	res := Evaluate("t1", &domain.PatientMetadata{})
	assert.True(t, res.CulturalAIAllowed)
	assert.False(t, res.TrainingAllowed)
	assert.Equal(t, "", res.Reason)
}

func TestEvaluate_CulturalDenied(t *testing.T) {
	f := false
	res := Evaluate("t1", &domain.PatientMetadata{ConsentCulturalAI: &f})
	assert.False(t, res.CulturalAIAllowed)
	assert.Equal(t, "patient_level_consent", res.Reason)
}

func TestEvaluate_TrainingAllowed(t *testing.T) {
	v := true
	res := Evaluate("t1", &domain.PatientMetadata{ConsentDataTraining: &v})
	assert.True(t, res.TrainingAllowed)
	assert.Equal(t, "patient_level_training_consent", res.Reason)
}

func TestEvaluate_BothFlags(t *testing.T) {
	v, f := true, false
	res := Evaluate("t1", &domain.PatientMetadata{ConsentCulturalAI: &f, ConsentDataTraining: &v})
	assert.False(t, res.CulturalAIAllowed)
	assert.True(t, res.TrainingAllowed)
	assert.Equal(t, "patient_level_consent", res.Reason)
}
