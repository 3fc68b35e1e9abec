package errs

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Validation, KindOf(New(Validation, "olia")))
	assert.Equal(t, NotFound, KindOf(Errorf(NotFound, "no job %s", "id1")))
	assert.Equal(t, Conflict, KindOf(New(Conflict, "olia")))
}

func TestKindOf_Wrapped(t *testing.T) {
	err := errors.Wrap(New(Authorization, "olia"), "can't do")
	assert.Equal(t, Authorization, KindOf(err))
	err = errors.Wrapf(err, "outer %s", "op")
	assert.Equal(t, Authorization, KindOf(err))
}

func TestKindOf_Unknown(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, Unknown, KindOf(errors.New("olia")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "no job id1", Errorf(NotFound, "no job %s", "id1").Error())
}

func TestString(t *testing.T) {
	assert.Equal(t, "VALIDATION", Validation.String())
	assert.Equal(t, "UNKNOWN", Kind(100).String())
}
