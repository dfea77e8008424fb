package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundFamily(t *testing.T) {
	for _, err := range []error{ErrSubjectNotFound, ErrThemeNotFound, ErrSubjectReferenceNotFound} {
		assert.True(t, errors.Is(err, ErrorNotFound), "%v must match ErrorNotFound", err)
	}

	assert.Equal(t, "subject not found", ErrSubjectNotFound.Error())
	assert.Equal(t, "theme not found", ErrThemeNotFound.Error())
	assert.Equal(t, "referenced subject not found", ErrSubjectReferenceNotFound.Error())
}

func TestNotFoundFamily_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrSubjectNotFound, ErrThemeNotFound))
	assert.False(t, errors.Is(ErrSubjectReferenceNotFound, ErrSubjectNotFound))
	assert.False(t, errors.Is(ErrInvalidToken, ErrorNotFound))
}
