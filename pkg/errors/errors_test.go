package errors

import (
	"context"
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesTemplate(t *testing.T) {
	err := Clone(ErrNotFound, "course not found")

	assert.True(t, stdErrors.Is(err, ErrNotFound))
	assert.False(t, stdErrors.Is(err, ErrCourseFull))
	assert.Equal(t, "course not found", err.Error())
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(context.DeadlineExceeded)

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.True(t, stdErrors.Is(appErr, context.DeadlineExceeded))
}

func TestFromErrorKeepsTyped(t *testing.T) {
	wrapped := Wrap(stdErrors.New("boom"), ErrLoadFailed.Code, ErrLoadFailed.Status, "Failed to load grades")

	assert.Same(t, wrapped, FromError(wrapped))
	assert.Nil(t, FromError(nil))
}
