package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenericErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err    GenericError
		status int
		code   string
	}{
		{ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{NotFoundError("missing"), http.StatusNotFound, "NOT_FOUND_ERROR"},
		{GenerationBlockedError("blocked"), http.StatusUnprocessableEntity, "GENERATION_BLOCKED"},
		{ServiceBusyError("busy"), http.StatusServiceUnavailable, "SERVICE_BUSY"},
		{InternalServerError("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode())
		assert.Equal(t, tc.code, tc.err.ErrCode())
	}
}

func TestGenericErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("pipeline: %w", ServiceBusyError("busy"))

	var generic GenericError
	assert.True(t, errors.As(wrapped, &generic))
	assert.Equal(t, http.StatusServiceUnavailable, generic.StatusCode())
}
