package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	err := NotFound("Psychologist", 42)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Contains(t, err.Message, "Psychologist")
	assert.Contains(t, err.Message, "42")

	verr := Validation("start time must be before end time", "start_time")
	assert.Equal(t, CodeValidation, verr.Code)
	assert.Equal(t, "start_time", verr.Field)

	assert.Equal(t, CodeConflict, Conflict("slot taken").Code)
	assert.Equal(t, CodeBusinessRule, BusinessRule("psychologist is inactive").Code)
}

func TestIsCode(t *testing.T) {
	err := Conflict("overlapping window")
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))

	wrapped := fmt.Errorf("create availability: %w", err)
	assert.True(t, IsCode(wrapped, CodeConflict))

	assert.False(t, IsCode(fmt.Errorf("plain"), CodeConflict))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("Patient", 1)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad", "")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("busy")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(BusinessRule("nope")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized("no token")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("boom")))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("db down")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
}
