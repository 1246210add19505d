package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesByCode(t *testing.T) {
	errSlot := Conflict("SLOT_OCCUPIED", "this slot is already occupied")
	wrapped := fmt.Errorf("create: %w", errSlot)

	assert.ErrorIs(t, wrapped, errSlot)
	assert.NotErrorIs(t, wrapped, Conflict("OTHER", "other"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(KindUpstream))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}
