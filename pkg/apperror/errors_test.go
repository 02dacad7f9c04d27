package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedErrors(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{fmt.Errorf("debit: %w", ErrInsufficientFunds), "INSUFFICIENT_FUNDS"},
		{fmt.Errorf("claim: %w", ErrAlreadyClaimed), "ALREADY_CLAIMED"},
		{ErrDuelAlreadyActive, "DUEL_ALREADY_ACTIVE"},
		{New(http.StatusBadRequest, "bad", ErrSelfTarget), "SELF_TARGET_NOT_ALLOWED"},
		{fmt.Errorf("boom"), "INTERNAL"},
		{nil, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err))
	}
}

func TestMapErrorToStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, MapErrorToStatus(fmt.Errorf("book: %w", ErrNotFound)))
	assert.Equal(t, http.StatusForbidden, MapErrorToStatus(ErrNotAuthorized))
	assert.Equal(t, http.StatusConflict, MapErrorToStatus(ErrTransactionAborted))
	assert.Equal(t, http.StatusTeapot, MapErrorToStatus(New(http.StatusTeapot, "tea", nil)))
	assert.Equal(t, http.StatusInternalServerError, MapErrorToStatus(fmt.Errorf("boom")))
}
