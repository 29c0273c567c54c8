//go:build unit

package httperr

import (
	"net/http"
	"testing"

	"slotbook/internal/domain/booking"
	"slotbook/internal/pkg/actiontoken"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", booking.ErrSameSlot, http.StatusBadRequest, CodeValidation},
		{"not found", commands.ErrBookingNotFound, http.StatusNotFound, CodeNotFound},
		{"forbidden", commands.ErrGuestMismatch, http.StatusForbidden, CodeForbidden},
		{"token used", errs.Wrap(commands.ErrTokenUsed, "cancel"), http.StatusGone, CodeTokenUsed},
		{"token expired", actiontoken.ErrTokenExpired, http.StatusUnauthorized, CodeTokenExpired},
		{"token purpose", errs.Wrapf(actiontoken.ErrTokenPurpose, "expected %s", actiontoken.PurposeCancel), http.StatusUnauthorized, CodeTokenPurpose},
		{"token subject", commands.ErrTokenSubject, http.StatusUnauthorized, CodeTokenInvalid},
		{"token tampered", actiontoken.ErrTokenInvalid, http.StatusUnauthorized, CodeTokenInvalid},
		{"slot not offered", commands.ErrSlotNotOffered, http.StatusConflict, CodeConflict},
		{"already canceled", booking.ErrAlreadyCanceled, http.StatusConflict, CodeAlreadyCanceled},
		{"slot taken", commands.ErrSlotUnavailable, http.StatusConflict, CodeConflict},
		{"calendar down", commands.ErrCalendarUnavailable, http.StatusServiceUnavailable, CodeUnavailable},
		{"database", errs.Mark(errs.New("boom"), errs.ErrDatabaseOperation), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestClassify_TokenKindsStayDistinct(t *testing.T) {
	kinds := map[string]error{
		"expired": actiontoken.ErrTokenExpired,
		"invalid": actiontoken.ErrTokenInvalid,
		"purpose": actiontoken.ErrTokenPurpose,
		"used":    commands.ErrTokenUsed,
		"subject": commands.ErrTokenSubject,
	}
	for name, err := range kinds {
		for other, ref := range kinds {
			if name == other {
				continue
			}
			assert.False(t, errs.Is(err, ref), "%s must not match %s", name, other)
		}
		assert.True(t, errs.Is(err, errs.ErrToken), "%s must match the token category", name)
	}

	assert.False(t, errs.Is(commands.ErrSlotNotOffered, commands.ErrSlotUnavailable))
	assert.True(t, errs.Is(commands.ErrSlotNotOffered, errs.ErrConflict))
}
