package commands

import (
	"time"

	"slotbook/internal/pkg/actiontoken"

	"github.com/google/uuid"
)

// ActionTokens issues and checks the guest links embedded in notifications.
type ActionTokens interface {
	Sign(subjectID uuid.UUID, purpose actiontoken.Purpose, ttl time.Duration, extra actiontoken.Extra) (actiontoken.Issued, error)
	Verify(token string, expected actiontoken.Purpose) (*actiontoken.Claims, error)
}

type BookingSettings struct {
	PublicBaseURL       string
	CancelTTL           time.Duration
	RescheduleTTL       time.Duration
	BusyCheckFailClosed bool
	EffectTimeout       time.Duration
}
