package booking

import (
	"net/mail"
	"strings"
	"time"

	"slotbook/internal/pkg/errs"
)

const (
	MaxGuestNameLength = 200
	MaxReasonLength    = 500
)

var (
	ErrInvalidTimeSlot   = errs.Mark(errs.New("start time must be before end time"), errs.ErrValidation)
	ErrInvalidGuestName  = errs.Mark(errs.New("guest name is required (max 200 characters)"), errs.ErrValidation)
	ErrInvalidGuestEmail = errs.Mark(errs.New("guest email is invalid"), errs.ErrValidation)
	ErrReasonTooLong     = errs.Mark(errs.New("cancel reason is too long (max 500 characters)"), errs.ErrValidation)
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start.UTC(), end: end.UTC()}, nil
}

func (ts TimeSlot) Start() time.Time { return ts.start }
func (ts TimeSlot) End() time.Time   { return ts.end }

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) Equal(o TimeSlot) bool {
	return ts.start.Equal(o.start) && ts.end.Equal(o.end)
}

type Guest struct {
	name  string
	email string
}

func NewGuest(name, email string) (Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > MaxGuestNameLength {
		return Guest{}, ErrInvalidGuestName
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return Guest{}, ErrInvalidGuestEmail
	}
	return Guest{name: name, email: strings.ToLower(addr.Address)}, nil
}

func (g Guest) Name() string  { return g.name }
func (g Guest) Email() string { return g.email }

// TokenLinks records the nonces of the action tokens currently issued for a
// booking. Reissuing replaces them, which retires older links.
type TokenLinks struct {
	CancelNonce     string
	RescheduleNonce string
}

func (l TokenLinks) Has(nonce string) bool {
	return nonce != "" && (l.CancelNonce == nonce || l.RescheduleNonce == nonce)
}

func NewCancelReason(reason string) (*string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, nil
	}
	if len([]rune(reason)) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}
	return &reason, nil
}
