package host

import (
	"net/mail"
	"strings"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyDisplayName = errs.Mark(errs.New("display name cannot be empty"), errs.ErrValidation)
	ErrInvalidEmail     = errs.Mark(errs.New("host email is invalid"), errs.ErrValidation)
)

type Host struct {
	id          uuid.UUID
	handle      Handle
	displayName string
	email       string
	policy      availability.Policy
	hours       availability.WeeklyHours
	createdAt   time.Time
	updatedAt   time.Time
}

func NewHost(
	id uuid.UUID,
	handle Handle,
	displayName, email string,
	policy availability.Policy,
	hours availability.WeeklyHours,
	now time.Time,
) (*Host, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrEmptyDisplayName
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidEmail
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	if hours == nil {
		hours = availability.WeeklyHours{}
	}
	return &Host{
		id:          id,
		handle:      handle,
		displayName: displayName,
		email:       strings.ToLower(addr.Address),
		policy:      policy,
		hours:       hours,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructHost(
	id uuid.UUID,
	handle Handle,
	displayName, email string,
	policy availability.Policy,
	hours availability.WeeklyHours,
	createdAt, updatedAt time.Time,
) *Host {
	return &Host{
		id:          id,
		handle:      handle,
		displayName: displayName,
		email:       email,
		policy:      policy,
		hours:       hours,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (h *Host) UpdatePolicy(p availability.Policy, now time.Time) {
	h.policy = p
	h.updatedAt = now
}

func (h *Host) ReplaceWeeklyHours(hours availability.WeeklyHours, now time.Time) {
	h.hours = hours
	h.updatedAt = now
}

func (h *Host) ID() uuid.UUID                         { return h.id }
func (h *Host) Handle() Handle                        { return h.handle }
func (h *Host) DisplayName() string                   { return h.displayName }
func (h *Host) Email() string                         { return h.email }
func (h *Host) Policy() availability.Policy           { return h.policy }
func (h *Host) WeeklyHours() availability.WeeklyHours { return h.hours }
func (h *Host) CreatedAt() time.Time                  { return h.createdAt }
func (h *Host) UpdatedAt() time.Time                  { return h.updatedAt }
