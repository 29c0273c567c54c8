package commands

import (
	"context"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/host"
	"slotbook/internal/infra"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/patch"
	"slotbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SetupProfileInput struct {
	Handle      string
	DisplayName string
	Email       string
	TimeZone    string
}

// UpdatePolicyInput is a partial update; nil fields keep their value.
type UpdatePolicyInput struct {
	TimeZone     *string
	DurationMin  *int
	BufferMin    *int
	MinNoticeMin *int
	CalendarIDs  *[]string
}

type HostCommands interface {
	SetupProfile(ctx context.Context, hostID uuid.UUID, in SetupProfileInput) (*host.Host, error)
	UpdatePolicy(ctx context.Context, hostID uuid.UUID, in UpdatePolicyInput) (*host.Host, error)
	ReplaceWeeklyHours(ctx context.Context, hostID uuid.UUID, raw map[string][]availability.BlockSpec) (*host.Host, error)
}

const (
	defaultDurationMin = 30
	defaultTimeZone    = "UTC"
)

type hostUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewHostUseCase(uow shared.UnitOfWork, clk clock.Clock) HostCommands {
	return &hostUseCaseImpl{uow: uow, clock: clk}
}

func (uc *hostUseCaseImpl) SetupProfile(ctx context.Context, hostID uuid.UUID, in SetupProfileInput) (*host.Host, error) {
	handle, err := host.NewHandle(in.Handle)
	if err != nil {
		return nil, err
	}
	tz := in.TimeZone
	if tz == "" {
		tz = defaultTimeZone
	}
	policy, err := availability.NewPolicy(tz, defaultDurationMin, 0, 0, nil)
	if err != nil {
		return nil, err
	}
	h, err := host.NewHost(hostID, handle, in.DisplayName, in.Email, policy, nil, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Hosts().FindByID(ctx, hostID)
		switch {
		case err == nil:
			return ErrHostExists
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}
		return tx.Hosts().Create(ctx, h)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrHandleTaken
		}
		return nil, mapHostErr(err)
	}
	return h, nil
}

func (uc *hostUseCaseImpl) UpdatePolicy(ctx context.Context, hostID uuid.UUID, in UpdatePolicyInput) (*host.Host, error) {
	var updated *host.Host
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Hosts().FindByID(ctx, hostID)
		if err != nil {
			return err
		}
		cur := h.Policy()
		policy, err := availability.NewPolicy(
			patch.Coalesce(in.TimeZone, cur.TimeZone()),
			patch.Coalesce(in.DurationMin, cur.DurationMin()),
			patch.Coalesce(in.BufferMin, cur.BufferMin()),
			patch.Coalesce(in.MinNoticeMin, cur.MinNoticeMin()),
			patch.Coalesce(in.CalendarIDs, cur.CalendarIDs()),
		)
		if err != nil {
			return err
		}
		h.UpdatePolicy(policy, uc.clock.Now())
		if err := tx.Hosts().Update(ctx, h); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if err != nil {
		return nil, mapHostErr(err)
	}
	return updated, nil
}

func (uc *hostUseCaseImpl) ReplaceWeeklyHours(ctx context.Context, hostID uuid.UUID, raw map[string][]availability.BlockSpec) (*host.Host, error) {
	hours, err := availability.ParseWeeklyHours(raw)
	if err != nil {
		return nil, err
	}

	var updated *host.Host
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Hosts().FindByID(ctx, hostID)
		if err != nil {
			return err
		}
		h.ReplaceWeeklyHours(hours, uc.clock.Now())
		if err := tx.Hosts().Update(ctx, h); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if err != nil {
		return nil, mapHostErr(err)
	}
	return updated, nil
}

func mapHostErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrHostNotFound
	case infra.IsKind(err, infra.KindDBFailure),
		infra.IsKind(err, infra.KindDuplicateKey),
		infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrDatabaseOperation)
	}
	return err
}
