//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/pkg/clock"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/pkg/wallclock"
	"slotbook/internal/usecase/commands"
	"slotbook/tests/common/fakes"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrTo[T any](v T) *T { return &v }

func TestHostCommands(t *testing.T) {
	ctx := context.Background()
	newUC := func() (*fakes.Store, commands.HostCommands) {
		store := fakes.NewStore()
		return store, commands.NewHostUseCase(store, clock.NewMockClock(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)))
	}
	setup := commands.SetupProfileInput{Handle: "ada", DisplayName: "Ada", Email: "ADA@example.com", TimeZone: "Europe/London"}

	t.Run("success: setup creates a host with default policy", func(t *testing.T) {
		_, uc := newUC()
		h, err := uc.SetupProfile(ctx, uuid.New(), setup)
		require.NoError(t, err)
		assert.Equal(t, "ada", h.Handle().String())
		assert.Equal(t, "ada@example.com", h.Email())
		assert.Equal(t, "Europe/London", h.Policy().TimeZone())
		assert.Equal(t, 30, h.Policy().DurationMin())
		assert.Equal(t, []string{availability.DefaultCalendarID}, h.Policy().CalendarIDs())
	})

	t.Run("error: setup twice or with a taken handle", func(t *testing.T) {
		_, uc := newUC()
		id := uuid.New()
		_, err := uc.SetupProfile(ctx, id, setup)
		require.NoError(t, err)

		_, err = uc.SetupProfile(ctx, id, setup)
		assert.ErrorIs(t, err, commands.ErrHostExists)

		_, err = uc.SetupProfile(ctx, uuid.New(), setup)
		assert.ErrorIs(t, err, commands.ErrHandleTaken)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("error: invalid setup input", func(t *testing.T) {
		_, uc := newUC()
		bad := setup
		bad.TimeZone = "Mars/Olympus"
		_, err := uc.SetupProfile(ctx, uuid.New(), bad)
		assert.ErrorIs(t, err, wallclock.ErrInvalidTimeZone)

		bad = setup
		bad.Handle = "-x-"
		_, err = uc.SetupProfile(ctx, uuid.New(), bad)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("success: partial policy update keeps unset fields", func(t *testing.T) {
		store, uc := newUC()
		id := uuid.New()
		_, err := uc.SetupProfile(ctx, id, setup)
		require.NoError(t, err)

		h, err := uc.UpdatePolicy(ctx, id, commands.UpdatePolicyInput{
			BufferMin:   ptrTo(10),
			CalendarIDs: ptrTo([]string{"work@example.com", "primary"}),
		})
		require.NoError(t, err)
		assert.Equal(t, 30, h.Policy().DurationMin())
		assert.Equal(t, 10, h.Policy().BufferMin())
		assert.Equal(t, "Europe/London", h.Policy().TimeZone())

		stored, err := store.Hosts().FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "work@example.com", stored.Policy().PrimaryCalendarID())

		_, err = uc.UpdatePolicy(ctx, id, commands.UpdatePolicyInput{DurationMin: ptrTo(0)})
		assert.ErrorIs(t, err, availability.ErrInvalidDuration)
		_, err = uc.UpdatePolicy(ctx, id, commands.UpdatePolicyInput{BufferMin: ptrTo(-1)})
		assert.ErrorIs(t, err, availability.ErrNegativeBuffer)
		_, err = uc.UpdatePolicy(ctx, uuid.New(), commands.UpdatePolicyInput{TimeZone: ptrTo("UTC")})
		assert.ErrorIs(t, err, commands.ErrHostNotFound)
	})

	t.Run("success: weekly hours replace", func(t *testing.T) {
		_, uc := newUC()
		id := uuid.New()
		_, err := uc.SetupProfile(ctx, id, setup)
		require.NoError(t, err)

		raw := map[string][]availability.BlockSpec{
			"mon": {{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}},
			"fri": {{Start: "10:00", End: "24:00"}},
		}
		h, err := uc.ReplaceWeeklyHours(ctx, id, raw)
		require.NoError(t, err)
		if diff := cmp.Diff(raw, h.WeeklyHours().Specs()); diff != "" {
			t.Errorf("weekly hours mismatch (-want +got):\n%s", diff)
		}

		_, err = uc.ReplaceWeeklyHours(ctx, id, map[string][]availability.BlockSpec{"mon": {{Start: "12:00", End: "09:00"}}})
		assert.ErrorIs(t, err, availability.ErrInvalidBlock)
		_, err = uc.ReplaceWeeklyHours(ctx, id, map[string][]availability.BlockSpec{"someday": {{Start: "09:00", End: "10:00"}}})
		assert.ErrorIs(t, err, wallclock.ErrInvalidWeekday)
	})
}
