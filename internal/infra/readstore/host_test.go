//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotbook/internal/infra"
	"slotbook/internal/infra/readstore"
	dbmock "slotbook/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

func TestHostReadStore_FindProfileByHandle(t *testing.T) {
	ctx := context.Background()
	hostID := uuid.New()

	testCases := []struct {
		name       string
		row        scanFunc
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: profile found",
			row: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = hostID
				*dest[1].(*string) = "ada"
				*dest[2].(*string) = "Ada Lovelace"
				*dest[3].(*string) = "Europe/London"
				*dest[4].(*int32) = 45
				return nil
			},
		},
		{
			name:       "error: host not found",
			row:        func(...any) error { return pgx.ErrNoRows },
			expectKind: infra.KindNotFound,
		},
		{
			name:       "error: database error",
			row:        func(...any) error { return errDBConnectionLost },
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockDB := dbmock.NewMockDBTX(ctrl)
			mockDB.EXPECT().QueryRow(ctx, gomock.Any(), "ada").Return(tc.row)

			store := readstore.NewHostReadStore(mockDB)
			view, err := store.FindProfileByHandle(ctx, "ada")

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, hostID, view.ID)
			assert.Equal(t, "Ada Lovelace", view.DisplayName)
			assert.Equal(t, "Europe/London", view.TimeZone)
			assert.Equal(t, 45, view.DurationMin)
		})
	}
}

func TestBookingReadStore_QueryFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockDB := dbmock.NewMockDBTX(ctrl)
	mockDB.EXPECT().Query(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

	store := readstore.NewBookingReadStore(mockDB)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := store.FindByHostFirstPage(ctx, uuid.New(), from, from.AddDate(0, 0, 7), 20)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}
