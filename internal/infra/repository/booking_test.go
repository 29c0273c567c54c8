//go:build unit

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"slotbook/internal/infra"
	"slotbook/internal/pkg/pgconv"
	"slotbook/internal/usecase/shared"
	"slotbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestMarkReminderSent(t *testing.T) {
	tests := []struct {
		name      string
		tag       pgconn.CommandTag
		mockError error
		wantOK    bool
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "stamped", tag: pgconn.NewCommandTag("UPDATE 1"), wantOK: true},
		{name: "already sent", tag: pgconn.NewCommandTag("UPDATE 0"), wantOK: false},
		{name: "database error", tag: pgconn.CommandTag{}, mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, markReminderSentSQL, mock.Anything).Return(tt.tag, tt.mockError)

			repo := NewBookingRepository(dbtx)
			ok, err := repo.MarkReminderSent(context.Background(), uuid.New(), uuid.New(), time.Now())

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOK, ok)
			}
			dbtx.AssertExpectations(t)
		})
	}
}

func TestBookingCreate_OverlapIsConflict(t *testing.T) {
	dbtx := new(MockDBTX)
	exclusion := &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}
	dbtx.On("Exec", mock.Anything, insertBookingSQL, mock.Anything).Return(pgconn.CommandTag{}, exclusion)

	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	repo := NewBookingRepository(dbtx)
	err = repo.Create(context.Background(), b)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindConflict))
	dbtx.AssertNotCalled(t, "Exec", mock.Anything, insertReminderSQL, mock.Anything)
}

func TestBookingUpdate_MissingRowIsNotFound(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, updateBookingSQL, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	repo := NewBookingRepository(dbtx)
	err = repo.Update(context.Background(), b)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestBookingUpdate_SyncsPendingReminders(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	require.Len(t, b.Reminders(), 2)

	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, updateBookingSQL, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil)
	dbtx.On("Exec", mock.Anything, deleteStaleRemindersSQL, mock.Anything).Return(pgconn.NewCommandTag("DELETE 0"), nil)
	dbtx.On("Exec", mock.Anything, insertReminderSQL, mock.Anything).Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	repo := NewBookingRepository(dbtx)
	require.NoError(t, repo.Update(context.Background(), b))

	dbtx.AssertNumberOfCalls(t, "Exec", 4)
}

func TestFindByID_NoRows(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(errRow{err: pgx.ErrNoRows})

	repo := NewBookingRepository(dbtx)
	_, err := repo.FindByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestTokenMarkerConsume(t *testing.T) {
	key := shared.MarkerKey{SubjectID: uuid.New(), Purpose: "cancel", Nonce: "n1"}

	tests := []struct {
		name   string
		tag    pgconn.CommandTag
		wantOK bool
	}{
		{name: "first use", tag: pgconn.NewCommandTag("INSERT 0 1"), wantOK: true},
		{name: "replay", tag: pgconn.NewCommandTag("INSERT 0 0"), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(tt.tag, nil)

			ok, err := NewTokenMarkerRepository(dbtx).Consume(context.Background(), key)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestListWithDueReminders_CanceledFilteredBeforeLimit(t *testing.T) {
	cte := listDueRemindersSQL[:strings.Index(listDueRemindersSQL, "GROUP BY")]
	assert.Contains(t, cte, "ob.status <> 'canceled'")
	assert.Less(t, strings.Index(listDueRemindersSQL, "GROUP BY"), strings.Index(listDueRemindersSQL, "LIMIT"))

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	cursor := &shared.DueCursor{FirstDue: now.Add(-time.Hour), BookingID: uuid.New()}

	tests := []struct {
		name  string
		after *shared.DueCursor
		want  []any
	}{
		{
			name: "first page",
			want: []any{pgconv.TimeToPgtype(now), pgtype.Timestamptz{}, uuid.Nil, int32(100)},
		},
		{
			name:  "after cursor",
			after: cursor,
			want:  []any{pgconv.TimeToPgtype(now), pgconv.TimeToPgtype(cursor.FirstDue), cursor.BookingID, int32(100)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbtx := new(MockDBTX)
			dbtx.On("Query", mock.Anything, listDueRemindersSQL, tt.want).Return(nil, assert.AnError)

			repo := NewBookingRepository(dbtx)
			_, err := repo.ListWithDueReminders(context.Background(), now, tt.after, 100)

			require.Error(t, err)
			assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			dbtx.AssertExpectations(t)
		})
	}
}
