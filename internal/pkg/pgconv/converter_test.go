//go:build unit

package pgconv

import (
	"database/sql"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestStringPtrRoundTrip(t *testing.T) {
	assert.Nil(t, StringPtrFromPgtype(StringPtrToPgtype(nil)))

	s := "evt-1"
	got := StringPtrFromPgtype(StringPtrToPgtype(&s))
	if assert.NotNil(t, got) {
		assert.Equal(t, s, *got)
	}
}

func TestTimeToPgtype(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	pt := TimeToPgtype(now)
	assert.True(t, pt.Valid)
	assert.True(t, now.Equal(TimeFromPgtype(pt)))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, IsNoRows(pgx.ErrNoRows))
	assert.True(t, IsNoRows(sql.ErrNoRows))
	assert.True(t, IsNoRows(errors.Wrap(pgx.ErrNoRows, "find host")))
	assert.False(t, IsNoRows(errors.New("boom")))
}
