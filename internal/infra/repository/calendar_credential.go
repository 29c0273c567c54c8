package repository

import (
	"context"

	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/oauth2"
)

// CalendarCredentialRepository stores per-host OAuth2 tokens for the
// external calendar.
type CalendarCredentialRepository struct {
	db db.DBTX
}

func NewCalendarCredentialRepository(dbtx db.DBTX) *CalendarCredentialRepository {
	return &CalendarCredentialRepository{db: dbtx}
}

func (r *CalendarCredentialRepository) Find(ctx context.Context, hostID uuid.UUID) (*oauth2.Token, error) {
	var (
		tok    oauth2.Token
		expiry pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
SELECT access_token, refresh_token, token_type, expiry
FROM host_calendar_credentials
WHERE host_id = $1`, hostID).Scan(&tok.AccessToken, &tok.RefreshToken, &tok.TokenType, &expiry)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get calendar credentials", err)
	}
	if expiry.Valid {
		tok.Expiry = expiry.Time
	}
	return &tok, nil
}

// Save upserts the token. A refreshed token without a refresh token keeps
// the stored one.
func (r *CalendarCredentialRepository) Save(ctx context.Context, hostID uuid.UUID, tok *oauth2.Token) error {
	var expiry pgtype.Timestamptz
	if !tok.Expiry.IsZero() {
		expiry = pgconv.TimeToPgtype(tok.Expiry)
	}
	_, err := r.db.Exec(ctx, `
INSERT INTO host_calendar_credentials (host_id, access_token, refresh_token, token_type, expiry, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (host_id) DO UPDATE SET
	access_token = EXCLUDED.access_token,
	refresh_token = COALESCE(NULLIF(EXCLUDED.refresh_token, ''), host_calendar_credentials.refresh_token),
	token_type = EXCLUDED.token_type,
	expiry = EXCLUDED.expiry,
	updated_at = now()`,
		hostID, tok.AccessToken, tok.RefreshToken, tok.Type(), expiry)
	if err != nil {
		return infra.WrapRepoErr("failed to save calendar credentials", err)
	}
	return nil
}
