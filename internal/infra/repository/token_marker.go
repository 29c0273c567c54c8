package repository

import (
	"context"

	"slotbook/internal/infra"
	"slotbook/internal/infra/db"
	"slotbook/internal/usecase/shared"
)

// TokenMarkerRepository keeps replay markers in Postgres. It backs the
// marker store when Redis is not configured.
type TokenMarkerRepository struct {
	db db.DBTX
}

func NewTokenMarkerRepository(dbtx db.DBTX) *TokenMarkerRepository {
	return &TokenMarkerRepository{db: dbtx}
}

func (r *TokenMarkerRepository) IsConsumed(ctx context.Context, key shared.MarkerKey) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM token_usage_markers WHERE subject_id = $1 AND purpose = $2 AND nonce = $3
)`, key.SubjectID, key.Purpose, key.Nonce).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check token marker", err)
	}
	return exists, nil
}

func (r *TokenMarkerRepository) Consume(ctx context.Context, key shared.MarkerKey) (bool, error) {
	tag, err := r.db.Exec(ctx, `
INSERT INTO token_usage_markers (subject_id, purpose, nonce) VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING`, key.SubjectID, key.Purpose, key.Nonce)
	if err != nil {
		return false, infra.WrapRepoErr("failed to consume token marker", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TokenMarkerRepository) Release(ctx context.Context, key shared.MarkerKey) error {
	_, err := r.db.Exec(ctx, `
DELETE FROM token_usage_markers WHERE subject_id = $1 AND purpose = $2 AND nonce = $3`,
		key.SubjectID, key.Purpose, key.Nonce)
	if err != nil {
		return infra.WrapRepoErr("failed to release token marker", err)
	}
	return nil
}
