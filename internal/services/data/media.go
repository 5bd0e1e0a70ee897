package data

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type MediaAsset struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Approved    bool   `json:"approved"`
}

func (r *Repository) InsertMediaAsset(ctx context.Context, a MediaAsset) (MediaAsset, error) {
	a.ID = uuid.NewString()
	_, err := r.pool.Raw().Exec(ctx,
		`INSERT INTO media_assets (id, user_id, url, content_type, approved) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.URL, a.ContentType, a.Approved,
	)
	if err != nil {
		return MediaAsset{}, fmt.Errorf("data.InsertMediaAsset: %w", err)
	}
	return a, nil
}

func (r *Repository) DecideModeration(ctx context.Context, assetID string, approve bool) error {
	tag, err := r.pool.Raw().Exec(ctx, `UPDATE media_assets SET approved = $1 WHERE id = $2`, approve, assetID)
	if err != nil {
		return fmt.Errorf("data.DecideModeration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("data.DecideModeration: asset %s not found", assetID)
	}
	return nil
}

func (r *Repository) SuspendUser(ctx context.Context, userID, reason string) error {
	_, err := r.pool.Raw().Exec(ctx,
		`INSERT INTO users (id, suspended, suspend_reason) VALUES ($1, true, $2)
		 ON CONFLICT (id) DO UPDATE SET suspended = true, suspend_reason = EXCLUDED.suspend_reason`,
		userID, reason,
	)
	if err != nil {
		return fmt.Errorf("data.SuspendUser: %w", err)
	}
	return nil
}
