package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := r.pool.Raw().QueryRow(ctx,
		`SELECT user_id, display_name, bio FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.DisplayName, &p.Bio)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, fmt.Errorf("data.GetProfile: %w", pgx.ErrNoRows)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("data.GetProfile: %w", err)
	}
	return p, nil
}

func (r *Repository) UpsertProfile(ctx context.Context, p Profile) (Profile, error) {
	_, err := r.pool.Raw().Exec(ctx,
		`INSERT INTO profiles (user_id, display_name, bio) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET display_name = EXCLUDED.display_name, bio = EXCLUDED.bio`,
		p.UserID, p.DisplayName, p.Bio,
	)
	if err != nil {
		return Profile{}, fmt.Errorf("data.UpsertProfile: %w", err)
	}
	return p, nil
}
