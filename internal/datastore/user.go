package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"jumble/internal/models"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetUser(ctx context.Context, db *bun.DB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func UpsertUser(ctx context.Context, db *bun.DB, user *models.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := db.NewInsert().Model(user).
		On("CONFLICT (id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("lastfm_username = EXCLUDED.lastfm_username").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
