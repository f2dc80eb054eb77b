package datastore

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"jumble/internal/models"
)

func CreateTableConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Config)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetConfigByKey(ctx context.Context, db *bun.DB, key string) (*models.Config, error) {
	config := new(models.Config)
	err := db.NewSelect().Model(config).Where("key = ?", key).Scan(ctx)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return config, nil
}

func GetConfigs(ctx context.Context, db *bun.DB) ([]models.Config, error) {
	var configs []models.Config
	err := db.NewSelect().Model(&configs).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return configs, nil
}
