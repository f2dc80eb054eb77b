package datastore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"jumble/internal/models"
)

func CreateTableArtist(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Artist)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Artist)(nil)).Index("index_artist_name").Unique().IfNotExists().Column("name").Exec(ctx)
	return err
}

func CreateTableAlbum(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Album)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Album)(nil)).Index("index_album_artist_name").Unique().IfNotExists().Column("artist_name", "name").Exec(ctx)
	return err
}

func GetArtistByName(ctx context.Context, db *bun.DB, name string) (*models.Artist, error) {
	var artist models.Artist
	err := db.NewSelect().Model(&artist).Where("lower(name) = lower(?)", name).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func GetAlbumByName(ctx context.Context, db *bun.DB, artistName, name string) (*models.Album, error) {
	var album models.Album
	err := db.NewSelect().Model(&album).
		Where("lower(artist_name) = lower(?)", artistName).
		Where("lower(name) = lower(?)", name).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &album, nil
}

func UpsertArtist(ctx context.Context, db *bun.DB, artist *models.Artist) error {
	_, err := db.NewInsert().Model(artist).
		On("CONFLICT (name) DO UPDATE").
		Set("country_code = EXCLUDED.country_code").
		Set("genres = EXCLUDED.genres").
		Exec(ctx)
	return err
}

func UpsertAlbum(ctx context.Context, db *bun.DB, album *models.Album) error {
	_, err := db.NewInsert().Model(album).
		On("CONFLICT (artist_name, name) DO UPDATE").
		Set("cover_url = EXCLUDED.cover_url").
		Exec(ctx)
	return err
}
