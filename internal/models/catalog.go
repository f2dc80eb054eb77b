package models

import (
	"github.com/uptrace/bun"
)

// TopEntry is one row of a user's ranked listening history, either an
// artist or an album depending on the request. Transient, recomputed
// per game start.
type TopEntry struct {
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	PlayCount  int    `json:"play_count"`
	CoverURL   string `json:"cover_url"`
}

type Artist struct {
	bun.BaseModel `bun:"table:artist"`

	ID          int    `bun:"id,pk,autoincrement" json:"id"`
	Name        string `bun:"name" json:"name"`
	CountryCode string `bun:"country_code" json:"country_code"`
	Genres      string `bun:"genres" json:"genres"` // comma separated
	StartYear   *int   `bun:"start_year" json:"start_year"`
	EndYear     *int   `bun:"end_year" json:"end_year"`
}

type Album struct {
	bun.BaseModel `bun:"table:album"`

	ID          int    `bun:"id,pk,autoincrement" json:"id"`
	Name        string `bun:"name" json:"name"`
	ArtistName  string `bun:"artist_name" json:"artist_name"`
	ReleaseYear *int   `bun:"release_year" json:"release_year"`
	CoverURL    string `bun:"cover_url" json:"cover_url"`
}

type CountryInfo struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}
