package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:app_user"`

	ID             int64     `bun:"id,pk" json:"id"`
	Username       string    `bun:"username" json:"username"`
	LastfmUsername string    `bun:"lastfm_username" json:"lastfm_username"`
	CreatedAt      time.Time `bun:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at" json:"updated_at"`
}

type UserFromAuth struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsBot        bool   `json:"is_bot"`
	IsPremium    bool   `json:"is_premium"`
	LanguageCode string `json:"language_code"`
	PhotoURL     string `json:"photo_url"`
}
