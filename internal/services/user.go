package services

import (
	"context"
	"time"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"jumble/internal/datastore"
	"jumble/internal/models"
)

type ServiceUser struct {
	db *bun.DB
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{db: db}, nil
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userAuth *models.UserFromAuth) (*models.User, error) {
	user, err := datastore.GetUser(ctx, service.db, userAuth.ID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if user != nil {
		return user, nil
	}

	now := time.Now()
	user = &models.User{
		ID:        userAuth.ID,
		Username:  userAuth.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := datastore.UpsertUser(ctx, service.db, user); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return user, nil
}

func (service *ServiceUser) FindUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := datastore.GetUser(ctx, service.db, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return user, nil
}

// ConnectLastfm links the user's Last.fm account; games can only start
// for linked users because candidate selection needs their scrobbles.
func (service *ServiceUser) ConnectLastfm(ctx context.Context, user *models.User, lastfmUsername string) (*models.User, error) {
	if lastfmUsername == "" {
		return nil, errorx.Wrap(ErrLastfmUsernameEmpty, errorx.Validation)
	}

	user.LastfmUsername = lastfmUsername
	user.UpdatedAt = time.Now()
	if err := datastore.UpsertUser(ctx, service.db, user); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return user, nil
}
