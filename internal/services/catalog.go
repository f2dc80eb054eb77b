package services

import (
	"context"

	"github.com/samber/do"

	"jumble/internal/datastore"
	"jumble/internal/models"
	"jumble/internal/pkg/caching"
)

// ServiceCatalog fronts the metadata catalog with a cache. Misses are
// cached too, so a target with no stored metadata doesn't hammer the
// database on every retry.
type ServiceCatalog struct {
	inner *datastore.Store
	cache caching.Cache
}

func NewServiceCatalog(container *do.Injector) (*ServiceCatalog, error) {
	inner, err := do.Invoke[*datastore.Store](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceCatalog{inner: inner, cache: cache}, nil
}

func (service *ServiceCatalog) ArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	return caching.UseCache(ctx, service.cache, DBKeyArtist(name), CACHE_TTL_15_MINS, func() (*models.Artist, error) {
		return service.inner.ArtistByName(ctx, name)
	})
}

func (service *ServiceCatalog) AlbumByName(ctx context.Context, artistName string, name string) (*models.Album, error) {
	return caching.UseCache(ctx, service.cache, DBKeyAlbum(artistName, name), CACHE_TTL_15_MINS, func() (*models.Album, error) {
		return service.inner.AlbumByName(ctx, artistName, name)
	})
}

// StoreArtist upserts the artist and drops its cache entry, which may
// hold a cached miss.
func (service *ServiceCatalog) StoreArtist(ctx context.Context, artist *models.Artist) error {
	if err := service.inner.StoreArtist(ctx, artist); err != nil {
		return err
	}
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyArtist(artist.Name))
	return nil
}

// StoreAlbum upserts the album and drops its cache entry, which may
// hold a cached miss.
func (service *ServiceCatalog) StoreAlbum(ctx context.Context, album *models.Album) error {
	if err := service.inner.StoreAlbum(ctx, album); err != nil {
		return err
	}
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyAlbum(album.ArtistName, album.Name))
	return nil
}
