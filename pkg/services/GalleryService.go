package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adampresley/kenshot/pkg/cloudinary"
	"github.com/adampresley/kenshot/pkg/models"
	"github.com/alitto/pond/v2"
)

const (
	albumPhotoLimit   = 100
	defaultRecentSize = 10
)

type GalleryServicer interface {
	GetAlbumList(ctx context.Context) ([]models.Album, error)
	GetPhotos(ctx context.Context, album string) ([]models.Photo, error)
	GetRecentPhotos(ctx context.Context, limit int) ([]models.Photo, error)
}

type GalleryServiceConfig struct {
	Cloudinary      cloudinary.CloudinaryClient
	MaxCoverWorkers int
}

type GalleryService struct {
	cloudinary      cloudinary.CloudinaryClient
	maxCoverWorkers int
}

func NewGalleryService(config GalleryServiceConfig) GalleryService {
	if config.MaxCoverWorkers <= 0 {
		config.MaxCoverWorkers = 10
	}

	return GalleryService{
		cloudinary:      config.Cloudinary,
		maxCoverWorkers: config.MaxCoverWorkers,
	}
}

/*
GetAlbumList returns one album per top-level folder at the store, each
with a cover taken from that folder's most recent photo. Cover lookups
fan out on a worker pool, one slot per folder, so the result keeps the
store's folder order. A failed cover lookup leaves that album's cover
empty; it never fails the listing.
*/
func (s GalleryService) GetAlbumList(ctx context.Context) ([]models.Album, error) {
	var (
		err     error
		folders []cloudinary.Folder
	)

	if folders, err = s.cloudinary.RootFolders(ctx); err != nil {
		return nil, fmt.Errorf("error listing album folders: %w", err)
	}

	albums := make([]models.Album, len(folders))
	pool := pond.NewPool(s.maxCoverWorkers, pond.WithContext(ctx))

	for index, folder := range folders {
		pool.Submit(func() {
			albums[index] = models.Album{
				Name:  folder.Name,
				Cover: s.getCover(ctx, folder.Name),
			}
		})
	}

	_ = pool.Stop().Wait()
	return albums, nil
}

func (s GalleryService) getCover(ctx context.Context, album string) string {
	resources, err := s.cloudinary.Search(ctx, cloudinary.SearchRequest{
		Expression: fmt.Sprintf("folder:%s", album),
		SortBy:     "created_at",
		SortDir:    "desc",
		MaxResults: 1,
	})

	if err != nil {
		slog.Error("error fetching cover for album", "album", album, "error", err)
		return ""
	}

	if len(resources) == 0 {
		return ""
	}

	return resources[0].SecureURL
}

/*
GetPhotos returns the photos in an album, newest first, capped at 100.
An album with no photos, including one that doesn't exist, yields an
empty slice.
*/
func (s GalleryService) GetPhotos(ctx context.Context, album string) ([]models.Photo, error) {
	resources, err := s.cloudinary.Search(ctx, cloudinary.SearchRequest{
		Expression: fmt.Sprintf("folder:%s", album),
		SortBy:     "created_at",
		SortDir:    "desc",
		MaxResults: albumPhotoLimit,
	})

	if err != nil {
		return nil, fmt.Errorf("error listing photos for album %s: %w", album, err)
	}

	photos := make([]models.Photo, 0, len(resources))

	for _, resource := range resources {
		photos = append(photos, models.Photo{
			PublicID:  resource.PublicID,
			URL:       resource.SecureURL,
			Album:     album,
			CreatedAt: resource.CreatedAt,
		})
	}

	return photos, nil
}

/*
GetRecentPhotos returns the newest photos store-wide, regardless of
album. Album and uploader come from each photo's own metadata, with
defaults for photos uploaded outside this application.
*/
func (s GalleryService) GetRecentPhotos(ctx context.Context, limit int) ([]models.Photo, error) {
	if limit <= 0 {
		limit = defaultRecentSize
	}

	resources, err := s.cloudinary.Search(ctx, cloudinary.SearchRequest{
		Expression: "resource_type:image",
		SortBy:     "created_at",
		SortDir:    "desc",
		MaxResults: limit,
	})

	if err != nil {
		return nil, fmt.Errorf("error listing recent photos: %w", err)
	}

	photos := make([]models.Photo, 0, len(resources))

	for _, resource := range resources {
		album := resource.Folder

		if album == "" {
			album = "Uncategorized"
		}

		uploadedBy := resource.Context.Custom["uploadedBy"]

		if uploadedBy == "" {
			uploadedBy = "anonymous"
		}

		photos = append(photos, models.Photo{
			PublicID:   resource.PublicID,
			URL:        resource.SecureURL,
			Album:      album,
			UploadedBy: uploadedBy,
			CreatedAt:  resource.CreatedAt,
		})
	}

	return photos, nil
}
