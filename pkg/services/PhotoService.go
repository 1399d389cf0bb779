package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/adampresley/kenshot/pkg/cloudinary"
	"github.com/adampresley/kenshot/pkg/models"
	"github.com/google/uuid"
)

/*
publicIDPattern extracts a public ID from a store delivery URL. The ID
is everything after the version marker ("/v<digits>/"), minus the file
extension, e.g. "https://.../v123/travel/abc.jpg" -> "travel/abc".
*/
var publicIDPattern = regexp.MustCompile(`/v\d+/(.+?)(?:\.\w+)?$`)

type UploadFile struct {
	Name string
	Body io.Reader
}

type PhotoServicer interface {
	DeleteImage(ctx context.Context, publicID string) error
	DeleteAlbum(ctx context.Context, album string) error
	SaveMetadata(ctx context.Context, rawURL, album, uploadedBy string) (string, error)
	UploadFiles(ctx context.Context, album string, files []UploadFile) ([]models.Photo, error)
}

type PhotoServiceConfig struct {
	Cloudinary cloudinary.CloudinaryClient

	// DeliveryBaseURL is the URL prefix of photos served by our store.
	DeliveryBaseURL string

	// UploadFolderPrefix namespaces every upload made through this app.
	UploadFolderPrefix string
}

type PhotoService struct {
	cloudinary         cloudinary.CloudinaryClient
	deliveryBaseURL    string
	uploadFolderPrefix string
}

func NewPhotoService(config PhotoServiceConfig) PhotoService {
	return PhotoService{
		cloudinary:         config.Cloudinary,
		deliveryBaseURL:    config.DeliveryBaseURL,
		uploadFolderPrefix: config.UploadFolderPrefix,
	}
}

/*
DeleteImage removes a single photo. The store's three-way outcome maps
to nil, models.ErrNotFound, or an error describing the failure.
*/
func (s PhotoService) DeleteImage(ctx context.Context, publicID string) error {
	var (
		err    error
		result cloudinary.DestroyResult
	)

	if strings.TrimSpace(publicID) == "" {
		return fmt.Errorf("%w: missing public ID", models.ErrInvalidInput)
	}

	if result, err = s.cloudinary.Destroy(ctx, publicID, true); err != nil {
		return fmt.Errorf("error deleting image %s: %w", publicID, err)
	}

	switch result {
	case cloudinary.DestroyOK:
		return nil

	case cloudinary.DestroyNotFound:
		return fmt.Errorf("image %s: %w", publicID, models.ErrNotFound)

	default:
		return fmt.Errorf("store refused to delete image %s: %s", publicID, result)
	}
}

/*
DeleteAlbum removes every photo under an album's folder, then the
folder itself. The store doesn't cascade, so this is two calls; if the
folder delete fails after the photos are gone, the album is left
half-deleted at the store. Re-running the operation completes it, so
the partial state is logged and the error returned as-is.
*/
func (s PhotoService) DeleteAlbum(ctx context.Context, album string) error {
	if strings.TrimSpace(album) == "" {
		return fmt.Errorf("%w: missing album name", models.ErrInvalidInput)
	}

	if err := s.cloudinary.DeleteResourcesByPrefix(ctx, album+"/"); err != nil {
		return fmt.Errorf("error deleting photos in album %s: %w", album, err)
	}

	if err := s.cloudinary.DeleteFolder(ctx, album); err != nil {
		slog.Error("album photos deleted but folder delete failed. re-run the delete to finish", "album", album, "error", err)
		return fmt.Errorf("error deleting album folder %s: %w", album, err)
	}

	return nil
}

/*
SaveMetadata tags a photo with its album and uploader. A URL already
served by our store has its context updated in place; any other URL is
uploaded fresh into the album's folder. Returns the photo's public ID
either way.
*/
func (s PhotoService) SaveMetadata(ctx context.Context, rawURL, album, uploadedBy string) (string, error) {
	var (
		err      error
		publicID string
		uploaded *cloudinary.UploadResult
	)

	if strings.TrimSpace(rawURL) == "" || strings.TrimSpace(album) == "" {
		return "", fmt.Errorf("%w: missing url or album", models.ErrInvalidInput)
	}

	if uploadedBy == "" {
		uploadedBy = "anonymous"
	}

	contextValues := map[string]string{
		"album":      album,
		"uploadedBy": uploadedBy,
	}

	if strings.HasPrefix(rawURL, s.deliveryBaseURL) {
		if publicID, err = publicIDFromURL(rawURL); err != nil {
			return "", err
		}

		if err = s.cloudinary.UpdateContext(ctx, publicID, contextValues); err != nil {
			return "", fmt.Errorf("error updating metadata for %s: %w", publicID, err)
		}

		return publicID, nil
	}

	uploaded, err = s.cloudinary.Upload(ctx, cloudinary.UploadRequest{
		RemoteURL: rawURL,
		Folder:    album,
		Context:   contextValues,
	})

	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", rawURL, err)
	}

	return uploaded.PublicID, nil
}

/*
UploadFiles pushes a batch of files into an album, each under a
generated unique ID namespaced by the upload prefix. The batch is
all-or-nothing: the first failed file aborts the rest.
*/
func (s PhotoService) UploadFiles(ctx context.Context, album string, files []UploadFile) ([]models.Photo, error) {
	var (
		err      error
		uploaded *cloudinary.UploadResult
	)

	if strings.TrimSpace(album) == "" {
		return nil, fmt.Errorf("%w: missing album name", models.ErrInvalidInput)
	}

	photos := make([]models.Photo, 0, len(files))

	for _, file := range files {
		uploaded, err = s.cloudinary.Upload(ctx, cloudinary.UploadRequest{
			File:     file.Body,
			Filename: file.Name,
			Folder:   fmt.Sprintf("%s/%s", s.uploadFolderPrefix, album),
			PublicID: uuid.New().String(),
		})

		if err != nil {
			return nil, fmt.Errorf("error uploading file %s: %w", file.Name, err)
		}

		photos = append(photos, models.Photo{
			PublicID:  uploaded.PublicID,
			URL:       uploaded.SecureURL,
			Album:     album,
			CreatedAt: uploaded.CreatedAt,
		})
	}

	return photos, nil
}

func publicIDFromURL(rawURL string) (string, error) {
	match := publicIDPattern.FindStringSubmatch(rawURL)

	if match == nil {
		return "", fmt.Errorf("%w: no version marker in store URL %s", models.ErrInvalidInput, rawURL)
	}

	return match[1], nil
}
