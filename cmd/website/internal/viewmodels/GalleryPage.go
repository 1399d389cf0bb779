package viewmodels

import "github.com/adampresley/kenshot/pkg/models"

type GalleryPage struct {
	BaseViewModel

	Albums []models.Album
}
