package viewmodels

import "github.com/adampresley/kenshot/pkg/models"

type AlbumPage struct {
	BaseViewModel

	AlbumName string
	Photos    []models.Photo
}
