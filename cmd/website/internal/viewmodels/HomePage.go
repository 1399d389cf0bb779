package viewmodels

import "github.com/adampresley/kenshot/pkg/models"

type HomePage struct {
	BaseViewModel

	Photos []models.Photo
}
