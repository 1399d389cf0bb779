package models

import (
	"time"
)

type Photo struct {
	PublicID   string    `json:"publicId"`
	URL        string    `json:"url"`
	Album      string    `json:"album"`
	UploadedBy string    `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
