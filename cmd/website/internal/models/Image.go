package models

/*
Image is the wire shape for photos returned by the list API. Field
names match what the gallery page scripts expect.
*/
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Album    string `json:"album"`
}
