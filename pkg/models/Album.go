package models

/*
Album is a named grouping of photos, backed by a folder at the media
store. Cover is the secure URL of the most recently created photo in
the folder, or empty when the folder has no photos.
*/
type Album struct {
	Name  string `json:"name"`
	Cover string `json:"cover"`
}
