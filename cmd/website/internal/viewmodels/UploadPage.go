package viewmodels

type UploadPage struct {
	BaseViewModel

	AlbumNames []string
}
