package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/kenshot/cmd/website/internal/api"
	"github.com/adampresley/kenshot/cmd/website/internal/viewmodels"
	"github.com/adampresley/kenshot/pkg/models"
	"github.com/adampresley/kenshot/pkg/services"
)

// Large album uploads still have to fit the multipart memory ceiling.
const maxUploadMemory = 32 << 20

type AdminHandlers interface {
	UploadPage(w http.ResponseWriter, r *http.Request)
	DeleteImage(w http.ResponseWriter, r *http.Request)
	DeleteAlbum(w http.ResponseWriter, r *http.Request)
	SaveMetadata(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
}

type AdminControllerConfig struct {
	GalleryService services.GalleryServicer
	PhotoService   services.PhotoServicer
	Renderer       rendering.TemplateRenderer
}

type AdminController struct {
	galleryService services.GalleryServicer
	photoService   services.PhotoServicer
	renderer       rendering.TemplateRenderer
}

func NewAdminController(config AdminControllerConfig) AdminController {
	return AdminController{
		galleryService: config.GalleryService,
		photoService:   config.PhotoService,
		renderer:       config.Renderer,
	}
}

/*
GET /uploads
*/
func (c AdminController) UploadPage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		albums []models.Album
	)

	viewData := viewmodels.UploadPage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx:  httphelpers.IsHtmx(r),
			IsOwner: true,
			Member:  viewmodels.GetMemberFromContext(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/pages/upload.js"},
			},
		},
		AlbumNames: []string{},
	}

	/*
	 * Album names feed the upload form's suggestion list. Losing them
	 * shouldn't lose the page.
	 */
	if albums, err = c.galleryService.GetAlbumList(r.Context()); err != nil {
		slog.Error("error getting albums for upload page suggestions", "error", err)
	} else {
		viewData.AlbumNames = slices.Map(albums, func(album models.Album, index int) string {
			return album.Name
		})
	}

	c.renderer.Render("pages/upload", viewData, w)
}

/*
POST /api/delete-image
*/
func (c AdminController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	body := struct {
		PublicID string `json:"public_id"`
	}{}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PublicID == "" {
		api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing public_id"})
		return
	}

	if err := c.photoService.DeleteImage(r.Context(), body.PublicID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			api.WriteJSON(w, http.StatusNotFound, map[string]string{"message": "Image not found"})
			return
		}

		slog.Error("error deleting image", "publicID", body.PublicID, "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete image"})
		return
	}

	slog.Info("image deleted", "publicID", body.PublicID)
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Image deleted successfully"})
}

/*
POST /api/delete-album
*/
func (c AdminController) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Album string `json:"album"`
	}{}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing or invalid album name"})
		return
	}

	if err := c.photoService.DeleteAlbum(r.Context(), body.Album); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing or invalid album name"})
			return
		}

		slog.Error("error deleting album", "album", body.Album, "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete album"})
		return
	}

	slog.Info("album deleted", "album", body.Album)
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Album %q deleted.", body.Album)})
}

/*
POST /api/save-metadata
*/
func (c AdminController) SaveMetadata(w http.ResponseWriter, r *http.Request) {
	var (
		err      error
		publicID string
	)

	body := struct {
		URL        string `json:"url"`
		Album      string `json:"album"`
		UploadedBy string `json:"uploadedBy"`
	}{}

	if err = json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" || body.Album == "" {
		api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing url or album"})
		return
	}

	publicID, err = c.photoService.SaveMetadata(r.Context(), body.URL, body.Album, body.UploadedBy)

	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid store URL provided"})
			return
		}

		slog.Error("error saving photo metadata", "url", body.URL, "album", body.Album, "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to save metadata"})
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{
		"message":  "Metadata saved successfully",
		"publicId": publicID,
	})
}

/*
POST /api/upload
*/
func (c AdminController) Upload(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		photos []models.Photo
	)

	if err = r.ParseMultipartForm(maxUploadMemory); err != nil {
		api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid upload form"})
		return
	}

	album := r.FormValue("album")

	if album == "" {
		album = "uncategorized"
	}

	fileHeaders := r.MultipartForm.File["files"]

	if len(fileHeaders) == 0 {
		api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": "No files provided"})
		return
	}

	files := []services.UploadFile{}

	for _, header := range fileHeaders {
		f, openErr := header.Open()

		if openErr != nil {
			api.WriteJSON(w, http.StatusBadRequest, map[string]string{"message": fmt.Sprintf("Could not read file %s", header.Filename)})
			return
		}

		defer f.Close()

		files = append(files, services.UploadFile{
			Name: header.Filename,
			Body: f,
		})
	}

	if photos, err = c.photoService.UploadFiles(r.Context(), album, files); err != nil {
		slog.Error("error uploading files", "album", album, "numFiles", len(files), "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Upload failed"})
		return
	}

	uploaded := slices.Map(photos, func(photo models.Photo, index int) map[string]string {
		return map[string]string{
			"url":       photo.URL,
			"public_id": photo.PublicID,
			"album":     photo.Album,
		}
	})

	slog.Info("upload complete", "album", album, "numFiles", len(uploaded))
	api.WriteJSON(w, http.StatusOK, map[string]any{"uploaded": uploaded})
}
