package gallery

import (
	"log/slog"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/slices"
	"github.com/adampresley/kenshot/cmd/website/internal/api"
	"github.com/adampresley/kenshot/cmd/website/internal/auth"
	internalmodels "github.com/adampresley/kenshot/cmd/website/internal/models"
	"github.com/adampresley/kenshot/cmd/website/internal/viewmodels"
	"github.com/adampresley/kenshot/pkg/models"
	"github.com/adampresley/kenshot/pkg/services"
)

type GalleryHandlers interface {
	HomePage(w http.ResponseWriter, r *http.Request)
	GalleryPage(w http.ResponseWriter, r *http.Request)
	AlbumPage(w http.ResponseWriter, r *http.Request)
	Albums(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	RecentPhotos(w http.ResponseWriter, r *http.Request)
}

type GalleryControllerConfig struct {
	GalleryService services.GalleryServicer
	OwnerEmails    []string
	Renderer       rendering.TemplateRenderer
}

type GalleryController struct {
	galleryService services.GalleryServicer
	ownerEmails    []string
	renderer       rendering.TemplateRenderer
}

func NewGalleryController(config GalleryControllerConfig) GalleryController {
	return GalleryController{
		galleryService: config.GalleryService,
		ownerEmails:    config.OwnerEmails,
		renderer:       config.Renderer,
	}
}

/*
GET /
*/
func (c GalleryController) HomePage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		photos []models.Photo
	)

	pageName := "pages/home"

	viewData := viewmodels.HomePage{
		BaseViewModel: c.baseViewModel(r, []rendering.JavascriptInclude{
			{Type: "module", Src: "/static/js/pages/home.js"},
		}),
		Photos: []models.Photo{},
	}

	if photos, err = c.galleryService.GetRecentPhotos(r.Context(), 0); err != nil {
		slog.Error("error getting recent photos for home page", "error", err)
		viewData.IsError = true
		viewData.Message = "There was a problem getting photos for this page."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Photos = photos
	c.renderer.Render(pageName, viewData, w)
}

/*
GET /gallery
*/
func (c GalleryController) GalleryPage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		albums []models.Album
	)

	pageName := "pages/gallery"

	viewData := viewmodels.GalleryPage{
		BaseViewModel: c.baseViewModel(r, []rendering.JavascriptInclude{
			{Type: "module", Src: "/static/js/pages/gallery.js"},
		}),
		Albums: []models.Album{},
	}

	if albums, err = c.galleryService.GetAlbumList(r.Context()); err != nil {
		slog.Error("error getting album list", "error", err)
		viewData.IsError = true
		viewData.Message = "There was a problem getting the albums. Please try again."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Albums = albums
	c.renderer.Render(pageName, viewData, w)
}

/*
GET /gallery/{album}
*/
func (c GalleryController) AlbumPage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		photos []models.Photo
	)

	pageName := "pages/view-album"
	albumName := httphelpers.GetFromRequest[string](r, "album")

	viewData := viewmodels.AlbumPage{
		BaseViewModel: c.baseViewModel(r, []rendering.JavascriptInclude{
			{Type: "module", Src: "/static/js/pages/view-album.js"},
		}),
		AlbumName: albumName,
		Photos:    []models.Photo{},
	}

	if photos, err = c.galleryService.GetPhotos(r.Context(), albumName); err != nil {
		slog.Error("error getting photos for album", "album", albumName, "error", err)
		viewData.IsError = true
		viewData.Message = "There was a problem getting photos for this album. Please try again."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Photos = photos
	c.renderer.Render(pageName, viewData, w)
}

/*
GET /api/albums
*/
func (c GalleryController) Albums(w http.ResponseWriter, r *http.Request) {
	albums, err := c.galleryService.GetAlbumList(r.Context())

	if err != nil {
		slog.Error("error getting album list", "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to load albums"})
		return
	}

	api.WriteJSON(w, http.StatusOK, albums)
}

/*
GET /api/list

With an album selector this returns that album's photos. Without one
it returns the album list, same shape as /api/albums.
*/
func (c GalleryController) List(w http.ResponseWriter, r *http.Request) {
	albumName := httphelpers.GetFromRequest[string](r, "album")

	if albumName == "" {
		c.Albums(w, r)
		return
	}

	photos, err := c.galleryService.GetPhotos(r.Context(), albumName)

	if err != nil {
		slog.Error("error listing photos", "album", albumName, "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch albums or images"})
		return
	}

	images := slices.Map(photos, func(photo models.Photo, index int) internalmodels.Image {
		return internalmodels.Image{
			URL:      photo.URL,
			PublicID: photo.PublicID,
			Album:    albumName,
		}
	})

	api.WriteJSON(w, http.StatusOK, images)
}

/*
GET /api/recent-photos
*/
func (c GalleryController) RecentPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := c.galleryService.GetRecentPhotos(r.Context(), 0)

	if err != nil {
		slog.Error("error getting recent photos", "error", err)
		api.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch recent photos"})
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"photos": photos})
}

func (c GalleryController) baseViewModel(r *http.Request, javascriptIncludes []rendering.JavascriptInclude) viewmodels.BaseViewModel {
	member := viewmodels.GetMemberFromContext(r)
	isOwner := false

	if member != nil {
		isOwner = auth.IsOwner(member.Email, c.ownerEmails)
	}

	return viewmodels.BaseViewModel{
		IsHtmx:             httphelpers.IsHtmx(r),
		IsOwner:            isOwner,
		Member:             member,
		JavascriptIncludes: javascriptIncludes,
	}
}
