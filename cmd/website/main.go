package main

import (
	"context"
	"embed"
	"encoding/gob"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/sessions"
	"github.com/adampresley/kenshot/cmd/website/internal/admin"
	"github.com/adampresley/kenshot/cmd/website/internal/auth"
	"github.com/adampresley/kenshot/cmd/website/internal/configuration"
	"github.com/adampresley/kenshot/cmd/website/internal/gallery"
	"github.com/adampresley/kenshot/pkg/cloudinary"
	"github.com/adampresley/kenshot/pkg/models"
	"github.com/adampresley/kenshot/pkg/services"
)

var (
	Version string = "development"
	appName string = "kenshot"

	//go:embed app
	appFS embed.FS

	config configuration.Config

	/* Services */
	cloudinaryClient cloudinary.Client
	galleryService   services.GalleryServicer
	photoService     services.PhotoServicer
	renderer         rendering.TemplateRenderer
	sessionService   sessions.Session[*models.Member]

	/* Controllers */
	adminController   admin.AdminController
	authController    auth.AuthController
	galleryController gallery.GalleryController
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("cloudName", config.CloudinaryCloudName),
		slog.String("uploadPrefix", config.UploadFolderPrefix),
	)

	slog.Debug("setting up...")

	/*
	 * Setup sessions and the media store client
	 */
	gob.Register(&models.Member{})

	cookieStore := sessions.NewCookieStore(config.CookieSecret)
	sessionService = sessions.NewSessionWrapper[*models.Member](cookieStore, "kenshotmembers", "member")

	cloudinaryClient = cloudinary.NewClient(cloudinary.ClientConfig{
		CloudName:    config.CloudinaryCloudName,
		APIKey:       config.CloudinaryApiKey,
		APISecret:    config.CloudinaryApiSecret,
		UploadPreset: config.CloudinaryUploadPreset,
	})

	retrier.Retry(func() error {
		if err = cloudinaryClient.Ping(context.Background()); err != nil {
			slog.Error("failed to reach the media store. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	/*
	 * Setup services
	 */
	ownerEmails := auth.ParseAllowList(config.OwnerEmails)

	galleryService = services.NewGalleryService(services.GalleryServiceConfig{
		Cloudinary:      cloudinaryClient,
		MaxCoverWorkers: config.MaxCoverWorkers,
	})

	photoService = services.NewPhotoService(services.PhotoServiceConfig{
		Cloudinary:         cloudinaryClient,
		DeliveryBaseURL:    cloudinaryClient.DeliveryBaseURL(),
		UploadFolderPrefix: config.UploadFolderPrefix,
	})

	/*
	 * Setup controllers
	 */
	authController = auth.NewAuthController(auth.AuthControllerConfig{
		ClientID:       config.GoogleClientID,
		ClientSecret:   config.GoogleClientSecret,
		RedirectURL:    strings.TrimSuffix(config.BaseURL, "/") + "/auth/callback",
		SessionService: sessionService,
	})

	galleryController = gallery.NewGalleryController(gallery.GalleryControllerConfig{
		GalleryService: galleryService,
		OwnerEmails:    ownerEmails,
		Renderer:       renderer,
	})

	adminController = admin.NewAdminController(admin.AdminControllerConfig{
		GalleryService: galleryService,
		PhotoService:   photoService,
		Renderer:       renderer,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	memberMiddleware := newMemberMiddleware(sessionService)
	ownerOnlyMiddleware := newOwnerOnlyMiddleware(sessionService, ownerEmails)

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: galleryController.HomePage, Middlewares: []mux.MiddlewareFunc{memberMiddleware}},
		{Path: "GET /gallery", HandlerFunc: galleryController.GalleryPage, Middlewares: []mux.MiddlewareFunc{memberMiddleware}},
		{Path: "GET /gallery/{album}", HandlerFunc: galleryController.AlbumPage, Middlewares: []mux.MiddlewareFunc{memberMiddleware}},
		{Path: "GET /uploads", HandlerFunc: adminController.UploadPage, Middlewares: []mux.MiddlewareFunc{ownerOnlyMiddleware}},
		{Path: "GET /auth/login", HandlerFunc: authController.LoginAction},
		{Path: "GET /auth/callback", HandlerFunc: authController.CallbackAction},
		{Path: "GET /auth/logout", HandlerFunc: authController.LogoutAction},
		{Path: "GET /api/albums", HandlerFunc: galleryController.Albums},
		{Path: "GET /api/list", HandlerFunc: galleryController.List},
		{Path: "GET /api/recent-photos", HandlerFunc: galleryController.RecentPhotos},
		{Path: "POST /api/delete-image", HandlerFunc: adminController.DeleteImage, Middlewares: []mux.MiddlewareFunc{ownerOnlyMiddleware}},
		{Path: "POST /api/delete-album", HandlerFunc: adminController.DeleteAlbum, Middlewares: []mux.MiddlewareFunc{ownerOnlyMiddleware}},
		{Path: "POST /api/save-metadata", HandlerFunc: adminController.SaveMetadata, Middlewares: []mux.MiddlewareFunc{ownerOnlyMiddleware}},
		{Path: "POST /api/upload", HandlerFunc: adminController.Upload, Middlewares: []mux.MiddlewareFunc{ownerOnlyMiddleware}},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}
