package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/handler"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/provider"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/provider/github"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/provider/google"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/auth/token"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/config"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/middleware"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/mods"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/purge"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	codec, err := token.NewCodec(cfg.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	githubProvider, err := github.New(
		cfg.GithubClientID,
		cfg.GithubClientSecret,
		cfg.GithubRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	providers := []provider.OAuthProvider{githubProvider}

	if cfg.GoogleEnabled() {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, googleProvider)
	}

	registry := provider.NewRegistry(providers...)

	authHandler := handler.NewHandler(registry, codec, cfg.AppCallbackURL)

	var purger purge.Notifier = purge.Noop{}
	if infra.Redis != nil {
		purger = purge.NewRedisNotifier(infra.Redis.Client)
	}

	modStore := mods.NewMongoStore(infra.Mods)
	modHandler := mods.NewHandler(modStore, purger)

	session := middleware.NewSessionMiddleware(codec)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Outermost gate: nothing is served to traffic that did not come
	// through the trusted front door.
	router.Use(middleware.TrustedClient(cfg.TrustedClientToken))

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)
	modHandler.RegisterPublicRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Bearer-guarded Routes
	// ----------------------------

	userRoutes := router.Group("/")
	userRoutes.Use(middleware.GinRequireSession(session))
	modHandler.RegisterUserRoutes(userRoutes)

	// ----------------------------
	// Machine-write Route
	// ----------------------------

	machineRoutes := router.Group("/")
	machineRoutes.Use(middleware.RequireAPIKey(cfg.APIKeys))
	modHandler.RegisterMachineRoutes(machineRoutes)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.Close, nil
}
