package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "fnol_intake/docs"
	"fnol_intake/internal/adapter/http/handlers"
	"fnol_intake/internal/adapter/http/middleware"
	"fnol_intake/internal/bootstrap"
	"fnol_intake/internal/config"
	"fnol_intake/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	log := logger.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(err, "invalid configuration")
	}
	log = logger.NewFromConfig(logger.Config{Level: logger.ParseLevel(cfg.LogLevel)})
	logger.SetDefault(log)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf(err, "failed to build dependencies")
	}
	defer app.Close()

	if cfg.StoreDriver == config.StoreMemory {
		if _, err := app.Seed(ctx); err != nil {
			log.Fatalf(err, "failed to seed memory store")
		}
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: NewRouter(app)}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf(err, "graceful shutdown failed")
		}
	}()

	log.Infof("listening port=%s store=%s", cfg.Port, cfg.StoreDriver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf(err, "failed to startup the application")
	}
	log.Infof("server stopped")
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(app *bootstrap.Container) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, app)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	claimHandler := handlers.NewClaimHandler(app.Claims)
	adminHandler := handlers.NewAdminHandler(app.Claims)
	certificateHandler := handlers.NewCertificateHandler(app.Certificates)
	authHandler := handlers.NewAuthHandler(app.Auth, app.Config.GinMode == gin.ReleaseMode)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAuthRoutes(v1, authHandler)

	authed := v1.Group("", middleware.RequireAuth())
	addClaimRoutes(authed, claimHandler, certificateHandler, authHandler)

	admin := v1.Group(PathAdmin, middleware.RequireAdmin())
	addAdminRoutes(admin, adminHandler)

	return router
}

func setMiddlewares(router *gin.Engine, app *bootstrap.Container) {
	httpLog := app.Log.Component("http")
	router.Use(middleware.Recovery(httpLog))
	router.Use(middleware.Authenticate(app.Auth))
	router.Use(middleware.RequestLogger(httpLog))
}
