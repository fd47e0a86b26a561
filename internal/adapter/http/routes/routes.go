package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "obra_presupuestos/docs"
	"obra_presupuestos/internal/config"
	"obra_presupuestos/internal/logging"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run wires the application from cfg and serves HTTP until ctx is done.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, closeRepos, err := OpenRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepos(); err != nil {
			logger.Warn("[app] failed to close storage", zap.Error(err))
		}
	}()

	deps := NewDependencies(cfg, repos, NewCollaborators(ctx, cfg, logger), logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           NewRouter(deps, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[app] listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start the application: %w", err)
	case <-ctx.Done():
	}

	logger.Info("[app] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with middlewares, swagger and the /v1 API.
func NewRouter(deps *Dependencies, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(logging.GinMiddleware(logger))
	router.Use(logging.GinRecovery(logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAPIRoutes(v1, deps, logger)
	return router
}
