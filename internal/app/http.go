package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-taskboard/internal/config"
	v1 "github.com/adanyl0v/go-taskboard/internal/delivery/http/v1"
	"github.com/adanyl0v/go-taskboard/internal/services"
	"github.com/adanyl0v/go-taskboard/internal/suggest"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	suggestClient := suggest.NewClient(
		cfg.Suggest.APIKey,
		cfg.Suggest.BaseURL,
		cfg.Suggest.Model,
		cfg.Suggest.Timeout,
	)
	taskService := services.NewTaskService(globalLogger, globalStore, suggestClient)

	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.LoadTimeout)
	defer cancel()

	if err := taskService.Load(loadCtx); err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to load task collection")
		panic(err)
	}

	v1Handler := v1.New(globalLogger, taskService)
	router = router.Group("/api/v1")

	taskRouter := router.Group("/tasks")
	taskRouter.GET("", v1Handler.HandleListTasks)
	taskRouter.POST("", v1Handler.HandleCreateTask)
	taskRouter.PUT("/:id", v1Handler.HandleUpdateTask)
	taskRouter.DELETE("/:id", v1Handler.HandleDeleteTask)
	taskRouter.POST("/:id/duplicate", v1Handler.HandleDuplicateTask)
	taskRouter.PATCH("/:id/status", v1Handler.HandleChangeTaskStatus)

	tagRouter := router.Group("/tags")
	tagRouter.POST("/suggest", v1Handler.HandleSuggestTags)
}
