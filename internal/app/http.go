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

	"github.com/ImranQ74/todo-phase2/internal/config"
	v1 "github.com/ImranQ74/todo-phase2/internal/delivery/http/v1"
	"github.com/ImranQ74/todo-phase2/internal/services"
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
	// shut down the server with a timeout.
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
	jwtCfg := config.Global().JWT

	authService, err := services.NewAuthService(
		globalLogger,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.Algorithm,
	)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to build auth service")
		panic(err)
	}
	taskService := services.NewTaskService(globalLogger, globalTaskStore)

	handler := v1.New(globalLogger, authService, taskService)

	router.GET("/health", handler.HandleHealth)

	tasksRouter := router.Group(
		"/api/:userID/tasks",
		handler.HandleAuthMiddleware,
		handler.HandleUserScopeMiddleware,
	)
	tasksRouter.GET("", handler.HandleListTasks)
	tasksRouter.POST("", handler.HandleCreateTask)
	tasksRouter.GET("/:taskID", handler.HandleGetTask)
	tasksRouter.PUT("/:taskID", handler.HandleUpdateTask)
	tasksRouter.DELETE("/:taskID", handler.HandleDeleteTask)
	tasksRouter.PATCH("/:taskID/complete", handler.HandleToggleTaskComplete)
}
