package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "pixrelay/docs"
	"pixrelay/infra"
	_midlleware "pixrelay/infra/middleware"
)

const shutdownTimeout = 10 * time.Second

func NewServer(container *infra.ContainerDI) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = _midlleware.ErrorHandler(container.EventLogger, container.Logger, container.Metrics)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(_midlleware.RequestLogger(container.Logger))
	e.Use(_midlleware.RecoverFatal(container.EventLogger, container.Logger, container.Metrics))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{http.MethodPost},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// every method reaches the handler so it can answer 405 with the JSON envelope
	e.Any(container.Config.WebhookPath, container.HandlerWebhook.ReceiveWebhook)

	return e
}

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := NewServer(container)
	log := container.Logger

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server starting",
		zap.String("port", container.Config.ServerPort),
		zap.String("webhook_path", container.Config.WebhookPath))

	if err := e.Start(container.Config.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}
