package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"pixrelay/infra/metrics"
	"pixrelay/internal/eventlog"
	"pixrelay/internal/webhook"
)

type EventLogger interface {
	Log(ctx context.Context, kind eventlog.Kind, data any)
}

func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

// RecoverFatal turns a panic into an ERRO_FATAL line and a generic 500.
func RecoverFatal(events EventLogger, log *zap.Logger, m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				log.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = writeFatal(c, events, m, fmt.Errorf("panic: %v", r))
			}()
			return next(c)
		}
	}
}

// ErrorHandler answers echo routing errors with their own status and every
// other error as an unhandled fault whose detail never reaches the caller.
func ErrorHandler(events EventLogger, log *zap.Logger, m *metrics.Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			message := http.StatusText(he.Code)
			if text, ok := he.Message.(string); ok && text != "" {
				message = text
			}
			if werr := c.JSON(he.Code, webhook.ErrorResponse{Status: "error", Message: message}); werr != nil {
				log.Warn("write error response", zap.Error(werr))
			}
			return
		}

		log.Error("unhandled error", zap.Error(err))
		if werr := writeFatal(c, events, m, err); werr != nil {
			log.Warn("write error response", zap.Error(werr))
		}
	}
}

func writeFatal(c echo.Context, events EventLogger, m *metrics.Metrics, cause error) error {
	req := c.Request()
	events.Log(req.Context(), eventlog.KindFatal, map[string]any{
		"error":      cause.Error(),
		"method":     req.Method,
		"path":       req.URL.Path,
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
	m.ObserveRequest(metrics.OutcomeFatal)
	return c.JSON(http.StatusInternalServerError, webhook.InternalErrorResponse())
}
