// Package server exposes the Solver over HTTP with echo.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ahrav/go-hackq/internal/application"
)

// Answerer answers one question per call.
type Answerer interface {
	Answer(ctx context.Context, question string, choices []string) (application.Answer, error)
}

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server is the HTTP answer API.
type Server struct {
	Echo *echo.Echo

	answerer Answerer
	health   HealthChecker
	gatherer prometheus.Gatherer
	cfg      application.ServerConfig
	logger   *slog.Logger
	validate *validator.Validate
}

// New builds a Server with its middlewares and routes. A nil health
// checker always reports healthy; a nil gatherer serves the default
// Prometheus registry.
func New(
	answerer Answerer,
	health HealthChecker,
	gatherer prometheus.Gatherer,
	cfg application.ServerConfig,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Echo:     e,
		answerer: answerer,
		health:   health,
		gatherer: gatherer,
		cfg:      cfg,
		logger:   logger,
		validate: validator.New(),
	}
	s.setupMiddlewares()
	s.Echo.HTTPErrorHandler = s.errorHandler
	s.routes()
	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(s.requestLogger())
	s.Echo.Use(middleware.Recover())
	if s.cfg.RequestTimeout > 0 {
		s.Echo.Use(middleware.ContextTimeout(s.cfg.RequestTimeout))
	}
}

func (s *Server) routes() {
	s.Echo.POST("/v1/answer", s.handleAnswer)
	s.Echo.GET("/healthz", s.handleHealth)
	s.Echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				s.logger.LogAttrs(ctx, slog.LevelInfo, "request",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
				)
				return nil
			}
			s.logger.LogAttrs(ctx, slog.LevelError, "request error",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("error", v.Error.Error()),
			)
			return nil
		},
	})
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		_ = c.JSON(http.StatusBadRequest, errorResponse{Error: validationMessage(verrs), Title: "validation error"})
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
		return
	}

	s.logger.Error("unhandled error", "error", err)
	_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// Start serves on the configured port until ctx is done, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort("", strconv.Itoa(s.cfg.Port))
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
