package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/fabrikdata/firmenmatch/internal/db"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

// RunStore is the audit-store surface the API reads from.
type RunStore interface {
	Ping(ctx context.Context) error
	ListMergeRuns(ctx context.Context, limit, offset int) ([]db.MergeRun, error)
	GetMergeRun(ctx context.Context, runUUID string) (*db.MergeRun, error)
	ListMatchDecisions(ctx context.Context, runID int64, limit, offset int) ([]db.MatchDecision, error)
	QueryAuditStats(ctx context.Context) (*db.AuditStats, error)
}

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server is the read-only JSON API over recorded merge runs.
type Server struct {
	store  RunStore
	logger zerolog.Logger
	opts   Options
}

func NewServer(store RunStore, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8090
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		store:  store,
		logger: logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
	}
}

// Router builds the echo instance with all middleware and routes.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}

			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	e.GET("/healthz", s.handleHealth)

	api := e.Group("/api")
	api.GET("/runs", s.handleRuns)
	api.GET("/runs/:run_uuid", s.handleRunDetail)
	api.GET("/runs/:run_uuid/decisions", s.handleRunDecisions)
	api.GET("/stats", s.handleStats)

	return e
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := s.Router()

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
			s.logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	}()

	s.logger.Info().Str("addr", addr).Msg("firmenmatch api server started")

	if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start server: %w", err)
	}
	s.logger.Info().Msg("firmenmatch api server stopped")
	return nil
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch v := he.Message.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				message = v
			}
		default:
			if text := strings.TrimSpace(http.StatusText(status)); text != "" {
				message = text
			}
		}
	} else if err != nil {
		message = err.Error()
	}

	if status >= 500 {
		_ = internalError(c, "Internal server error")
		return
	}
	_ = fail(c, status, message, nil)
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		s.logger.Error().Err(err).Msg("audit store ping failed")
		return internalError(c, "Audit store unreachable")
	}
	return success(c, map[string]any{
		"service": "firmenmatch",
		"time":    time.Now().UTC(),
	})
}

func (s *Server) handleRuns(c echo.Context) error {
	page, err := parsePositiveInt(c.QueryParam("page"), 1, 1, 1_000_000)
	if err != nil {
		return failValidation(c, map[string]string{"page": err.Error()})
	}
	pageSize, err := parsePositiveInt(c.QueryParam("page_size"), defaultPageSize, 1, maxPageSize)
	if err != nil {
		return failValidation(c, map[string]string{"page_size": err.Error()})
	}

	runs, err := s.store.ListMergeRuns(c.Request().Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("list merge runs failed")
		return internalError(c, "Failed to load merge runs")
	}

	return success(c, map[string]any{
		"items": runs,
		"pagination": map[string]any{
			"page":      page,
			"page_size": pageSize,
		},
	})
}

func (s *Server) handleRunDetail(c echo.Context) error {
	runUUID := strings.TrimSpace(c.Param("run_uuid"))
	if runUUID == "" {
		return failValidation(c, map[string]string{"run_uuid": "is required"})
	}

	run, err := s.store.GetMergeRun(c.Request().Context(), runUUID)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return failNotFound(c, "Merge run not found")
		}
		s.logger.Error().Err(err).Str("run_uuid", runUUID).Msg("get merge run failed")
		return internalError(c, "Failed to load merge run")
	}
	return success(c, run)
}

func (s *Server) handleRunDecisions(c echo.Context) error {
	runUUID := strings.TrimSpace(c.Param("run_uuid"))
	if runUUID == "" {
		return failValidation(c, map[string]string{"run_uuid": "is required"})
	}
	page, err := parsePositiveInt(c.QueryParam("page"), 1, 1, 1_000_000)
	if err != nil {
		return failValidation(c, map[string]string{"page": err.Error()})
	}
	pageSize, err := parsePositiveInt(c.QueryParam("page_size"), 100, 1, 1000)
	if err != nil {
		return failValidation(c, map[string]string{"page_size": err.Error()})
	}

	ctx := c.Request().Context()
	run, err := s.store.GetMergeRun(ctx, runUUID)
	if err != nil {
		if errors.Is(err, db.ErrNoRows) {
			return failNotFound(c, "Merge run not found")
		}
		s.logger.Error().Err(err).Str("run_uuid", runUUID).Msg("get merge run failed")
		return internalError(c, "Failed to load merge run")
	}

	decisions, err := s.store.ListMatchDecisions(ctx, run.RunID, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error().Err(err).Str("run_uuid", runUUID).Msg("list match decisions failed")
		return internalError(c, "Failed to load match decisions")
	}

	return success(c, map[string]any{
		"run_uuid": run.RunUUID,
		"items":    decisions,
		"pagination": map[string]any{
			"page":      page,
			"page_size": pageSize,
		},
	})
}

func (s *Server) handleStats(c echo.Context) error {
	stats, err := s.store.QueryAuditStats(c.Request().Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("query audit stats failed")
		return internalError(c, "Failed to load stats")
	}
	return success(c, stats)
}

func parsePositiveInt(raw string, defaultValue, minValue, maxValue int) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if value < minValue || value > maxValue {
		return 0, fmt.Errorf("must be between %d and %d", minValue, maxValue)
	}
	return value, nil
}
