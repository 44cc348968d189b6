// internal/console/server.go
package console

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	commonerrors "churn-console/internal/common/errors"
	"churn-console/internal/common/logger"
	"churn-console/internal/prediction"
	"churn-console/internal/submission"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

const statusTimeout = 5 * time.Second

// Submitter runs one form submission against page handles.
type Submitter interface {
	Submit(ctx context.Context, key string, form submission.FormInput, elements submission.Elements) (*submission.Outcome, error)
}

// StatusSource reports on the prediction service.
type StatusSource interface {
	Health(ctx context.Context) (*prediction.HealthStatus, error)
	ModelInfo(ctx context.Context) (*prediction.ModelInfo, error)
}

type Options struct {
	Version           string
	PredictionBaseURL string
	AllowedOrigins    []string
	MetricsEnabled    bool
	SecureCookies     bool
}

type Server struct {
	engine    *gin.Engine
	submitter Submitter
	status    StatusSource
	opts      Options
	logger    logger.Logger
}

func NewServer(submitter Submitter, status StatusSource, opts Options, log logger.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		engine:    gin.New(),
		submitter: submitter,
		status:    status,
		opts:      opts,
		logger:    log.WithFields(map[string]interface{}{"component": "console"}),
	}

	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(gin.Recovery(), requestLogger(s.logger))
	s.routes()

	return s, nil
}

// Handler returns the HTTP handler serving the console.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.healthz)
	s.engine.GET("/status", s.upstreamStatus)
	if s.opts.MetricsEnabled {
		s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	pages := s.engine.Group("/", session(s.opts.SecureCookies))
	{
		pages.GET("/", s.showForm)
		pages.POST("/", s.submitForm)
	}

	api := s.engine.Group("/api")
	if corsMiddleware := newCORS(s.opts.AllowedOrigins); corsMiddleware != nil {
		api.Use(corsMiddleware)
		api.OPTIONS("/assess", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
	api.Use(session(s.opts.SecureCookies))
	api.POST("/assess", s.assess)
}

func newCORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	cfg := cors.Config{
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			break
		}
	}
	if !cfg.AllowAllOrigins {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.opts.Version})
}

// upstreamStatus reports the prediction service's health and model. An unreachable service
// degrades the status but the console itself stays up.
func (s *Server) upstreamStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), statusTimeout)
	defer cancel()

	body := gin.H{
		"status":         "ok",
		"version":        s.opts.Version,
		"prediction_api": s.opts.PredictionBaseURL,
	}

	var errs []string
	if health, err := s.status.Health(ctx); err != nil {
		errs = append(errs, "health: "+err.Error())
	} else {
		body["health"] = health
	}
	if info, err := s.status.ModelInfo(ctx); err != nil {
		errs = append(errs, "model-info: "+err.Error())
	} else {
		body["model"] = info
	}

	if len(errs) > 0 {
		body["status"] = "degraded"
		body["errors"] = errs
		s.logger.Warn("prediction service degraded", map[string]interface{}{
			"errors": errs,
		})
	}

	c.JSON(http.StatusOK, body)
}

func (s *Server) showForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage(DefaultValues(), s.opts.Version))
}

// submitForm handles the posted form. The outcome, success or alert, is part of the page.
func (s *Server) submitForm(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "malformed form")
		return
	}

	form := submission.FormFromValues(c.Request.PostForm)
	values := DefaultValues()
	for name, value := range form {
		values[name] = value
	}

	p := newPage(values, s.opts.Version)
	if _, err := s.submitter.Submit(c.Request.Context(), sessionKey(c), form, p.elements()); err != nil {
		s.logger.Debug("submission ended with alert", map[string]interface{}{
			"error": err.Error(),
		})
	}

	c.HTML(http.StatusOK, "index.html", p)
}

func (s *Server) assess(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		s.abortWithError(c, commonerrors.NewInvalidInputError("Request body must be a JSON object.", ""))
		return
	}

	form, err := submission.FormFromJSON(raw)
	if err != nil {
		s.abortWithError(c, submission.ToStandardError(err))
		return
	}

	p := newPage(DefaultValues(), s.opts.Version)
	outcome, err := s.submitter.Submit(c.Request.Context(), sessionKey(c), form, p.elements())
	if err != nil {
		s.abortWithError(c, submission.ToStandardError(err))
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (s *Server) abortWithError(c *gin.Context, stdErr *commonerrors.StandardError) {
	c.AbortWithStatusJSON(statusFor(stdErr.Code), gin.H{
		"code":    stdErr.Code,
		"message": stdErr.Message,
	})
}

func statusFor(code commonerrors.ErrorCode) int {
	switch code {
	case commonerrors.ErrCodeInvalidInput:
		return http.StatusUnprocessableEntity
	case commonerrors.ErrCodeSubmissionInFlight:
		return http.StatusConflict
	case commonerrors.ErrCodeRequestFailed:
		return http.StatusBadGateway
	case commonerrors.ErrCodeGuardUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
