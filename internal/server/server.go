// Package server exposes the calculation engine over HTTP.
package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/npco2/bioc-calc/internal/biochar"
	"github.com/npco2/bioc-calc/internal/intake"
	"github.com/npco2/bioc-calc/internal/metrics"
	"github.com/npco2/bioc-calc/internal/report"
)

// RequestIDHeader carries the request ID in and out.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds a submitted form.
const maxBodyBytes = 1 << 20

// Server wires the engine, report renderer and metrics to gin routes.
type Server struct {
	calculator biochar.Calculator
	recorder   *metrics.Recorder
	logger     zerolog.Logger
	reportOpts report.Options
	footer     string
	now        func() time.Time
}

// Config holds Server dependencies.
type Config struct {
	Calculator    biochar.Calculator
	Recorder      *metrics.Recorder
	Logger        zerolog.Logger
	ReportOptions report.Options
	ReportFooter  string
}

// New creates a Server. A nil Calculator uses a default engine and a nil
// Recorder creates a fresh one.
func New(cfg Config) *Server {
	s := &Server{
		calculator: cfg.Calculator,
		recorder:   cfg.Recorder,
		logger:     cfg.Logger,
		reportOpts: cfg.ReportOptions,
		footer:     cfg.ReportFooter,
		now:        time.Now,
	}
	if s.calculator == nil {
		s.calculator = biochar.NewEngine(biochar.WithLogger(cfg.Logger))
	}
	if s.recorder == nil {
		s.recorder = metrics.NewRecorder()
	}
	return s
}

// Handler returns the gin engine serving every route.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.recorder.Registry(), promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	v1.GET("/soil-temperatures", s.soilTemperatures)
	v1.GET("/biomass-types", s.biomassTypes)
	v1.GET("/form/defaults", s.formDefaults)
	v1.POST("/calculations", s.createCalculation)
	v1.POST("/reports", s.createReport)

	return r
}

// CalculationResponse is the body of a successful calculation.
type CalculationResponse struct {
	ID       string           `json:"id"`
	Result   ResultResponse   `json:"result"`
	Advisory AdvisoryResponse `json:"advisory"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) soilTemperatures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"soilTemperatures": biochar.AllowedSoilTemps,
		"maxSelected":      biochar.MaxScenarios,
	})
}

func (s *Server) biomassTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"biomassTypes": biochar.BiomassTypes})
}

func (s *Server) formDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, intake.Default())
}

func (s *Server) createCalculation(c *gin.Context) {
	result, ok := s.compute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, CalculationResponse{
		ID:       c.GetString(requestIDKey),
		Result:   newResultResponse(result),
		Advisory: newAdvisoryResponse(result.Advisory),
	})
}

func (s *Server) createReport(c *gin.Context) {
	format, err := report.ParseFormat(c.DefaultQuery("format", string(report.FormatPDF)))
	if err != nil {
		s.abort(c, http.StatusBadRequest, err)
		return
	}

	result, ok := s.compute(c)
	if !ok {
		return
	}

	doc := report.Build(result, report.Meta{
		ID:       c.GetString(requestIDKey),
		IssuedAt: s.now(),
		Footer:   s.footer,
	})

	var buf bytes.Buffer
	if err := report.Render(&buf, format, doc, s.reportOpts); err != nil {
		s.abort(c, http.StatusInternalServerError, err)
		return
	}
	s.recorder.ObserveReport(string(format))

	c.Header("Content-Disposition", "attachment; filename=\"bioc-calc-report."+string(format)+"\"")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// compute decodes the submitted form and runs the engine, writing an error
// response and returning false on failure.
func (s *Server) compute(c *gin.Context) (biochar.CalculationResult, bool) {
	form, err := intake.DecodeSubmission(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		s.abort(c, http.StatusBadRequest, err)
		return biochar.CalculationResult{}, false
	}

	in, err := form.Inputs()
	if err != nil {
		s.recorder.ObserveRejection(err)
		s.abort(c, statusFor(err), err)
		return biochar.CalculationResult{}, false
	}

	start := time.Now()
	result, err := s.calculator.Compute(in)
	s.recorder.ObserveCalculation(result, err, time.Since(start))
	if err != nil {
		s.abort(c, statusFor(err), err)
		return biochar.CalculationResult{}, false
	}
	return result, true
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	RequestID string `json:"requestId"`
}

func (s *Server) abort(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		Kind:      metrics.Outcome(err),
		RequestID: c.GetString(requestIDKey),
	})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, biochar.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, biochar.ErrUnsupportedScenario):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

const requestIDKey = "request_id"

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := s.logger.Info()
		if status >= http.StatusInternalServerError {
			event = s.logger.Error()
		} else if status >= http.StatusBadRequest {
			event = s.logger.Warn()
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.Last().Error())
		}
		event.
			Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}
