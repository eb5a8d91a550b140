package transport

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-image-describer/internal/config"
	apperrors "go-image-describer/internal/errors"
	"go-image-describer/internal/logger"
	"go-image-describer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed index.html
var indexPage []byte

// URLAnalysisRequest is the JSON body for URL-based analysis.
type URLAnalysisRequest struct {
	URL    string `json:"url" binding:"required,url"`
	Prompt string `json:"prompt,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func NewHandler(svc service.AnalysisService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/", servePage)
	r.GET("/health", healthCheck)
	r.GET("/api/prompts", listPrompts(svc))
	r.GET("/models", listModels(svc, cfg))
	r.GET("/metrics", showMetrics(svc))
	r.POST("/analyze", analyzeImage(svc, cfg))

	return r
}

func analyzeImage(svc service.AnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		// Log request start
		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing image analysis request")

		var result interface{}
		var err error
		if isMultipart(c) {
			result, err = analyzeUpload(ctx, c, svc)
		} else {
			result, err = analyzeURL(ctx, c, svc)
		}
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = apperrors.NewTimeoutError("Analysis timed out", err)
			}
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Image analysis failed")
			respondError(c, apperrors.GetStatusCode(err), "analysis failed", err)
			return
		}

		duration := time.Since(startTime)
		logger.WithFields(logrus.Fields{
			"processing_time_ms": duration.Milliseconds(),
		}).Info("Image analysis completed")

		c.JSON(http.StatusOK, result)
	}
}

func analyzeUpload(ctx context.Context, c *gin.Context, svc service.AnalysisService) (interface{}, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, apperrors.NewValidationError("Request must include an image file", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("Failed to open uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewValidationError("Failed to read uploaded file", err)
	}

	return svc.AnalyzeUpload(ctx, data, fileHeader.Filename, c.PostForm("prompt"))
}

func analyzeURL(ctx context.Context, c *gin.Context, svc service.AnalysisService) (interface{}, error) {
	var req URLAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, apperrors.NewValidationError("Invalid request format", err)
	}
	return svc.AnalyzeURL(ctx, req.URL, req.Prompt)
}

func listPrompts(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"prompts": svc.PredefinedPrompts()})
	}
}

func listModels(svc service.AnalysisService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		available, err := svc.ListModels(ctx)
		if err != nil {
			respondError(c, apperrors.GetStatusCode(err), "failed to list models", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"candidates": cfg.CandidateModels,
			"available":  available,
		})
	}
}

func showMetrics(svc service.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Metrics())
	}
}

func servePage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func isMultipart(c *gin.Context) bool {
	mediaType := c.ContentType()
	return mediaType == "multipart/form-data"
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
