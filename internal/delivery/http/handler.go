package http

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stylelens/backend/internal/domain"
)

// maxImageBytes caps uploaded image size at 10 MB
const maxImageBytes = 10 << 20

// SearchService is the slice of the usecase layer the handlers need
type SearchService interface {
	SearchProducts(ctx context.Context, query string) ([]domain.Listing, error)
	AnalyzeImage(ctx context.Context, img domain.ImagePayload) (*domain.AnalysisResult, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService SearchService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService SearchService) *Handler {
	return &Handler{searchService: searchService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylelens-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles text-only curated product searches
func (h *Handler) SearchProducts(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "search query is required")
		return
	}

	picks, err := h.searchService.SearchProducts(c.Request.Context(), req.Query)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondSuccess(c, picks)
}

// AnalyzeImage handles outfit photo uploads: classify, extract items,
// and curate shopping recommendations per item
func (h *Handler) AnalyzeImage(c *gin.Context) {
	img, ok := h.readImage(c)
	if !ok {
		return
	}

	result, err := h.searchService.AnalyzeImage(c.Request.Context(), img)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	respondSuccess(c, result)
}

// readImage validates and decodes the uploaded image into an oracle payload.
// On failure it writes the error response and returns ok=false.
func (h *Handler) readImage(c *gin.Context) (domain.ImagePayload, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return domain.ImagePayload{}, false
	}

	if fileHeader.Size > maxImageBytes {
		respondError(c, http.StatusBadRequest, domain.ErrImageTooLarge.Error())
		return domain.ImagePayload{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read uploaded image")
		return domain.ImagePayload{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "could not read uploaded image")
		return domain.ImagePayload{}, false
	}
	if len(data) > maxImageBytes {
		respondError(c, http.StatusBadRequest, domain.ErrImageTooLarge.Error())
		return domain.ImagePayload{}, false
	}

	mime := http.DetectContentType(data)
	switch mime {
	case "image/jpeg", "image/png", "image/webp":
	default:
		respondError(c, http.StatusBadRequest, domain.ErrUnsupportedImage.Error())
		return domain.ImagePayload{}, false
	}

	return domain.ImagePayload{
		Base64: base64.StdEncoding.EncodeToString(data),
		MIME:   mime,
	}, true
}

// respondServiceError maps pipeline errors to envelope responses.
// Unexpected errors are logged server-side and surfaced as a generic
// failure without internal detail.
func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, "search query is required")
	case errors.Is(err, domain.ErrNotFashion):
		respondError(c, http.StatusUnprocessableEntity, "no fashion items detected in the image")
	case errors.Is(err, domain.ErrRateLimited):
		respondError(c, http.StatusTooManyRequests, "too many requests, please retry later")
	case errors.Is(err, domain.ErrSearchAPIFailure), errors.Is(err, domain.ErrOracleFailure):
		log.Printf("[HTTP] upstream failure: %v", err)
		respondError(c, http.StatusBadGateway, "upstream service unavailable")
	default:
		log.Printf("[HTTP] unexpected error: %v", err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
