package server

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	obsctx "github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/context"
	quotedomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type previewRequest struct {
	QuoteID      string                         `json:"quote_id"`
	Data         quotedomain.QuoteData          `json:"data"`
	Presentation quotedomain.PresentationConfig `json:"presentation"`
}

type previewResponse struct {
	HTML        string    `json:"html"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PreviewQuote compiles the document for in-browser display. The quote id
// is optional: a quote that was never saved can still be previewed.
func (s *Server) PreviewQuote(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var quoteID snowflake.ID
	if raw := strings.TrimSpace(req.QuoteID); raw != "" {
		parsed, err := quotedomain.ParseID(raw)
		if err != nil {
			AbortWithError(c, newValidationError("quote_id", "invalid_request", "invalid quote id"))
			return
		}
		quoteID = parsed
	}

	ctx := obsctx.WithQuoteID(c.Request.Context(), quoteID.String())
	result, err := s.coordinator.Preview(ctx, quoteID, req.Data, req.Presentation)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, previewResponse{
		HTML:        result.HTML,
		GeneratedAt: result.GeneratedAt,
	})
}

// DownloadDocument returns the public URL of the published artifact,
// rendering and publishing first when no valid artifact exists.
func (s *Server) DownloadDocument(c *gin.Context) {
	quoteID, err := quotedomain.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := obsctx.WithQuoteID(c.Request.Context(), quoteID.String())
	result, err := s.coordinator.Download(ctx, quoteID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    result.URL,
		"cached": result.Cached,
	})
}

type publishRequest struct {
	Document string `json:"document"`
}

// PublishDocument accepts a client-rendered artifact as base64 and runs the
// publish path with the supplied bytes.
func (s *Server) PublishDocument(c *gin.Context) {
	quoteID, err := quotedomain.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	encoded := strings.TrimSpace(req.Document)
	if encoded == "" {
		AbortWithError(c, newValidationError("document", "invalid_request", "document is required"))
		return
	}
	pdf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(pdf) == 0 {
		AbortWithError(c, newValidationError("document", "invalid_request", "document must be base64 encoded"))
		return
	}

	ctx := obsctx.WithQuoteID(c.Request.Context(), quoteID.String())
	publicURL, err := s.coordinator.PublishClientRendered(ctx, quoteID, pdf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": publicURL})
}
