package server

import (
	"encoding/json"
	"net/http"
	"time"

	quotedomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type quoteSnapshotRequest struct {
	Data         quotedomain.QuoteData          `json:"data"`
	Presentation quotedomain.PresentationConfig `json:"presentation"`
}

type quoteResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	DocumentURL  *string         `json:"document_url,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	Presentation json.RawMessage `json:"presentation,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (s *Server) CreateQuote(c *gin.Context) {
	var req quoteSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	data, err := json.Marshal(req.Data)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	presentation, err := json.Marshal(req.Presentation)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote := &quotedomain.Quote{
		ID:           s.genID.Generate(),
		Status:       quotedomain.QuoteStatusDraft,
		Data:         datatypes.JSON(data),
		Presentation: datatypes.JSON(presentation),
	}
	if err := s.quotes.Save(c.Request.Context(), quote); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     quote.ID.String(),
		"status": string(quote.Status),
	})
}

func (s *Server) GetQuote(c *gin.Context) {
	quoteID, err := quotedomain.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	quote, err := s.quotes.GetByID(c.Request.Context(), quoteID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quoteResponse{
		ID:           quote.ID.String(),
		Status:       string(quote.Status),
		DocumentURL:  quote.DocumentURL,
		Data:         json.RawMessage(quote.Data),
		Presentation: json.RawMessage(quote.Presentation),
		CreatedAt:    quote.CreatedAt,
		UpdatedAt:    quote.UpdatedAt,
	})
}

func (s *Server) UpdateQuote(c *gin.Context) {
	quoteID, err := quotedomain.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req quoteSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.quotes.UpdateSnapshot(c.Request.Context(), quoteID, req.Data, req.Presentation); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
