package server

import (
	"net/http"
	"strings"

	presdomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/presentation/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreatePresentationTemplate(c *gin.Context) {
	var req presdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		AbortWithError(c, newValidationError("name", "invalid_request", "template name is required"))
		return
	}

	template, err := s.templates.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (s *Server) ListPresentationTemplates(c *gin.Context) {
	templates, err := s.templates.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (s *Server) GetPresentationTemplate(c *gin.Context) {
	template, err := s.templates.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (s *Server) UpdatePresentationTemplate(c *gin.Context) {
	var req presdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = c.Param("id")

	template, err := s.templates.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func (s *Server) SetDefaultPresentationTemplate(c *gin.Context) {
	template, err := s.templates.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}
