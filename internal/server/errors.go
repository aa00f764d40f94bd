package server

import (
	"errors"
	"net/http"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/artifactstore"
	presdomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/presentation/domain"
	pubdomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/domain"
	quotedomain "github.com/Iterio-app/Iterio-Platform-sub000/internal/quote/domain"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/renderer"
	"github.com/gin-gonic/gin"
)

// ErrNotFound hides resources that exist but must not be exposed.
var ErrNotFound = errors.New("not_found")

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError translates pipeline errors into the HTTP error contract.
// Unrecognized errors surface as an opaque 500 so internals never leak.
func AbortWithError(c *gin.Context, err error) {
	apiErr := toAPIError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}

func toAPIError(err error) *apiError {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, quotedomain.ErrInvalidQuoteID):
		return newValidationError("id", "invalid_request", "invalid quote id")
	case errors.Is(err, quotedomain.ErrQuoteNotFound),
		errors.Is(err, presdomain.ErrNotFound),
		errors.Is(err, ErrNotFound):
		return &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
	case errors.Is(err, quotedomain.ErrInvalidSnapshot):
		return &apiError{Status: http.StatusInternalServerError, Code: "configuration_error", Message: "stored quote snapshot is not usable"}
	case errors.Is(err, renderer.ErrLaunch):
		return &apiError{Status: http.StatusInternalServerError, Code: "render_launch_failed", Message: "rendering engine could not be started"}
	case errors.Is(err, renderer.ErrContentLoadTimeout):
		return &apiError{Status: http.StatusGatewayTimeout, Code: "content_load_timeout", Message: "document content did not load in time"}
	case errors.Is(err, renderer.ErrRasterizationTimeout):
		return &apiError{Status: http.StatusGatewayTimeout, Code: "rasterization_timeout", Message: "document rasterization did not finish in time"}
	case errors.Is(err, artifactstore.ErrUpload),
		errors.Is(err, artifactstore.ErrObjectExists):
		return &apiError{Status: http.StatusBadGateway, Code: "upload_failed", Message: "artifact upload failed"}
	case errors.Is(err, quotedomain.ErrMetadataUpdate),
		errors.Is(err, pubdomain.ErrPointerUpdate):
		return &apiError{Status: http.StatusInternalServerError, Code: "metadata_update_failed", Message: "document metadata could not be updated"}
	case errors.Is(err, presdomain.ErrInvalidID):
		return newValidationError("id", "invalid_request", "invalid template id")
	case errors.Is(err, presdomain.ErrInvalidName):
		return newValidationError("name", "invalid_request", "template name is required")
	default:
		return &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
	}
}
