package apperrors

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler writes an AppError as a JSON response.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("server error: %v", appErr.Unwrap())
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError is the shorthand used by handlers.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// AsAppError unwraps err into *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HandleValidationError converts gin binding errors into the uniform envelope.
func HandleValidationError(c *gin.Context, err error) {
	HandleError(c, ValidationError(gin.H{"details": err.Error()}))
}
