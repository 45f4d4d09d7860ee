package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paysession/internal/shared/errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse sends data as the JSON body with the given status code.
func SuccessResponse(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, ErrorBody{
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return
	}

	// For non-AppError, do not expose internal error details to prevent information leakage
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Internal server error"})
}

// AbortWithError writes the error response and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	ErrorResponseWithError(c, err)
	c.Abort()
}

// NoStoreHeaders marks the response as single-use.
func NoStoreHeaders(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}
