package appErrors

import (
	"fitforge_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope of every error reply.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError writes err to the client. Server errors are logged here; the
// caller logs everything else with its own context.
func HandleError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxError(c.Request.Context(), "server error", "error", err.Error())
	}
	c.JSON(err.HTTPCode, ErrorResponse{Error: err})
}

// Abort is HandleError for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err *AppError) {
	HandleError(c, err)
	c.Abort()
}
