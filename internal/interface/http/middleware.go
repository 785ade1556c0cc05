package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds request bodies; credential payloads are a few hundred bytes.
const maxBodyBytes = 4 << 10

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// errorHandlingMiddleware renders the last handler error as {"error":{code,message}}.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		level := slog.LevelWarn
		if httpErr.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", httpErr.Status,
			"code", httpErr.Code,
			"error", httpErr.Err,
		)

		c.JSON(httpErr.Status, errorResponse{Error: errorBody{Code: httpErr.Code, Message: httpErr.Message}})
	}
}

// bodyLimit caps how much of the request body handlers may read.
func bodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
