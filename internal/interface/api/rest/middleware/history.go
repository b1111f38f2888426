package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"excel-analytics-api/internal/application/ports"
)

// HistoryLogger appends "<METHOD> <path>" to the caller's history, with the
// JSON body as details. It runs after AuthMiddleware.
func HistoryLogger(historyService ports.HistoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.Next()
			return
		}

		var details json.RawMessage
		if c.Request.Body != nil && strings.HasPrefix(c.GetHeader("Content-Type"), "application/json") {
			var buf bytes.Buffer
			_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body))
			if json.Valid(buf.Bytes()) {
				details = maskJSON(buf.Bytes())
			}
		}

		historyService.Record(c.Request.Context(), &userID, c.Request.Method+" "+c.Request.URL.Path, details)

		c.Next()
	}
}
