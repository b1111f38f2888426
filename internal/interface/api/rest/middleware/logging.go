package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const maxLogBodySize = 1 << 12 // 4 KB

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil {
			ct := c.GetHeader("Content-Type")
			if strings.HasPrefix(ct, "multipart/form-data") {
				body = "<multipart/form-data omitted>"
			} else {
				var buf bytes.Buffer
				_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
				// the unread tail stays readable for the handler
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body))
				body = string(maskJSON(buf.Bytes()))
			}
		}

		c.Next()

		status := c.Writer.Status()
		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
			if status >= http.StatusInternalServerError {
				mCounter.WithLabelValues("app_requests_failed_total").Inc()
			}
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

const unparsableBody = "<unparsable body omitted>"

// maskJSON hides password values at any depth. A body that does not parse,
// including one cut at maxLogBodySize, is replaced as a whole.
func maskJSON(b []byte) []byte {
	if len(bytes.TrimSpace(b)) == 0 {
		return b
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return []byte(unparsableBody)
	}
	if !maskPasswords(v) {
		return b
	}

	out, err := json.Marshal(v)
	if err != nil {
		return []byte(unparsableBody)
	}
	return out
}

func maskPasswords(v any) bool {
	masked := false
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if strings.Contains(strings.ToLower(k), "password") {
				t[k] = "***"
				masked = true
				continue
			}
			masked = maskPasswords(child) || masked
		}
	case []any:
		for _, child := range t {
			masked = maskPasswords(child) || masked
		}
	}
	return masked
}
