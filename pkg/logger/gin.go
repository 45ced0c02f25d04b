package logger

import (
	"bytes"
	"io"

	"orderhub/pkg/correlation"

	"github.com/gin-gonic/gin"
)

const maxLoggedBody = 8 * 1024 // 8KB

func limit(b []byte) []byte {
	if len(b) > maxLoggedBody {
		return b[:maxLoggedBody]
	}
	return b
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CorrelationMiddleware extracts X-Correlation-ID from the request header or
// generates a new one. The ID is stored in the request context and echoed in
// the response header.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		corrID := c.GetHeader(correlation.HeaderName)
		if corrID == "" {
			corrID = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request.Context(), corrID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

// GinBodyLogger logs each request with method, path, status and truncated
// request/response bodies. Webhook payloads are small JSON documents, so the
// bodies are worth keeping for replay debugging.
func (l *Logger) GinBodyLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBuffer := &bytes.Buffer{}
		writer := &responseBodyWriter{
			body:           responseBuffer,
			ResponseWriter: c.Writer,
		}
		c.Writer = writer

		c.Next()

		l.InfoCtx(c.Request.Context(),
			"HTTP request: method=%s path=%s status=%d request_body=%s response_body=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			limit(bytes.TrimSpace(requestBody)),
			limit(bytes.TrimSpace(responseBuffer.Bytes())),
		)
	}
}
