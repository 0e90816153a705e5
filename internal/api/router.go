// Package api serves the user directory as server-rendered HTML forms.
package api

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewRouter wires the handler into a gin engine with request logging and
// panic recovery.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(h.Log), gin.Recovery())
	r.SetHTMLTemplate(templates)

	r.GET("/", h.ListUsers)
	r.GET("/healthz", h.Health)

	users := r.Group("/users")
	{
		users.GET("/create", h.CreateForm)
		users.POST("/create", h.CreateUser)
		users.GET("/search", h.Search)
		users.GET("/:id/update", h.UpdateForm)
		users.POST("/:id/update", h.UpdateUser)
		users.POST("/:id/delete", h.DeleteUser)
	}

	return r
}

// requestLogger tags every request with an id, reusing the caller's
// X-Request-ID when one is sent, and logs the outcome.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String(requestIDKey, id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
