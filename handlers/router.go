package handlers

import (
	"html/template"
	"time"

	_ "estateinsights/docs" // Swagger docs
	"estateinsights/view"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(h *Handlers, tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	// Engine-wide so preflights for /api reach it before route matching.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", SessionHeader},
		ExposeHeaders:   []string{SessionHeader, "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))
	r.SetHTMLTemplate(tmpl)

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", h.HealthHandler)

	// Page and htmx fragments
	r.StaticFS("/static", view.MustStatic())
	r.GET("/", h.IndexHandler)
	r.POST("/ask", h.AskHandler)
	r.GET("/download", h.DownloadHandler)
	r.GET("/chat", h.ChatHandler)
	r.POST("/chat/send", h.ChatSendHandler)
	r.POST("/chat/upload", h.ChatUploadHandler)

	api := r.Group("/api")
	api.POST("/ask", h.APIAskHandler)
	api.GET("/result", h.APIResultHandler)
	api.GET("/download", h.APIDownloadHandler)
	api.GET("/chat", h.APIChatHandler)
	api.POST("/chat/message", h.APIChatMessageHandler)
	api.POST("/chat/upload", h.APIChatUploadHandler)

	return r
}

// RequestLogger logs one line per request through zerolog.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		evt := log.Info()
		if c.Writer.Status() >= 500 {
			evt = log.Warn()
		}
		evt.Str("component", "http").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
