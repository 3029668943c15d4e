package server

import (
	"html/template"

	"erc20indexer/indexer"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine   *gin.Engine
	handler  *Handler
	registry *prometheus.Registry
}

// NewRouter serves a single session. connector may be nil when no wallet
// provider is configured.
func NewRouter(session *indexer.Session, connector indexer.Connector) *Router {
	gin.SetMode(gin.ReleaseMode)

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	session.Observe(metrics.Observe)

	r := &Router{
		engine:   gin.New(),
		handler:  NewHandler(session, connector),
		registry: registry,
	}
	r.engine.SetHTMLTemplate(template.Must(template.New(pageTemplateName).Parse(pageTemplate)))

	r.setupMiddleware(session)
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware(session *indexer.Session) {
	r.engine.Use(Recovery())
	r.engine.Use(Logger(session))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	r.engine.GET("/", r.handler.Page)
	r.engine.POST("/connect", r.handler.ConnectForm)
	r.engine.POST("/query", r.handler.QueryForm)

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/state", r.handler.State)
		v1.POST("/connect", r.handler.Connect)
		v1.POST("/balances/:address", r.handler.Balances)
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
