package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dtidevpmj/seidev/internal/config"
	"github.com/dtidevpmj/seidev/internal/httpx"
	"github.com/dtidevpmj/seidev/internal/logging"
	"github.com/dtidevpmj/seidev/internal/middleware"
	"github.com/dtidevpmj/seidev/internal/monitoring"
	"github.com/dtidevpmj/seidev/internal/sei/integra"
	"github.com/dtidevpmj/seidev/internal/sei/userapi"
	"github.com/dtidevpmj/seidev/internal/sei/ws"
	"github.com/dtidevpmj/seidev/internal/wizard"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	router   *gin.Engine
	workflow *wizard.Workflow
	metrics  *monitoring.Metrics
	log      *logging.Logger
	httpSrv  *http.Server

	userClient    *httpx.Client
	wsClient      *httpx.Client
	integraClient *httpx.Client
}

// New creates a server instance wired to the configured upstreams.
func New(cfg *config.Config, log *logging.Logger) *Server {
	metrics := monitoring.New()

	userHTTP := httpx.FromConfig("userapi", cfg.Endpoints.UserAPI, cfg.Outbound, metrics)
	wsHTTP := httpx.FromConfig("seiws", cfg.Endpoints.SEIWS, cfg.Outbound, metrics)
	integraHTTP := httpx.FromConfig("integra", cfg.Endpoints.Integration, cfg.Outbound, metrics)

	workflow := wizard.New(
		userapi.New(userHTTP),
		ws.New(wsHTTP, cfg.SEI),
		integra.New(integraHTTP),
		wizard.NewManager(),
		log,
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}
	router.Use(monitoring.Middleware(metrics))

	s := &Server{
		router:        router,
		workflow:      workflow,
		metrics:       metrics,
		log:           log.Named("server"),
		userClient:    userHTTP,
		wsClient:      wsHTTP,
		integraClient: integraHTTP,
	}

	h := newHandlers(workflow, metrics, s.log)

	router.GET("/", h.Root)
	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions/:id", h.GetSession)
	router.DELETE("/sessions/:id", h.CloseSession)
	router.POST("/sessions/:id/search/units", h.SearchUnits)
	router.POST("/sessions/:id/search/doctypes", h.SearchDocTypes)
	router.POST("/sessions/:id/search/departments", h.SearchDepartments)
	router.POST("/sessions/:id/query", h.Query)
	router.POST("/sessions/:id/submit", h.Submit)
	router.POST("/sessions/:id/finalize", h.Finalize)
	router.POST("/sessions/:id/note", h.Note)

	return s
}

// Router exposes the gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// health reports service and upstream-guard status.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": s.workflow.Sessions().Count(),
		"uptime":   s.metrics.Uptime().String(),
		"upstreams": gin.H{
			s.userClient.Guard().Name():    gin.H{"suspended": s.userClient.Guard().Open()},
			s.wsClient.Guard().Name():      gin.H{"suspended": s.wsClient.Guard().Open()},
			s.integraClient.Guard().Name(): gin.H{"suspended": s.integraClient.Guard().Open()},
		},
	})
}

// Run starts serving on the given address, blocking until shutdown.
func (s *Server) Run(addr string) error {
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	s.log.Info("listening", zap.String("addr", addr))
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
