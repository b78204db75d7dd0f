package handlers

import (
	"gage_backend/internal/config"
	"gage_backend/internal/logger"
	"gage_backend/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:generate swag init --parseInternal -d ../.. -g internal/handlers/handler.go -o ../../docs

// Options carries the HTTP-facing knobs of the auth and CORS layers.
type Options struct {
	AuthMode       string // config.AuthModeBearer | config.AuthModeCookie
	CookieName     string
	CookieSecure   bool
	AllowedOrigins []string
}

const defaultCookieName = "session_token"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.AuthMode == "" {
		opts.AuthMode = config.AuthModeBearer
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	return &Handler{services: services, log: log, opts: opts}
}

// @title                       Gage plant backend
// @version                     1.0
// @description                 REST endpoints over the plant data warehouse.
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	if len(h.opts.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(h.opts.AllowedOrigins))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h.registerSystemRoutes(router)
	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerSystemRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/health", h.health)
	r.GET("/test-connection", h.testConnection)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/logout", h.sessionMiddleware, h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		api.GET("/me", h.me)
		api.GET("/data", h.previewData)
		h.registerCustomerRoutes(api)
		h.registerPlantRoutes(api)
	}
}

func (h *Handler) registerCustomerRoutes(api *gin.RouterGroup) {
	customers := api.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:email", h.getCustomer)
		// Body-less; ?role= selects every customer holding that role.
		customers.DELETE("", h.deleteCustomersByRole)
	}
}

func (h *Handler) registerPlantRoutes(api *gin.RouterGroup) {
	plants := api.Group("/plants")
	{
		plants.GET("/metrics", h.listMetrics)
		plants.GET("/summary", h.plantSummary)
		plants.GET("/:plant/stream", h.streamMetrics)
	}
}
