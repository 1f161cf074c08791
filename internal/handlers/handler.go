package handlers

import (
	"user_accounts/internal/logger"
	"user_accounts/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Login issues bearer tokens from HTTP Basic credentials
	router.POST("/login", h.login)

	// Account CRUD; outcomes are encoded in the response envelope, not the
	// HTTP status
	h.registerUserRoutes(router)

	// Audit trail (bearer-protected): query endpoint and live stream
	h.registerAuditRoutes(router)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("/get_users", h.getUsers)
		users.POST("/create_user", h.createUser)
		users.POST("/update_user", h.updateUser)
		users.POST("/delete_user", h.deleteUser)
	}
}

func (h *Handler) registerAuditRoutes(r *gin.Engine) {
	r.GET("/audit", h.claimsMiddleware, h.getAudit)
	r.GET("/ws", h.claimsMiddleware, h.wsConnect)
}
