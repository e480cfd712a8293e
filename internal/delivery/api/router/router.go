// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"accounts/config"
	"accounts/internal/delivery/api/middleware"
	"accounts/internal/delivery/api/router/handler"
	"accounts/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccessHandler  *handler.AccessHandler
	UserHandler    *handler.UserHandler
	RoleHandler    *handler.RoleHandler
	SystemHandler  *handler.SystemHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config

	// Metrics is nil when the process runs without a prometheus registry.
	Metrics *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	accessHandler  *handler.AccessHandler
	userHandler    *handler.UserHandler
	roleHandler    *handler.RoleHandler
	systemHandler  *handler.SystemHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accessHandler:  params.AccessHandler,
		userHandler:    params.UserHandler,
		roleHandler:    params.RoleHandler,
		systemHandler:  params.SystemHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	apiV1 := e.Group("/api/v1")

	// Health check endpoints
	apiV1.GET("/health", r.systemHandler.Health)
	apiV1.GET("/health/liveness", r.systemHandler.Liveness)

	// Access routes
	accessGroup := apiV1.Group("/access")
	{
		accessGroup.POST("/signup", r.accessHandler.Signup)
		accessGroup.POST("/login", r.accessHandler.Login)
		accessGroup.POST("/refresh", r.accessHandler.Refresh)
		accessGroup.POST("/google", r.accessHandler.LoginWithGoogle)
		accessGroup.POST("/logout", r.accessHandler.Logout, r.authMiddleware.Authenticate)
	}

	// Current user routes
	meGroup := apiV1.Group("/me")
	meGroup.Use(r.authMiddleware.Authenticate)
	{
		meGroup.GET("", r.userHandler.Me)
		meGroup.PATCH("/password", r.userHandler.UpdatePassword)
	}

	// User administration, superusers only
	usersGroup := apiV1.Group("/users")
	usersGroup.Use(r.authMiddleware.Authenticate)
	usersGroup.Use(r.authMiddleware.RequireSuperuser())
	{
		usersGroup.GET("", r.userHandler.List)
		usersGroup.POST("", r.userHandler.Create)
		usersGroup.GET("/count", r.userHandler.Count)
		usersGroup.GET("/:id", r.userHandler.Get)
		usersGroup.PATCH("/:id", r.userHandler.Update)
		usersGroup.DELETE("/:id", r.userHandler.Delete)
		usersGroup.PUT("/:id/roles/:roleId", r.roleHandler.Assign)
		usersGroup.DELETE("/:id/roles/:roleId", r.roleHandler.Revoke)
	}

	// Role administration, superusers only
	rolesGroup := apiV1.Group("/roles")
	rolesGroup.Use(r.authMiddleware.Authenticate)
	rolesGroup.Use(r.authMiddleware.RequireSuperuser())
	{
		rolesGroup.GET("", r.roleHandler.List)
		rolesGroup.POST("", r.roleHandler.Create)
		rolesGroup.GET("/slug/:slug", r.roleHandler.GetBySlug)
		rolesGroup.GET("/:id", r.roleHandler.Get)
		rolesGroup.PATCH("/:id", r.roleHandler.Update)
		rolesGroup.DELETE("/:id", r.roleHandler.Delete)
	}
}

// RegisterMetricsRoute exposes the prometheus endpoint when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.metrics == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
}
