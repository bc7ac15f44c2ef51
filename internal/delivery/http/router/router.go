// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"librarium/internal/delivery/http/middleware"
	"librarium/internal/delivery/http/router/handler"
	"librarium/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	BookHandler     *handler.BookHandler
	CustomerHandler *handler.CustomerHandler
	EmployeeHandler *handler.EmployeeHandler
	AdminHandler    *handler.AdminHandler
	LoanHandler     *handler.LoanHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	bookHandler     *handler.BookHandler
	customerHandler *handler.CustomerHandler
	employeeHandler *handler.EmployeeHandler
	adminHandler    *handler.AdminHandler
	loanHandler     *handler.LoanHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		bookHandler:     params.BookHandler,
		customerHandler: params.CustomerHandler,
		employeeHandler: params.EmployeeHandler,
		adminHandler:    params.AdminHandler,
		loanHandler:     params.LoanHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	staff := []string{entity.RoleAdmin.String(), entity.RoleEmployee.String()}

	// Catalog routes: everyone authenticated can browse, staff manage.
	bookGroup := e.Group("/books")
	bookGroup.Use(r.authMiddleware.Authenticate)
	{
		bookGroup.GET("", r.bookHandler.List)
		bookGroup.POST("", r.bookHandler.Add, r.authMiddleware.RequireRole(staff...))
		bookGroup.PATCH("/:id", r.bookHandler.Update, r.authMiddleware.RequireRole(staff...))
		bookGroup.DELETE("/:id", r.bookHandler.Delete, r.authMiddleware.RequireRole(staff...))
	}

	// Customer directory: registration is open, management is staff-only.
	customerGroup := e.Group("/customers")
	{
		customerGroup.POST("", r.customerHandler.Register)
		customerGroup.GET("", r.customerHandler.List,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(staff...))
		customerGroup.GET("/:email", r.customerHandler.Get,
			r.authMiddleware.Authenticate)
		customerGroup.PATCH("", r.customerHandler.Update,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(staff...))
		customerGroup.DELETE("/:id", r.customerHandler.Delete,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireRole(staff...))
	}

	// Employee directory: admin-managed.
	employeeGroup := e.Group("/employees")
	employeeGroup.Use(r.authMiddleware.Authenticate)
	employeeGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		employeeGroup.POST("", r.employeeHandler.Register)
		employeeGroup.GET("", r.employeeHandler.List)
		employeeGroup.PATCH("", r.employeeHandler.Update)
		employeeGroup.DELETE("/:id", r.employeeHandler.Delete)
	}

	// Admin directory: admin-managed.
	adminGroup := e.Group("/admins")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.POST("", r.adminHandler.Register)
		adminGroup.GET("", r.adminHandler.List)
		adminGroup.PATCH("", r.adminHandler.Update)
		adminGroup.DELETE("/:id", r.adminHandler.Delete)
	}

	// Loan lifecycle: staff open and close loans at the desk.
	loanGroup := e.Group("/loans")
	loanGroup.Use(r.authMiddleware.Authenticate)
	{
		loanGroup.POST("", r.loanHandler.Register, r.authMiddleware.RequireRole(staff...))
		loanGroup.PATCH("/:email/:id/close", r.loanHandler.Close, r.authMiddleware.RequireRole(staff...))
		loanGroup.GET("/:email", r.loanHandler.ListByCustomer)
	}
}
