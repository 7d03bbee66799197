// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"market/internal/delivery/http/middleware"
	"market/internal/delivery/http/router/handler"
	"market/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ProductHandler   *handler.ProductHandler
	CategoryHandler  *handler.CategoryHandler
	OrderHandler     *handler.OrderHandler
	PaymentHandler   *handler.PaymentHandler
	ReferralHandler  *handler.ReferralHandler
	AdminUserHandler *handler.AdminUserHandler
	DashboardHandler *handler.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	authed := p.AuthMiddleware.Authenticate
	adminOnly := p.AuthMiddleware.RequireRole(entity.RoleAdmin)
	deliveryOnly := p.AuthMiddleware.RequireRole(entity.RoleDelivery)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", p.AuthHandler.Register)
		authGroup.POST("/login", p.AuthHandler.Login)
		authGroup.GET("/profile", p.AuthHandler.GetProfile, authed)
		authGroup.PUT("/profile", p.AuthHandler.UpdateProfile, authed)
	}

	// Catalog routes; reads are public, mutations admin-only
	productGroup := e.Group("/products")
	{
		productGroup.GET("", p.ProductHandler.List)
		productGroup.GET("/:id", p.ProductHandler.Get)
		productGroup.POST("", p.ProductHandler.Create, authed, adminOnly)
		productGroup.PUT("/:id", p.ProductHandler.Update, authed, adminOnly)
		productGroup.DELETE("/:id", p.ProductHandler.Delete, authed, adminOnly)
	}

	categoryGroup := e.Group("/categories")
	{
		categoryGroup.GET("", p.CategoryHandler.List)
		categoryGroup.GET("/:id", p.CategoryHandler.Get)
		categoryGroup.POST("", p.CategoryHandler.Create, authed, adminOnly)
		categoryGroup.PUT("/:id", p.CategoryHandler.Update, authed, adminOnly)
		categoryGroup.DELETE("/:id", p.CategoryHandler.Delete, authed, adminOnly)
	}

	// Order routes
	orderGroup := e.Group("/orders", authed)
	{
		orderGroup.POST("", p.OrderHandler.Create)
		orderGroup.GET("", p.OrderHandler.List)
		orderGroup.GET("/admin/all", p.OrderHandler.ListAll, adminOnly)
		orderGroup.GET("/delivery/assigned", p.OrderHandler.ListAssigned, deliveryOnly)
		orderGroup.GET("/:id", p.OrderHandler.Get)
		orderGroup.PUT("/:id/status", p.OrderHandler.UpdateStatus, adminOnly)
		orderGroup.PUT("/:id/delivery-status", p.OrderHandler.UpdateDeliveryStatus, deliveryOnly)
	}

	// Payment stub routes
	paymentGroup := e.Group("/payments", authed)
	{
		paymentGroup.POST("/upi/qr", p.PaymentHandler.GenerateUPIQR)
		paymentGroup.PUT("/:orderId/status", p.PaymentHandler.UpdateStatus)
		paymentGroup.GET("/:orderId", p.PaymentHandler.GetStatus)
	}

	// Referral routes
	referralGroup := e.Group("/referrals", authed)
	{
		referralGroup.GET("/code", p.ReferralHandler.GetMyCode)
		referralGroup.GET("/stats", p.ReferralHandler.GetMyStats)
		referralGroup.POST("", p.ReferralHandler.CreateCode, adminOnly)
		referralGroup.GET("/admin/all", p.ReferralHandler.ListCodes, adminOnly)
		referralGroup.PUT("/:id", p.ReferralHandler.UpdateCode, adminOnly)
	}

	// Admin routes
	adminGroup := e.Group("/admin", authed, adminOnly)
	{
		adminGroup.GET("/dashboard", p.DashboardHandler.Get)
		adminGroup.GET("/referral-tree", p.ReferralHandler.GetTree)
		adminGroup.PUT("/orders/:id/assign-delivery", p.OrderHandler.AssignDelivery)

		userGroup := adminGroup.Group("/users")
		{
			userGroup.GET("", p.AdminUserHandler.List)
			userGroup.POST("", p.AdminUserHandler.Create)
			userGroup.GET("/delivery-personnel", p.AdminUserHandler.ListDeliveryPersonnel)
			userGroup.GET("/:id/details", p.AdminUserHandler.GetDetail)
			userGroup.PUT("/:id", p.AdminUserHandler.Update)
			userGroup.PUT("/:id/status", p.AdminUserHandler.SetStatus)
			userGroup.PUT("/:id/flag", p.AdminUserHandler.SetFlag)
			userGroup.PUT("/:id/password", p.AdminUserHandler.ResetPassword)
		}
	}
}
