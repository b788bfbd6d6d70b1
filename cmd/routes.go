package main

import (
	"github.com/labstack/echo/v4"

	"sheetmart/internal/handlers"
	"sheetmart/internal/middleware"
)

type routeHandlers struct {
	health        *handlers.HealthHandlers
	auth          *handlers.AuthHandlers
	dashboard     *handlers.DashboardHandlers
	inventory     *handlers.InventoryHandlers
	orders        *handlers.OrderHandlers
	suppliers     *handlers.SupplierHandlers
	reports       *handlers.ReportHandlers
	tenants       *handlers.TenantHandlers
	scheduler     *handlers.SchedulerHandlers
	notifications *handlers.NotificationHandlers
}

// registerRoutes mounts the API on e. Tenant and admin middleware are attached
// per route so that unknown paths under /v1 fall through to echo's 404.
func registerRoutes(e *echo.Echo, h routeHandlers, tenantMW, adminMW []echo.MiddlewareFunc) {
	// Health endpoints (no auth required)
	e.GET("/health", h.health.HealthCheck)
	e.GET("/health/ready", h.health.ReadinessCheck)

	v1 := e.Group("/v1")
	v1.Use(middleware.VersionHeader("v1", version))

	auth := v1.Group("/auth")
	auth.POST("/login", h.auth.Login)
	auth.POST("/logout", h.auth.Logout)
	auth.POST("/admin-token", h.auth.AdminToken)

	// Tenant-scoped routes
	v1.GET("/dashboard", h.dashboard.GetDashboard, tenantMW...)

	v1.GET("/inventory", h.inventory.ListInventory, tenantMW...)
	v1.POST("/inventory", h.inventory.CreateInventoryItem, tenantMW...)
	v1.GET("/inventory/:product", h.inventory.GetInventoryItem, tenantMW...)
	v1.PATCH("/inventory/:product", h.inventory.UpdateThresholds, tenantMW...)
	v1.DELETE("/inventory/:product", h.inventory.DeleteInventoryItem, tenantMW...)

	v1.GET("/purchases", h.orders.ListPurchases, tenantMW...)
	v1.POST("/purchases", h.orders.CreatePurchase, tenantMW...)
	v1.GET("/sales", h.orders.ListSales, tenantMW...)
	v1.POST("/sales", h.orders.CreateSale, tenantMW...)

	v1.GET("/suppliers", h.suppliers.ListSuppliers, tenantMW...)
	v1.POST("/suppliers", h.suppliers.CreateSupplier, tenantMW...)

	v1.GET("/reports/inventory", h.reports.InventoryPDF, tenantMW...)
	v1.POST("/reports/inventory/archive", h.reports.ArchiveInventoryPDF, tenantMW...)

	// Admin routes
	v1.GET("/scheduler", h.scheduler.Status, adminMW...)
	v1.POST("/scheduler", h.scheduler.Trigger, adminMW...)

	v1.GET("/tenants", h.tenants.ListTenants, adminMW...)
	v1.POST("/tenants", h.tenants.CreateTenant, adminMW...)
	v1.GET("/tenants/:id", h.tenants.GetTenant, adminMW...)

	v1.GET("/notifications/deliveries", h.notifications.ListDeliveries, adminMW...)
}
