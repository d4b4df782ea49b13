package http

import (
	"github.com/gofiber/fiber/v2"
	appaccess "github.com/tu-usuario/gestion-pro/internal/application/access"
	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/provision"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	AccessUC      *appaccess.AccessUseCase
	NavigationUC  *usecase.NavigationUseCase
	ModuleService *usecase.ModuleService
	TenantAdminUC *usecase.TenantAdminUseCase
	ProvisionUC   *provision.ProvisionUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Acceso y navegación: auth opcional — una petición anónima resuelve a
	// unauthenticated + línea base, nunca a 401.
	accessHandler := NewAccessHandler(deps.NavigationUC)
	api.Get("/access", OptionalAuthMiddleware(deps.JWTSecret), accessHandler.Resolve)
	api.Get("/navigation", OptionalAuthMiddleware(deps.JWTSecret), accessHandler.Navigation)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Pantallas gateadas por módulo: ejemplo de uso de RequireModule. Las
	// páginas de negocio reales cuelgan de estos grupos.
	stock := protected.Group("/stock", RequireModule("gestion-stock", deps.ModuleService))
	stock.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"module": "gestion-stock"})
	})
	crm := protected.Group("/crm", RequireModule("crm", deps.ModuleService))
	crm.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"module": "crm"})
	})

	// Administración de plataforma (solo PlatformSuperAdmin)
	admin := protected.Group("/admin", RequirePlatformAdmin(deps.AccessUC))
	adminHandler := NewTenantAdminHandler(deps.TenantAdminUC, deps.ProvisionUC)
	admin.Get("/tenants", adminHandler.List)
	admin.Get("/tenants/:id/modules", adminHandler.GrantMap)
	admin.Get("/tenants/:id/subscription", adminHandler.Subscription)
	admin.Post("/tenants/:id/resync", adminHandler.Resync)
	admin.Post("/members", adminHandler.ProvisionMember)
}
