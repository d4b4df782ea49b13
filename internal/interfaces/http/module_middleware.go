package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.ModuleService; el uso de interfaz evita el import circular.
type moduleChecker interface {
	HasActiveModule(ctx context.Context, identity *entity.Identity, moduleCode string) (bool, error)
}

// accessResolver es el contrato mínimo para resolver el tier de la identidad.
// Lo implementa *access.AccessUseCase.
type accessResolver interface {
	Resolve(ctx context.Context, identity *entity.Identity) access.Result
}

// RequireModule devuelve un middleware Fiber que verifica si la identidad del
// token tiene el módulo activo. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 Forbidden → módulo no contratado o no resoluble.
//   - 503 Service Unavailable → fallo al consultar el módulo.
//   - Si no hay identidad en el contexto, responde 401 (el AuthMiddleware debería haberla puesto).
func RequireModule(moduleCode string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "identidad no encontrada en el token",
			})
		}

		active, err := checker.HasActiveModule(c.Context(), identity, moduleCode)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el módulo, intente más tarde",
			})
		}

		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + moduleCode + "' no está activo para esta organización",
			})
		}

		return c.Next()
	}
}

// RequirePlatformAdmin restringe la ruta a administradores de plataforma.
// Un super admin de cliente también recibe 403: su elevación es local a su
// tenant, nunca de plataforma.
func RequirePlatformAdmin(resolver accessResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "identidad no encontrada en el token",
			})
		}
		res := resolver.Resolve(c.Context(), identity)
		if res.Tier != access.TierPlatformSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requiere administración de plataforma",
			})
		}
		return c.Next()
	}
}
