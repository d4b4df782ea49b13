package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
)

// AccessHandler expone el acceso resuelto y la navegación filtrada.
type AccessHandler struct {
	nav *usecase.NavigationUseCase
}

// NewAccessHandler construye el handler de acceso.
func NewAccessHandler(nav *usecase.NavigationUseCase) *AccessHandler {
	return &AccessHandler{nav: nav}
}

// Resolve godoc
// @Summary      Acceso resuelto de la identidad actual
// @Tags         access
// @Produce      json
// @Success      200  {object}  dto.AccessResponse
// @Router       /api/access [get]
func (h *AccessHandler) Resolve(c *fiber.Ctx) error {
	// Identidad nil es válida: resuelve a unauthenticated + línea base.
	return c.JSON(h.nav.ResolveAccess(c.Context(), GetIdentity(c)))
}

// Navigation godoc
// @Summary      Navegación visible para la identidad actual
// @Tags         access
// @Produce      json
// @Success      200  {array}  dto.NavItemResponse
// @Router       /api/navigation [get]
func (h *AccessHandler) Navigation(c *fiber.Ctx) error {
	return c.JSON(h.nav.VisibleItems(c.Context(), GetIdentity(c)))
}
