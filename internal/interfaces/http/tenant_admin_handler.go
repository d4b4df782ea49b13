package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/provision"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
	"github.com/tu-usuario/gestion-pro/internal/domain"
)

// TenantAdminHandler rutas de administración de plataforma sobre tenants.
type TenantAdminHandler struct {
	uc        *usecase.TenantAdminUseCase
	provision *provision.ProvisionUseCase
}

// NewTenantAdminHandler construye el handler de administración de tenants.
func NewTenantAdminHandler(uc *usecase.TenantAdminUseCase, prov *provision.ProvisionUseCase) *TenantAdminHandler {
	return &TenantAdminHandler{uc: uc, provision: prov}
}

// List godoc
// @Summary      Listar organizaciones
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.TenantResponse
// @Router       /api/admin/tenants [get]
func (h *TenantAdminHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()
	tenants, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(tenants)
}

// GrantMap godoc
// @Summary      Mapa de módulos crudo de un tenant
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.GrantMapResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/modules [get]
func (h *TenantAdminHandler) GrantMap(c *fiber.Ctx) error {
	out, err := h.uc.GrantMap(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrTenantNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "la organización no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Subscription godoc
// @Summary      Suscripción y plan de un tenant
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/subscription [get]
func (h *TenantAdminHandler) Subscription(c *fiber.Ctx) error {
	out, err := h.uc.Subscription(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrSubscriptionNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SUBSCRIPTION_NOT_FOUND", Message: "la organización no tiene suscripción"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Resync godoc
// @Summary      Forzar resincronización del mapa de módulos
// @Tags         admin
// @Produce      json
// @Success      202
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/tenants/{id}/resync [post]
func (h *TenantAdminHandler) Resync(c *fiber.Ctx) error {
	if err := h.uc.ForceResync(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrTenantNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "la organización no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ProvisionMember godoc
// @Summary      Aprovisionar cuenta de miembro
// @Tags         admin
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.MemberResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/members [post]
func (h *TenantAdminHandler) ProvisionMember(c *fiber.Ctx) error {
	var in dto.ProvisionMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.EntrepriseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password y entreprise_id son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	out, err := h.provision.ProvisionMember(c.Context(), in)
	if err != nil {
		switch err {
		case domain.ErrEmailAlreadyExists:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		case domain.ErrAlreadyMember:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_MEMBER", Message: "el usuario ya pertenece a una organización"})
		case domain.ErrTenantNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "la organización no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
