package usecase

import (
	"context"

	appaccess "github.com/tu-usuario/gestion-pro/internal/application/access"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// NavigationUseCase arma la navegación visible de una identidad aplicando el
// filtro de visibilidad sobre el acceso resuelto.
type NavigationUseCase struct {
	access *appaccess.AccessUseCase
}

// NewNavigationUseCase construye el caso de uso de navegación.
func NewNavigationUseCase(access *appaccess.AccessUseCase) *NavigationUseCase {
	return &NavigationUseCase{access: access}
}

// ResolveAccess devuelve el acceso resuelto como DTO (tier + módulos activos).
func (uc *NavigationUseCase) ResolveAccess(ctx context.Context, identity *entity.Identity) dto.AccessResponse {
	res := uc.access.Resolve(ctx, identity)
	return dto.AccessResponse{
		Tier:          string(res.Tier),
		ActiveModules: res.ActiveModules.IDs(),
	}
}

// VisibleItems devuelve los elementos de navegación visibles para la
// identidad: (no platform-only y activo) o tier de admin de plataforma.
func (uc *NavigationUseCase) VisibleItems(ctx context.Context, identity *entity.Identity) []dto.NavItemResponse {
	res := uc.access.Resolve(ctx, identity)
	items := access.VisibleItems(uc.access.Catalog(), res)
	out := make([]dto.NavItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NavItemResponse{ID: it.ID, Label: it.Label, PlatformOnly: it.PlatformOnly})
	}
	return out
}
