package usecase

import (
	"context"
	"fmt"

	appaccess "github.com/tu-usuario/gestion-pro/internal/application/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// ModuleService verifica qué módulos tiene activos una identidad.
// Es el único punto de la aplicación que conoce la lógica de activación de
// módulos; todo pasa por el motor de resolución, nunca por consultas sueltas.
type ModuleService struct {
	access *appaccess.AccessUseCase
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(access *appaccess.AccessUseCase) *ModuleService {
	return &ModuleService{access: access}
}

// HasActiveModule informa si la identidad tiene el módulo activo según la
// resolución vigente. Acepta cualquier grafía del código: se lleva al id
// canónico antes de consultar el conjunto. Un código que no existe en el
// catálogo devuelve false (sin error): módulo desconocido equivale a módulo
// no contratado.
func (s *ModuleService) HasActiveModule(ctx context.Context, identity *entity.Identity, moduleCode string) (bool, error) {
	if moduleCode == "" {
		return false, fmt.Errorf("module: moduleCode es obligatorio")
	}
	id, ok := s.access.Catalog().ResolveCode(moduleCode)
	if !ok {
		return false, nil
	}
	res := s.access.Resolve(ctx, identity)
	return res.ActiveModules.Has(id), nil
}
