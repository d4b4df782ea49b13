package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// MembershipRepository puerto de persistencia para TenantMembership.
// GetByUserID devuelve (nil, nil) cuando el usuario no tiene membresía: la
// ausencia es una respuesta válida, no un error.
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.TenantMembership) error
	GetByUserID(ctx context.Context, userID string) (*entity.TenantMembership, error)
	ListUserIDsByEntreprise(ctx context.Context, entrepriseID string) ([]string, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
