package repository

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// EntrepriseRepository puerto de persistencia para organizaciones (tenants).
type EntrepriseRepository interface {
	Create(ctx context.Context, e *entity.Entreprise) error
	GetByID(ctx context.Context, id string) (*entity.Entreprise, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Entreprise, error)
}

// ModuleGrantRepository puerto sobre el mapa de módulos de un tenant y su
// resincronización desde la suscripción. Resync es idempotente: reescribe las
// filas de entreprise_modules a partir de los módulos del plan activo.
type ModuleGrantRepository interface {
	FetchGrantMap(ctx context.Context, entrepriseID string) (access.GrantMap, error)
	Resync(ctx context.Context, entrepriseID string) error
}

// SubscriptionRepository puerto de lectura de suscripciones y planes.
type SubscriptionRepository interface {
	GetByEntreprise(ctx context.Context, entrepriseID string) (*entity.Subscription, error)
	GetPlan(ctx context.Context, code string) (*entity.SubscriptionPlan, error)
}
