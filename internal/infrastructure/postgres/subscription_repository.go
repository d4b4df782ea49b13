package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo lectura de suscripciones y planes. Los precios son NUMERIC
// y llegan como shopspring/decimal vía el codec registrado en el pool.
type SubscriptionRepo struct {
	q querier
}

// NewSubscriptionRepository construye el adaptador de suscripciones.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{q: pool}
}

// GetByEntreprise devuelve la suscripción de una organización. (nil, nil) si no tiene.
func (r *SubscriptionRepo) GetByEntreprise(ctx context.Context, entrepriseID string) (*entity.Subscription, error) {
	query := `
		SELECT id, entreprise_id, plan_code, monthly_price, status, expires_at, created_at, updated_at
		FROM subscriptions WHERE entreprise_id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, entrepriseID).Scan(
		&s.ID, &s.EntrepriseID, &s.PlanCode, &s.MonthlyPrice, &s.Status,
		&s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}

// GetPlan devuelve un plan comercial por código. (nil, nil) si no existe.
func (r *SubscriptionRepo) GetPlan(ctx context.Context, code string) (*entity.SubscriptionPlan, error) {
	query := `
		SELECT code, name, monthly_price, modules
		FROM subscription_plans WHERE code = $1`
	var p entity.SubscriptionPlan
	err := r.q.QueryRow(ctx, query, code).Scan(
		&p.Code, &p.Name, &p.MonthlyPrice, &p.Modules,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}
