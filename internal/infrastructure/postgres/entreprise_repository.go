package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// Asegura los puertos implementados.
var (
	_ repository.EntrepriseRepository  = (*EntrepriseRepo)(nil)
	_ repository.ModuleGrantRepository = (*EntrepriseRepo)(nil)
	_ access.GrantSource               = (*EntrepriseRepo)(nil)
	_ access.ResyncRequester           = (*EntrepriseRepo)(nil)
)

// EntrepriseRepo persistencia de organizaciones, su mapa de módulos y la
// resincronización server-side desde la suscripción activa.
type EntrepriseRepo struct {
	q querier
}

// NewEntrepriseRepository construye el adaptador de organizaciones.
func NewEntrepriseRepository(pool *pgxpool.Pool) *EntrepriseRepo {
	return &EntrepriseRepo{q: pool}
}

// Create persiste una nueva organización.
func (r *EntrepriseRepo) Create(ctx context.Context, e *entity.Entreprise) error {
	query := `
		INSERT INTO entreprises (id, name, email, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Name, e.Email, e.Phone, e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert entreprise: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID. (nil, nil) si no existe.
func (r *EntrepriseRepo) GetByID(ctx context.Context, id string) (*entity.Entreprise, error) {
	query := `
		SELECT id, name, email, phone, status, created_at, updated_at
		FROM entreprises WHERE id = $1`
	var e entity.Entreprise
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Email, &e.Phone, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entreprise: %w", err)
	}
	return &e, nil
}

// List lista organizaciones con paginación.
func (r *EntrepriseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Entreprise, error) {
	query := `
		SELECT id, name, email, phone, status, created_at, updated_at
		FROM entreprises ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entreprises: %w", err)
	}
	defer rows.Close()

	var out []*entity.Entreprise
	for rows.Next() {
		var e entity.Entreprise
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entreprise: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// FetchGrantMap lee el mapa de módulos crudo del tenant. Los valores vienen de
// una columna JSONB escrita por varias generaciones del producto: bool, string
// o número según la fila. Se decodifican a `any` y la heterogeneidad se
// interpreta en un único sitio (access.IsGranted).
func (r *EntrepriseRepo) FetchGrantMap(ctx context.Context, entrepriseID string) (access.GrantMap, error) {
	query := `SELECT code, value FROM entreprise_modules WHERE entreprise_id = $1`
	rows, err := r.q.Query(ctx, query, entrepriseID)
	if err != nil {
		return nil, fmt.Errorf("fetch grant map: %w", err)
	}
	defer rows.Close()

	grants := make(access.GrantMap)
	for rows.Next() {
		var code string
		var raw []byte
		if err := rows.Scan(&code, &raw); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			// Fila corrupta: se omite en vez de tumbar la resolución entera.
			continue
		}
		grants[code] = value
	}
	return grants, rows.Err()
}

// Resync reescribe el mapa de módulos del tenant desde los módulos de su plan
// activo. Una sola sentencia idempotente: solo añade o reafirma grants, nunca
// borra — el guard de escasez solo ensancha.
func (r *EntrepriseRepo) Resync(ctx context.Context, entrepriseID string) error {
	query := `
		INSERT INTO entreprise_modules (entreprise_id, code, value, updated_at)
		SELECT s.entreprise_id, m.code, to_jsonb(true), now()
		FROM subscriptions s
		JOIN subscription_plans p ON p.code = s.plan_code
		CROSS JOIN LATERAL unnest(p.modules) AS m(code)
		WHERE s.entreprise_id = $1 AND s.status = 'active'
		ON CONFLICT (entreprise_id, code)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err := r.q.Exec(ctx, query, entrepriseID)
	if err != nil {
		return fmt.Errorf("resync modules: %w", err)
	}
	return nil
}

// RequestResync implementa access.ResyncRequester delegando en Resync.
func (r *EntrepriseRepo) RequestResync(ctx context.Context, entrepriseID string) error {
	return r.Resync(ctx, entrepriseID)
}
