package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// Asegura que MembershipRepo implementa el puerto de persistencia.
var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL.
// También sirve de MembershipSource para el clasificador: la búsqueda por
// usuario devuelve (nil, nil) cuando no hay fila, que es la señal "identidad
// sin tenant".
type MembershipRepo struct {
	q querier
}

// NewMembershipRepository construye el adaptador de membresías.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepo {
	return &MembershipRepo{q: pool}
}

func newMembershipRepoTx(q querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create persiste una membresía. El constraint único sobre user_id garantiza
// la invariante "una identidad nunca pertenece a más de un tenant".
func (r *MembershipRepo) Create(ctx context.Context, m *entity.TenantMembership) error {
	query := `
		INSERT INTO tenant_memberships (id, user_id, entreprise_id, client_id, super_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.EntrepriseID, m.ClientID, m.SuperAdmin,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyMember
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// GetByUserID busca la membresía de un usuario. (nil, nil) si no tiene.
func (r *MembershipRepo) GetByUserID(ctx context.Context, userID string) (*entity.TenantMembership, error) {
	query := `
		SELECT id, user_id, entreprise_id, client_id, super_admin, created_at, updated_at
		FROM tenant_memberships WHERE user_id = $1`
	var m entity.TenantMembership
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&m.ID, &m.UserID, &m.EntrepriseID, &m.ClientID, &m.SuperAdmin,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListUserIDsByEntreprise devuelve los ids de los miembros de una organización
// (lo usa la invalidación de cache tras una resincronización forzada).
func (r *MembershipRepo) ListUserIDsByEntreprise(ctx context.Context, entrepriseID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT user_id FROM tenant_memberships WHERE entreprise_id = $1`, entrepriseID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteByUserID revoca la membresía de un usuario.
func (r *MembershipRepo) DeleteByUserID(ctx context.Context, userID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM tenant_memberships WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LookupMembership implementa access.MembershipSource (paso 2 del clasificador).
func (r *MembershipRepo) LookupMembership(ctx context.Context, userID string) (*entity.TenantMembership, error) {
	return r.GetByUserID(ctx, userID)
}
