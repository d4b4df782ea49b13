package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/gestion-pro/internal/domain/access"
)

// Asegura los puertos del clasificador.
var (
	_ access.PrivilegeChecker  = (*RoleDirectory)(nil)
	_ access.EscalationChecker = (*RoleDirectory)(nil)
	_ access.RoleDirectory     = (*RoleDirectory)(nil)
	_ access.AttributeSource   = (*RoleDirectory)(nil)
)

// RoleDirectory adapta los almacenes de señales de rol a los puertos del
// clasificador. Cada método es una consulta independiente: el clasificador
// cuenta con que cualquiera puede fallar por separado.
type RoleDirectory struct {
	q querier
}

// NewRoleDirectory construye el directorio de roles.
func NewRoleDirectory(pool *pgxpool.Pool) *RoleDirectory {
	return &RoleDirectory{q: pool}
}

// CheckPlatformPrivilege — paso 1: pertenencia a la tabla de administradores
// de plataforma. Consulta con el id de la identidad como único parámetro.
func (d *RoleDirectory) CheckPlatformPrivilege(ctx context.Context, userID string) (bool, error) {
	var ok bool
	err := d.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM platform_admins WHERE user_id = $1)`, userID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check platform privilege: %w", err)
	}
	return ok, nil
}

// CheckTenantEscalation — elevación del miembro dentro de su propio tenant.
func (d *RoleDirectory) CheckTenantEscalation(ctx context.Context, userID, tenantID string) (bool, error) {
	var super bool
	err := d.q.QueryRow(ctx,
		`SELECT super_admin FROM tenant_memberships WHERE user_id = $1 AND entreprise_id = $2`,
		userID, tenantID,
	).Scan(&super)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("check tenant escalation: %w", err)
	}
	return super, nil
}

// ConsolidatedRole — paso 3: un solo round trip que combina el privilegio de
// plataforma y el atributo de rol.
func (d *RoleDirectory) ConsolidatedRole(ctx context.Context, userID string) (*access.RoleFlags, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM platform_admins pa WHERE pa.user_id = $1),
			COALESCE(ua.role IN ('admin', 'super_admin'), false),
			COALESCE(ua.role, '')
		FROM (SELECT 1) AS one
		LEFT JOIN user_attributes ua ON ua.user_id = $1`
	var f access.RoleFlags
	err := d.q.QueryRow(ctx, query, userID).Scan(&f.PlatformAdmin, &f.Admin, &f.Role)
	if err != nil {
		return nil, fmt.Errorf("consolidated role lookup: %w", err)
	}
	return &f, nil
}

// RoleAttribute — paso 4: lectura directa del registro de atributos.
// Devuelve "" (sin señal) si no hay fila.
func (d *RoleDirectory) RoleAttribute(ctx context.Context, userID string) (string, error) {
	var role string
	err := d.q.QueryRow(ctx,
		`SELECT COALESCE(role, '') FROM user_attributes WHERE user_id = $1`, userID,
	).Scan(&role)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("role attribute lookup: %w", err)
	}
	return role, nil
}

// ProfileRoleHint — paso 5: pista de rol autoreportada en los metadatos de
// perfil. La menos confiable de todas las señales.
func (d *RoleDirectory) ProfileRoleHint(ctx context.Context, userID string) (string, error) {
	var role string
	err := d.q.QueryRow(ctx,
		`SELECT COALESCE(profile ->> 'role', '') FROM user_attributes WHERE user_id = $1`, userID,
	).Scan(&role)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("profile role hint lookup: %w", err)
	}
	return role, nil
}
