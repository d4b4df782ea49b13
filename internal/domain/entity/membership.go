package entity

import "time"

// TenantMembership vincula un User con exactamente una organización (tenant).
// Su sola existencia es el discriminador entre identidad de plataforma e
// identidad de miembro: una identidad nunca pertenece a más de un tenant.
// Se crea al aprovisionar la cuenta (p. ej. tras la compra de una suscripción)
// y se destruye al revocar la membresía.
type TenantMembership struct {
	ID           string
	UserID       string
	EntrepriseID string // id del tenant (nombre histórico del campo en el frontend)
	ClientID     string // registro de cliente asociado a la organización
	SuperAdmin   bool   // super admin del propio tenant, nunca de la plataforma
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
