package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entreprise representa una organización/tenant del despliegue multi-tenant.
type Entreprise struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subscription es la suscripción activa de una organización. Es la dueña del
// mapa de módulos: los cambios de plan y la resincronización lo reescriben.
type Subscription struct {
	ID           string
	EntrepriseID string
	PlanCode     string
	MonthlyPrice decimal.Decimal
	Status       string     // active, past_due, cancelled
	ExpiresAt    *time.Time // nil = sin vencimiento
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SubscriptionPlan define qué módulos incluye un plan comercial.
type SubscriptionPlan struct {
	Code         string
	Name         string
	MonthlyPrice decimal.Decimal
	Modules      []string // códigos de módulo incluidos en el plan
}

// ModuleGrant es una fila cruda del mapa de módulos de un tenant. El código es
// texto libre (alias legacy incluidos) y el valor es heterogéneo: bool, string
// o número según la época en que se escribió. El motor lo lee, nunca lo muta.
type ModuleGrant struct {
	EntrepriseID string
	Code         string
	Value        any
	UpdatedAt    time.Time
}
