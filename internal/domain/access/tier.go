// Package access implementa el motor de resolución de acceso a módulos:
// clasificación de rol, normalización de códigos, interpretación de grants y
// resolución del conjunto de módulos activos de una identidad.
package access

// Tier es el nivel de acceso de una identidad. Enumeración cerrada, mutuamente
// excluyente, resuelta en fresco en cada navegación relevante — nunca se
// persiste ni se guarda en el token.
type Tier string

const (
	// TierPlatformSuperAdmin administra todos los tenants. Por construcción
	// nunca tiene TenantMembership.
	TierPlatformSuperAdmin Tier = "platform_super_admin"
	// TierClientSuperAdmin miembro con privilegios elevados dentro de su
	// propio tenant, y solo ahí.
	TierClientSuperAdmin Tier = "client_super_admin"
	// TierClientMember miembro ordinario de un tenant.
	TierClientMember Tier = "client_member"
	// TierUnauthenticated sin identidad o clasificación agotada sin señal.
	TierUnauthenticated Tier = "unauthenticated"
)

// IsTenant informa si el tier corresponde a un miembro de organización.
func (t Tier) IsTenant() bool {
	return t == TierClientSuperAdmin || t == TierClientMember
}
