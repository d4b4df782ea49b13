package access

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
)

// Puertos del clasificador. Cada uno es una consulta remota independiente que
// puede fallar por su cuenta (endpoint no desplegado, backend caído); el
// clasificador trata todo fallo como "sin señal", nunca como fatal.

// PrivilegeChecker consulta el privilegio de plataforma de una identidad.
type PrivilegeChecker interface {
	CheckPlatformPrivilege(ctx context.Context, userID string) (bool, error)
}

// MembershipSource busca la membresía de tenant de una identidad.
// (nil, nil) significa "sin membresía", no es un error.
type MembershipSource interface {
	LookupMembership(ctx context.Context, userID string) (*entity.TenantMembership, error)
}

// EscalationChecker consulta la elevación de un miembro dentro de su tenant.
type EscalationChecker interface {
	CheckTenantEscalation(ctx context.Context, userID, tenantID string) (bool, error)
}

// RoleFlags es la respuesta de la consulta consolidada de rol.
type RoleFlags struct {
	PlatformAdmin bool
	Admin         bool
	Role          string
}

// RoleDirectory hace la consulta consolidada de rol en un solo round trip.
type RoleDirectory interface {
	ConsolidatedRole(ctx context.Context, userID string) (*RoleFlags, error)
}

// AttributeSource lee señales de rol de los almacenes de último recurso:
// el registro de atributos de la identidad y, menos confiable aún, los
// metadatos de perfil autoreportados.
type AttributeSource interface {
	RoleAttribute(ctx context.Context, userID string) (string, error)
	ProfileRoleHint(ctx context.Context, userID string) (string, error)
}

// Classification es la salida del clasificador: el tier y, para tiers de
// tenant, la membresía que lo determinó.
type Classification struct {
	Tier       Tier
	Membership *entity.TenantMembership
}

// Classifier determina el tier de una identidad mediante una cadena ordenada
// de consultas, cada una intentada solo si la anterior fue inconclusa.
// Estrictamente secuencial: un resultado afirmativo temprano corta barato y
// las lecturas son idempotentes y sin efectos, así que el orden es solo una
// cuestión de latencia y confianza decreciente.
type Classifier struct {
	privileges  PrivilegeChecker
	memberships MembershipSource
	escalations EscalationChecker
	directory   RoleDirectory
	attributes  AttributeSource
	log         *logger.Logger
	metrics     Recorder
}

// NewClassifier construye el clasificador. log y metrics pueden ser nil.
func NewClassifier(
	privileges PrivilegeChecker,
	memberships MembershipSource,
	escalations EscalationChecker,
	directory RoleDirectory,
	attributes AttributeSource,
	log *logger.Logger,
	metrics Recorder,
) *Classifier {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &Classifier{
		privileges:  privileges,
		memberships: memberships,
		escalations: escalations,
		directory:   directory,
		attributes:  attributes,
		log:         log,
		metrics:     metrics,
	}
}

// step es un eslabón de la cadena: devuelve (clasificación, concluyente, error).
// Un error se registra y se trata igual que "inconcluso".
type step struct {
	name string
	run  func(ctx context.Context) (Classification, bool, error)
}

// Classify resuelve el tier de la identidad. Nunca devuelve error: el peor
// caso de un backend roto es sub-privilegiar (cae a Unauthenticated/baseline),
// jamás sobre-privilegiar por una ruta de error.
func (c *Classifier) Classify(ctx context.Context, identity *entity.Identity) Classification {
	if identity == nil || identity.ID == "" {
		return Classification{Tier: TierUnauthenticated}
	}

	steps := []step{
		{name: "platform_privilege", run: func(ctx context.Context) (Classification, bool, error) {
			return c.platformPrivilege(ctx, identity.ID)
		}},
		{name: "tenant_membership", run: func(ctx context.Context) (Classification, bool, error) {
			return c.tenantMembership(ctx, identity.ID)
		}},
		{name: "consolidated_role", run: func(ctx context.Context) (Classification, bool, error) {
			return c.consolidatedRole(ctx, identity.ID)
		}},
		{name: "role_attribute", run: func(ctx context.Context) (Classification, bool, error) {
			return c.roleAttribute(ctx, identity.ID)
		}},
		{name: "profile_hint", run: func(ctx context.Context) (Classification, bool, error) {
			return c.profileHint(ctx, identity.ID)
		}},
	}

	for _, s := range steps {
		res, conclusive, err := s.run(ctx)
		if err != nil {
			c.log.Warn().Err(err).Str("step", s.name).Str("user_id", identity.ID).
				Msg("paso del clasificador falló, se continúa con el siguiente")
			c.metrics.ClassifierStep(s.name, StepError)
			continue
		}
		if conclusive {
			c.metrics.ClassifierStep(s.name, StepConclusive)
			return res
		}
		c.metrics.ClassifierStep(s.name, StepInconclusive)
	}

	// Cadena agotada sin membresía ni señal de plataforma: no se asume
	// ClientMember; se degrada a "desconocido" y el resolver entregará solo
	// la línea base.
	return Classification{Tier: TierUnauthenticated}
}

// platformPrivilege — paso 1: consulta de privilegio de plataforma. Solo un
// true afirmativo concluye; false es "sin señal" (la ausencia del privilegio
// no dice nada sobre la membresía).
func (c *Classifier) platformPrivilege(ctx context.Context, userID string) (Classification, bool, error) {
	ok, err := c.privileges.CheckPlatformPrivilege(ctx, userID)
	if err != nil {
		return Classification{}, false, err
	}
	if ok {
		return Classification{Tier: TierPlatformSuperAdmin}, true, nil
	}
	return Classification{}, false, nil
}

// tenantMembership — paso 2: la existencia de la fila de membresía es prueba
// definitiva de que la identidad NO es de plataforma, así que concluye con
// cualquier resultado del chequeo de elevación. Si la elevación falla se
// degrada a miembro ordinario (sub-privilegio, nunca sobre-privilegio).
func (c *Classifier) tenantMembership(ctx context.Context, userID string) (Classification, bool, error) {
	m, err := c.memberships.LookupMembership(ctx, userID)
	if err != nil {
		return Classification{}, false, err
	}
	if m == nil {
		return Classification{}, false, nil
	}
	super, err := c.escalations.CheckTenantEscalation(ctx, userID, m.EntrepriseID)
	if err != nil {
		c.log.Warn().Err(err).Str("user_id", userID).Str("entreprise_id", m.EntrepriseID).
			Msg("chequeo de elevación falló, se asume miembro ordinario")
		super = false
	}
	tier := TierClientMember
	if super {
		tier = TierClientSuperAdmin
	}
	return Classification{Tier: tier, Membership: m}, true, nil
}

// consolidatedRole — paso 3: un solo round trip que sustituye a los pasos 4-5
// cuando el endpoint está desplegado. Para identidades sin tenant no existe la
// distinción "super admin de cliente": cualquier flag elevado cuenta como
// admin de plataforma a efectos de navegación.
func (c *Classifier) consolidatedRole(ctx context.Context, userID string) (Classification, bool, error) {
	flags, err := c.directory.ConsolidatedRole(ctx, userID)
	if err != nil {
		return Classification{}, false, err
	}
	if flags == nil {
		return Classification{}, false, nil
	}
	if flags.PlatformAdmin || flags.Admin || isAdminRole(flags.Role) {
		return Classification{Tier: TierPlatformSuperAdmin}, true, nil
	}
	return Classification{}, false, nil
}

// roleAttribute — paso 4: lectura directa del almacén de atributos.
func (c *Classifier) roleAttribute(ctx context.Context, userID string) (Classification, bool, error) {
	role, err := c.attributes.RoleAttribute(ctx, userID)
	if err != nil {
		return Classification{}, false, err
	}
	if isAdminRole(role) {
		return Classification{Tier: TierPlatformSuperAdmin}, true, nil
	}
	return Classification{}, false, nil
}

// profileHint — paso 5: metadatos del propio perfil, autoreportados y por
// tanto los menos confiables; por eso van al final de la cadena.
func (c *Classifier) profileHint(ctx context.Context, userID string) (Classification, bool, error) {
	role, err := c.attributes.ProfileRoleHint(ctx, userID)
	if err != nil {
		return Classification{}, false, err
	}
	if isAdminRole(role) {
		return Classification{Tier: TierPlatformSuperAdmin}, true, nil
	}
	return Classification{}, false, nil
}

func isAdminRole(role string) bool {
	return role == "super_admin" || role == "admin"
}
