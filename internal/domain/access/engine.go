package access

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
)

// GrantSource lee el mapa de módulos de un tenant. Instantánea de solo
// lectura durante una resolución.
type GrantSource interface {
	FetchGrantMap(ctx context.Context, entrepriseID string) (GrantMap, error)
}

// ResyncRequester pide al colaborador dueño de la suscripción que reescriba el
// mapa de módulos del tenant desde su plan activo. Idempotente del lado del
// servidor: llamarlo repetido es seguro.
type ResyncRequester interface {
	RequestResync(ctx context.Context, entrepriseID string) error
}

// Result es el artefacto que el motor entrega al consumidor: el tier y el
// conjunto de módulos activos. Se recalcula entero en cada resolución.
type Result struct {
	Tier          Tier
	ActiveModules ModuleSet
}

// Engine es el punto de entrada público del motor: clasifica la identidad,
// lee el grant map de su tenant y resuelve el conjunto activo, con el guard de
// escasez y una única resincronización acotada por llamada.
type Engine struct {
	classifier *Classifier
	grants     GrantSource
	resync     ResyncRequester
	catalog    *Catalog
	log        *logger.Logger
	metrics    Recorder
}

// NewEngine construye el motor. resync puede ser nil (resincronización
// deshabilitada); log y metrics pueden ser nil.
func NewEngine(
	classifier *Classifier,
	grants GrantSource,
	resync ResyncRequester,
	catalog *Catalog,
	log *logger.Logger,
	metrics Recorder,
) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &Engine{
		classifier: classifier,
		grants:     grants,
		resync:     resync,
		catalog:    catalog,
		log:        log,
		metrics:    metrics,
	}
}

// Catalog expone el catálogo con el que resuelve el motor (lo necesita el
// filtro de navegación).
func (e *Engine) Catalog() *Catalog { return e.catalog }

// ResolveAccess clasifica la identidad y resuelve su conjunto de módulos.
// Nunca devuelve error: un backend de entitlements roto degrada la experiencia
// (menos módulos visibles), jamás rompe la navegación.
func (e *Engine) ResolveAccess(ctx context.Context, identity *entity.Identity) Result {
	cls := e.classifier.Classify(ctx, identity)
	res := Result{Tier: cls.Tier}

	switch {
	case cls.Tier == TierPlatformSuperAdmin:
		res.ActiveModules = Resolve(cls.Tier, nil, e.catalog)
	case cls.Tier.IsTenant():
		res.ActiveModules = e.resolveTenant(ctx, cls)
	default:
		res.ActiveModules = Resolve(TierUnauthenticated, nil, e.catalog)
	}

	e.metrics.Resolution(res.Tier)
	return res
}

// resolveTenant aplica el flujo de tenant con el disparador de deriva: si el
// grant map interpretado no aporta ningún módulo de pago, se pide UNA sola
// resincronización, se relee el mapa y se re-resuelve una vez. En fallo, o si
// sigue escaso, se acepta el resultado mínimo: reintentar sin límite sería una
// tormenta de syncs, y el usuario ya tiene una experiencia funcional.
func (e *Engine) resolveTenant(ctx context.Context, cls Classification) ModuleSet {
	tenantID := cls.Membership.EntrepriseID
	grants := e.fetchGrants(ctx, tenantID)
	set := Resolve(cls.Tier, grants, e.catalog)
	if !IsSparse(set) || e.resync == nil {
		return set
	}

	e.log.Info().Str("entreprise_id", tenantID).
		Msg("grant map escaso, se solicita resincronización")
	if err := e.resync.RequestResync(ctx, tenantID); err != nil {
		e.log.Warn().Err(err).Str("entreprise_id", tenantID).
			Msg("resincronización falló, se acepta el conjunto mínimo")
		e.metrics.Resync(ResyncFailed)
		return set
	}
	e.metrics.Resync(ResyncOK)

	grants = e.fetchGrants(ctx, tenantID)
	return Resolve(cls.Tier, grants, e.catalog)
}

func (e *Engine) fetchGrants(ctx context.Context, tenantID string) GrantMap {
	grants, err := e.grants.FetchGrantMap(ctx, tenantID)
	if err != nil {
		e.log.Warn().Err(err).Str("entreprise_id", tenantID).
			Msg("lectura del grant map falló, se resuelve con mapa vacío")
		return nil
	}
	return grants
}
