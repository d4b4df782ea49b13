package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// fakeGrants simula el backend de entitlements: una secuencia de mapas, uno
// por lectura, para poder distinguir la lectura inicial de la relectura
// posterior a la resincronización.
type fakeGrants struct {
	responses []access.GrantMap
	err       error
	calls     int
}

func (f *fakeGrants) FetchGrantMap(ctx context.Context, entrepriseID string) (access.GrantMap, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, nil
	}
	m := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return m, nil
}

type fakeResync struct {
	err   error
	calls int
}

func (f *fakeResync) RequestResync(ctx context.Context, entrepriseID string) error {
	f.calls++
	return f.err
}

func memberEngine(grants *fakeGrants, resync access.ResyncRequester) *access.Engine {
	signals := &fakeSignals{
		membershipFn: func() (*entity.TenantMembership, error) { return membresia("t-1"), nil },
	}
	return access.NewEngine(
		access.NewClassifier(signals, signals, signals, signals, signals, nil, nil),
		grants, resync, access.DefaultCatalog(), nil, nil,
	)
}

func TestResolveAccess_IdentidadAnonima(t *testing.T) {
	grants := &fakeGrants{}
	e := memberEngine(grants, nil)

	res := e.ResolveAccess(context.Background(), nil)

	assert.Equal(t, access.TierUnauthenticated, res.Tier)
	assert.ElementsMatch(t, access.Baseline(), res.ActiveModules.IDs())
	assert.Zero(t, grants.calls, "un anónimo no tiene tenant que consultar")
}

// El admin de plataforma jamás toca el backend de entitlements: su conjunto es
// el catálogo completo por definición.
func TestResolveAccess_PlataformaSinLecturaDeGrants(t *testing.T) {
	grants := &fakeGrants{}
	signals := &fakeSignals{
		privilegeFn: func() (bool, error) { return true, nil },
	}
	e := access.NewEngine(
		access.NewClassifier(signals, signals, signals, signals, signals, nil, nil),
		grants, nil, access.DefaultCatalog(), nil, nil,
	)

	res := e.ResolveAccess(context.Background(), testIdentity)

	assert.Equal(t, access.TierPlatformSuperAdmin, res.Tier)
	assert.Len(t, res.ActiveModules, len(access.DefaultCatalog().IDs()))
	assert.Zero(t, grants.calls)
}

func TestResolveAccess_MiembroConGrants(t *testing.T) {
	grants := &fakeGrants{responses: []access.GrantMap{{"crm": true, "paie": "true"}}}
	resync := &fakeResync{}
	e := memberEngine(grants, resync)

	res := e.ResolveAccess(context.Background(), testIdentity)

	assert.Equal(t, access.TierClientMember, res.Tier)
	assert.True(t, res.ActiveModules.Has("crm"))
	assert.True(t, res.ActiveModules.Has("paie"))
	assert.Zero(t, resync.calls, "un conjunto no escaso no dispara resync")
	assert.Equal(t, 1, grants.calls)
}

// Mapa escaso: una única resincronización, relectura y re-resolución. El
// segundo mapa trae los módulos del plan.
func TestResolveAccess_EscasoResincronizaUnaVez(t *testing.T) {
	grants := &fakeGrants{responses: []access.GrantMap{
		{},
		{"crm": true, "gestion-stock": true},
	}}
	resync := &fakeResync{}
	e := memberEngine(grants, resync)

	res := e.ResolveAccess(context.Background(), testIdentity)

	assert.Equal(t, 1, resync.calls)
	assert.Equal(t, 2, grants.calls)
	assert.True(t, res.ActiveModules.Has("crm"))
	assert.True(t, res.ActiveModules.Has("gestion-stock"))
}

// Si tras la resincronización el mapa sigue escaso, se acepta el conjunto
// mínimo: nunca hay una segunda resincronización en la misma resolución.
func TestResolveAccess_SigueEscasoAcepta(t *testing.T) {
	grants := &fakeGrants{responses: []access.GrantMap{{}, {}}}
	resync := &fakeResync{}
	e := memberEngine(grants, resync)

	res := e.ResolveAccess(context.Background(), testIdentity)

	assert.Equal(t, 1, resync.calls)
	assert.ElementsMatch(t, access.Baseline(), res.ActiveModules.IDs())
}

// Resincronización fallida: sin relectura, se entrega el conjunto mínimo.
func TestResolveAccess_ResyncFallidoEntregaMinimo(t *testing.T) {
	grants := &fakeGrants{responses: []access.GrantMap{{}}}
	resync := &fakeResync{err: errors.New("suscripciones caído")}
	e := memberEngine(grants, resync)

	res := e.ResolveAccess(context.Background(), testIdentity)

	assert.Equal(t, 1, resync.calls)
	assert.Equal(t, 1, grants.calls, "sin resync exitoso no hay relectura")
	assert.ElementsMatch(t, access.Baseline(), res.ActiveModules.IDs())
}

// Resincronización deshabilitada (requester nil): el guard de escasez no hace
// nada y el conjunto mínimo se entrega tal cual.
func TestResolveAccess_ResyncDeshabilitado(t *testing.T) {
	grants := &fakeGrants{responses: []access.GrantMap{{}}}
	e := memberEngine(grants, nil)

	res := e.ResolveAccess(context.Background(), testIdentity)

	assert.Equal(t, 1, grants.calls)
	assert.ElementsMatch(t, access.Baseline(), res.ActiveModules.IDs())
}

// La lectura del grant map falla: se resuelve con mapa vacío, nunca se
// propaga el error al consumidor.
func TestResolveAccess_LecturaFallidaDegrada(t *testing.T) {
	grants := &fakeGrants{err: errors.New("timeout")}
	resync := &fakeResync{}
	e := memberEngine(grants, resync)

	res := e.ResolveAccess(context.Background(), testIdentity)

	assert.Equal(t, access.TierClientMember, res.Tier)
	assertBaseline(t, res.ActiveModules)
	// El mapa vacío es escaso, así que el guard sí intenta la resincronización.
	assert.Equal(t, 1, resync.calls)
}
