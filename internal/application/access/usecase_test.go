package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appaccess "github.com/tu-usuario/gestion-pro/internal/application/access"
	domaccess "github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/infrastructure/cache"
)

// memoryCache cache en memoria para los tests, misma semántica que Redis:
// miss explícito con ErrCacheMiss.
type memoryCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// brokenCache falla en todas las operaciones: el caso de uso debe degradar a
// resolución en fresco sin propagar el error.
type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("redis caído")
}

func (brokenCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("redis caído")
}

func (brokenCache) Delete(ctx context.Context, key string) error {
	return errors.New("redis caído")
}

// signals mínimas para un motor de miembro de tenant con grants fijos.
type memberSignals struct{}

func (memberSignals) CheckPlatformPrivilege(ctx context.Context, userID string) (bool, error) {
	return false, nil
}

func (memberSignals) LookupMembership(ctx context.Context, userID string) (*entity.TenantMembership, error) {
	return &entity.TenantMembership{ID: "m-1", UserID: userID, EntrepriseID: "t-1", ClientID: "c-1"}, nil
}

func (memberSignals) CheckTenantEscalation(ctx context.Context, userID, tenantID string) (bool, error) {
	return false, nil
}

func (memberSignals) ConsolidatedRole(ctx context.Context, userID string) (*domaccess.RoleFlags, error) {
	return nil, nil
}

func (memberSignals) RoleAttribute(ctx context.Context, userID string) (string, error) {
	return "", nil
}

func (memberSignals) ProfileRoleHint(ctx context.Context, userID string) (string, error) {
	return "", nil
}

type countingGrants struct {
	grants domaccess.GrantMap
	calls  int
}

func (g *countingGrants) FetchGrantMap(ctx context.Context, entrepriseID string) (domaccess.GrantMap, error) {
	g.calls++
	return g.grants, nil
}

func newUseCase(c cache.Cache, grants *countingGrants) *appaccess.AccessUseCase {
	s := memberSignals{}
	engine := domaccess.NewEngine(
		domaccess.NewClassifier(s, s, s, s, s, nil, nil),
		grants, nil, domaccess.DefaultCatalog(), nil, nil,
	)
	return appaccess.NewAccessUseCase(engine, c, 5*time.Minute, nil)
}

var ana = &entity.Identity{ID: "u-1", Email: "ana@ejemplo.com"}

func TestResolve_SegundaLecturaDesdeCache(t *testing.T) {
	mem := newMemoryCache()
	grants := &countingGrants{grants: domaccess.GrantMap{"crm": true}}
	uc := newUseCase(mem, grants)

	first := uc.Resolve(context.Background(), ana)
	second := uc.Resolve(context.Background(), ana)

	assert.Equal(t, first.Tier, second.Tier)
	assert.ElementsMatch(t, first.ActiveModules.IDs(), second.ActiveModules.IDs())
	assert.Equal(t, 1, grants.calls, "la segunda lectura debe salir del cache")
	assert.Equal(t, 1, mem.sets)
}

func TestResolve_InvalidateFuerzaFresco(t *testing.T) {
	mem := newMemoryCache()
	grants := &countingGrants{grants: domaccess.GrantMap{"crm": true}}
	uc := newUseCase(mem, grants)

	uc.Resolve(context.Background(), ana)
	uc.Invalidate(context.Background(), ana.ID)

	// Los grants cambiaron entre medias: la invalidación debe hacerlos visibles.
	grants.grants = domaccess.GrantMap{"crm": true, "paie": true}
	res := uc.Resolve(context.Background(), ana)

	assert.True(t, res.ActiveModules.Has("paie"))
	assert.Equal(t, 2, grants.calls)
}

func TestResolve_SinCacheSiempreFresco(t *testing.T) {
	grants := &countingGrants{grants: domaccess.GrantMap{"crm": true}}
	uc := newUseCase(nil, grants)

	uc.Resolve(context.Background(), ana)
	uc.Resolve(context.Background(), ana)

	assert.Equal(t, 2, grants.calls)
}

func TestResolve_CacheRotoDegradaAFresco(t *testing.T) {
	grants := &countingGrants{grants: domaccess.GrantMap{"crm": true}}
	uc := newUseCase(brokenCache{}, grants)

	res := uc.Resolve(context.Background(), ana)

	assert.Equal(t, domaccess.TierClientMember, res.Tier)
	assert.True(t, res.ActiveModules.Has("crm"))
}

func TestResolve_AnonimoNoTocaElCache(t *testing.T) {
	mem := newMemoryCache()
	grants := &countingGrants{}
	uc := newUseCase(mem, grants)

	res := uc.Resolve(context.Background(), nil)

	assert.Equal(t, domaccess.TierUnauthenticated, res.Tier)
	assert.Zero(t, mem.gets)
	assert.Zero(t, mem.sets)
}

// Un dato corrupto en el cache se trata como miss: resolución en fresco y
// reescritura de la proyección.
func TestResolve_CacheCorruptoSeIgnora(t *testing.T) {
	mem := newMemoryCache()
	mem.data[cache.AccessKey(ana.ID)] = []byte("{no es json")
	grants := &countingGrants{grants: domaccess.GrantMap{"crm": true}}
	uc := newUseCase(mem, grants)

	res := uc.Resolve(context.Background(), ana)

	assert.True(t, res.ActiveModules.Has("crm"))
	assert.Equal(t, 1, grants.calls)
}
