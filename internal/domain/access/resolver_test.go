package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/domain/access"
)

// assertBaseline verifica que el conjunto contiene los tres ids de la línea
// base.
func assertBaseline(t *testing.T, set access.ModuleSet) {
	t.Helper()
	for _, id := range access.Baseline() {
		assert.True(t, set.Has(id), "el conjunto debe contener %q", id)
	}
}

// La línea base está presente para todo tier y todo grant map, nil incluido.
func TestResolve_LineaBaseSiempre(t *testing.T) {
	cat := access.DefaultCatalog()
	tiers := []access.Tier{
		access.TierPlatformSuperAdmin,
		access.TierClientSuperAdmin,
		access.TierClientMember,
		access.TierUnauthenticated,
	}
	maps := []access.GrantMap{nil, {}, {"basura": "no"}}
	for _, tier := range tiers {
		for _, grants := range maps {
			set := access.Resolve(tier, grants, cat)
			require.NotEmpty(t, set)
			assertBaseline(t, set)
		}
	}
}

// El admin de plataforma recibe el catálogo completo, grant map ignorado.
func TestResolve_PlataformaCatalogoCompleto(t *testing.T) {
	cat := access.DefaultCatalog()

	// El grant map trae basura deliberada: no debe consultarse.
	set := access.Resolve(access.TierPlatformSuperAdmin, access.GrantMap{"gestion_stock": false}, cat)

	assert.Len(t, set, len(cat.IDs()))
	for _, id := range cat.IDs() {
		assert.True(t, set.Has(id), "falta %q", id)
	}
}

// Ningún tier que no sea plataforma recibe ids platform-only, ni siquiera
// con un grant otorgándolos explícitamente.
func TestResolve_PlatformOnlyExclusivo(t *testing.T) {
	cat := access.DefaultCatalog()
	grants := access.GrantMap{
		"gestion-tenants":     true,
		"gestion_abonnements": "true",
		"support-plateforme":  1,
		"crm":                 true,
	}
	for _, tier := range []access.Tier{access.TierClientSuperAdmin, access.TierClientMember, access.TierUnauthenticated} {
		set := access.Resolve(tier, grants, cat)
		assert.False(t, set.Has(access.ModuleGestionTenants), "tier %s", tier)
		assert.False(t, set.Has(access.ModuleGestionAbonnements), "tier %s", tier)
		assert.False(t, set.Has(access.ModuleSupportPlateforme), "tier %s", tier)
	}
}

// Escenario de miembro: códigos en grafías mixtas resuelven al id canónico.
func TestResolve_MiembroGrafiasMixtas(t *testing.T) {
	cat := access.DefaultCatalog()
	grants := access.GrantMap{
		"gestion_stock": "true",
		"crm-avance":    1,
		"dashboard":     true,
	}

	set := access.Resolve(access.TierClientMember, grants, cat)

	assert.ElementsMatch(t,
		[]string{"crm-avance", "dashboard", "gestion-stock", "organization-profile", "settings"},
		set.IDs(),
	)
}

// Los grants denegados y los códigos desconocidos no aportan nada.
func TestResolve_GrantsDenegadosYDesconocidos(t *testing.T) {
	cat := access.DefaultCatalog()
	grants := access.GrantMap{
		"crm":             false,
		"paie":            "no",
		"projets":         0,
		"modulo-fantasma": true,
	}

	set := access.Resolve(access.TierClientMember, grants, cat)

	assert.ElementsMatch(t, access.Baseline(), set.IDs())
}

// Tier unauthenticated: exactamente la línea base, nada más.
func TestResolve_Unauthenticated(t *testing.T) {
	cat := access.DefaultCatalog()

	set := access.Resolve(access.TierUnauthenticated, access.GrantMap{"crm": true}, cat)

	assert.ElementsMatch(t, access.Baseline(), set.IDs())
}

func TestIsSparse(t *testing.T) {
	cat := access.DefaultCatalog()

	sparse := access.Resolve(access.TierClientMember, nil, cat)
	assert.True(t, access.IsSparse(sparse))

	rich := access.Resolve(access.TierClientMember, access.GrantMap{"crm": true}, cat)
	assert.False(t, access.IsSparse(rich))
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro de visibilidad (§ contrato hacia el consumidor)
// ──────────────────────────────────────────────────────────────────────────────

func TestVisibleItems_AdminPlataformaVeTodo(t *testing.T) {
	cat := access.DefaultCatalog()
	res := access.Result{
		Tier:          access.TierPlatformSuperAdmin,
		ActiveModules: access.Resolve(access.TierPlatformSuperAdmin, nil, cat),
	}

	items := access.VisibleItems(cat, res)
	assert.Len(t, items, len(cat.IDs()))
}

// Un super admin de cliente nunca ve items platform-only, por muchos módulos
// de tenant que tenga activos: la elevación es local al tenant.
func TestVisibleItems_ClientSuperAdminSinPlatformOnly(t *testing.T) {
	cat := access.DefaultCatalog()
	grants := access.GrantMap{"crm": true, "paie": true, "rapports": true, "projets": true}
	res := access.Result{
		Tier:          access.TierClientSuperAdmin,
		ActiveModules: access.Resolve(access.TierClientSuperAdmin, grants, cat),
	}

	items := access.VisibleItems(cat, res)
	require.NotEmpty(t, items)
	for _, it := range items {
		assert.False(t, it.PlatformOnly, "item %q no debería ser visible", it.ID)
	}
}

func TestVisibleItems_MiembroSoloSusModulos(t *testing.T) {
	cat := access.DefaultCatalog()
	res := access.Result{
		Tier:          access.TierClientMember,
		ActiveModules: access.Resolve(access.TierClientMember, access.GrantMap{"crm": true}, cat),
	}

	items := access.VisibleItems(cat, res)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.ElementsMatch(t, []string{"crm", "dashboard", "organization-profile", "settings"}, ids)
}
