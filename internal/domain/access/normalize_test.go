package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/domain/access"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalize
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalize_GrafiasEquivalentes(t *testing.T) {
	cases := map[string]string{
		"Gestion_Stock":     "gestion-stock",
		"gestion stock":     "gestion-stock",
		"GESTION--STOCK":    "gestion-stock",
		"Gestion-D-Équipe":  "gestion-d-equipe",
		"  crm   avance  ":  "crm-avance",
		"tableau_de_bord":   "tableau-de-bord",
		"paramètres":        "parametres",
		"-facturation-":     "facturation",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, access.Normalize(in), "entrada: %q", in)
	}
}

// Normalizar dos veces es lo mismo que normalizar una.
func TestNormalize_Idempotente(t *testing.T) {
	inputs := []string{
		"Gestion-D-Équipe",
		"tableau_de_bord",
		"  CRM   Avancé  ",
		"a__b--c  d",
		"",
		"---",
		"déjà_vu",
	}
	for _, in := range inputs {
		once := access.Normalize(in)
		assert.Equal(t, once, access.Normalize(once), "entrada: %q", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveCode — búsqueda en tres pasos
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveCode_RutaCruda_AliasConAcentos(t *testing.T) {
	cat := access.DefaultCatalog()

	// "paramètres" solo existe como alias crudo: la normalización le quita el
	// acento y seguiría resolviendo, pero el primer paso debe bastar.
	id, ok := cat.ResolveCode("paramètres")
	require.True(t, ok)
	assert.Equal(t, access.ModuleSettings, id)
}

func TestResolveCode_RutaIntercambiada(t *testing.T) {
	cat := access.DefaultCatalog()

	// "gestion_stock" difiere del id canónico solo en el separador.
	id, ok := cat.ResolveCode("gestion_stock")
	require.True(t, ok)
	assert.Equal(t, access.ModuleGestionStock, id)
}

// El escenario del código legacy con mayúsculas y acentos: ni crudo ni
// intercambiado resuelven; solo la forma normalizada encuentra el alias.
func TestResolveCode_RutaNormalizada(t *testing.T) {
	cat := access.DefaultCatalog()

	id, ok := cat.ResolveCode("Gestion-D-Équipe")
	require.True(t, ok)
	assert.Equal(t, access.ModuleGestionEquipe, id)
}

func TestResolveCode_AliasLegacyDeLineaBase(t *testing.T) {
	cat := access.DefaultCatalog()

	for code, want := range map[string]string{
		"tableau_de_bord": access.ModuleDashboard,
		"mon-entreprise":  access.ModuleOrganizationProfile,
		"parametres":      access.ModuleSettings,
	} {
		id, ok := cat.ResolveCode(code)
		require.True(t, ok, "código: %q", code)
		assert.Equal(t, want, id, "código: %q", code)
	}
}

func TestResolveCode_Desconocido(t *testing.T) {
	cat := access.DefaultCatalog()

	_, ok := cat.ResolveCode("modulo-inventado")
	assert.False(t, ok)
}
