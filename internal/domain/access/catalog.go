package access

import "sort"

// Identificadores canónicos de módulo. Los tres primeros son la línea base:
// presentes en todo conjunto resuelto, sea cual sea el tier o el grant map.
const (
	ModuleDashboard           = "dashboard"
	ModuleOrganizationProfile = "organization-profile"
	ModuleSettings            = "settings"

	ModuleFacturation   = "facturation"
	ModuleGestionStock  = "gestion-stock"
	ModuleCRM           = "crm"
	ModuleCRMAvance     = "crm-avance"
	ModuleProjets       = "projets"
	ModuleGestionEquipe = "gestion-equipe"
	ModulePaie          = "paie"
	ModuleRapports      = "rapports"
	ModuleAchats        = "achats"

	// Solo plataforma: jamás visibles para identidades de tenant.
	ModuleGestionTenants     = "gestion-tenants"
	ModuleGestionAbonnements = "gestion-abonnements"
	ModuleSupportPlateforme  = "support-plateforme"
)

// Feature es una entrada del catálogo de módulos navegables.
type Feature struct {
	ID           string
	Label        string
	PlatformOnly bool
}

// Catalog es el catálogo estático de módulos del despliegue más el índice de
// alias legacy. Inmutable una vez construido; el motor solo lo consulta.
type Catalog struct {
	features []Feature
	byID     map[string]Feature
	aliases  map[string]string // código crudo legacy → id canónico
}

// NewCatalog construye el catálogo a partir de la lista de features y el índice
// de alias. Los alias pueden llevar acentos o separadores mixtos: la búsqueda
// cruda se hace antes de normalizar precisamente para que esos casos resuelvan.
func NewCatalog(features []Feature, aliases map[string]string) *Catalog {
	c := &Catalog{
		features: make([]Feature, len(features)),
		byID:     make(map[string]Feature, len(features)),
		aliases:  make(map[string]string, len(aliases)),
	}
	copy(c.features, features)
	for _, f := range features {
		c.byID[f.ID] = f
	}
	for code, id := range aliases {
		c.aliases[code] = id
	}
	return c
}

// Baseline devuelve los tres ids siempre presentes. Copia nueva en cada
// llamada: nadie puede mutar la línea base.
func Baseline() []string {
	return []string{ModuleDashboard, ModuleOrganizationProfile, ModuleSettings}
}

// Feature devuelve la entrada del catálogo para un id canónico.
func (c *Catalog) Feature(id string) (Feature, bool) {
	f, ok := c.byID[id]
	return f, ok
}

// Features devuelve las entradas del catálogo en orden de declaración.
func (c *Catalog) Features() []Feature {
	out := make([]Feature, len(c.features))
	copy(out, c.features)
	return out
}

// IDs devuelve todos los ids del catálogo, platform-only incluidos.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.features))
	for _, f := range c.features {
		ids = append(ids, f.ID)
	}
	return ids
}

// ResolveCode lleva un código de módulo en grafía arbitraria a su id canónico.
// Orden de búsqueda obligatorio:
//  1. código crudo tal cual (los alias con acentos solo se encuentran aquí,
//     la normalización es lossy para esas comparaciones),
//  2. código con '_'↔'-' intercambiados,
//  3. forma totalmente normalizada.
//
// Cada paso consulta primero el índice de alias y después los ids del catálogo.
func (c *Catalog) ResolveCode(code string) (string, bool) {
	for _, candidate := range []string{code, swapSeparators(code), Normalize(code)} {
		if id, ok := c.lookup(candidate); ok {
			return id, true
		}
	}
	return "", false
}

func (c *Catalog) lookup(candidate string) (string, bool) {
	if id, ok := c.aliases[candidate]; ok {
		return id, true
	}
	if _, ok := c.byID[candidate]; ok {
		return candidate, true
	}
	return "", false
}

// DefaultCatalog es el catálogo del despliegue actual, con los alias legacy
// del frontend histórico (códigos en francés, acentos y separadores mixtos).
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]Feature{
			{ID: ModuleDashboard, Label: "Tableau de bord"},
			{ID: ModuleOrganizationProfile, Label: "Mon entreprise"},
			{ID: ModuleSettings, Label: "Paramètres"},
			{ID: ModuleFacturation, Label: "Facturation"},
			{ID: ModuleGestionStock, Label: "Gestion de stock"},
			{ID: ModuleCRM, Label: "CRM"},
			{ID: ModuleCRMAvance, Label: "CRM avancé"},
			{ID: ModuleProjets, Label: "Projets"},
			{ID: ModuleGestionEquipe, Label: "Gestion d'équipe"},
			{ID: ModulePaie, Label: "Paie"},
			{ID: ModuleRapports, Label: "Rapports"},
			{ID: ModuleAchats, Label: "Achats"},
			{ID: ModuleGestionTenants, Label: "Organisations", PlatformOnly: true},
			{ID: ModuleGestionAbonnements, Label: "Abonnements", PlatformOnly: true},
			{ID: ModuleSupportPlateforme, Label: "Support plateforme", PlatformOnly: true},
		},
		map[string]string{
			"tableau_de_bord":      ModuleDashboard,
			"tableau-de-bord":      ModuleDashboard,
			"mon-entreprise":       ModuleOrganizationProfile,
			"mon_entreprise":       ModuleOrganizationProfile,
			"parametres":           ModuleSettings,
			"paramètres":           ModuleSettings,
			"réglages":             ModuleSettings,
			"gestion-d-equipe":     ModuleGestionEquipe,
			"équipe":               ModuleGestionEquipe,
			"facturación":          ModuleFacturation,
			"factures":             ModuleFacturation,
			"stocks":               ModuleGestionStock,
			"rapports-analytiques": ModuleRapports,
		},
	)
}

// ModuleSet es el conjunto de ids canónicos activos: el único artefacto de
// salida de la resolución. Se reconstruye entero en cada llamada, nunca se
// muta parcialmente.
type ModuleSet map[string]bool

// Has informa si el módulo está activo.
func (s ModuleSet) Has(id string) bool { return s[id] }

// IDs devuelve los ids activos ordenados (salida estable para JSON y tests).
func (s ModuleSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
