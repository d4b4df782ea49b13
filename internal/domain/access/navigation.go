package access

// NavItem es un elemento de navegación ya filtrado para una identidad.
type NavItem struct {
	ID           string
	Label        string
	PlatformOnly bool
}

// VisibleItems aplica el contrato de visibilidad hacia el consumidor: un item
// se muestra si (no es platform-only Y su id está en el conjunto activo) O el
// tier es PlatformSuperAdmin. Un ClientSuperAdmin nunca ve items platform-only
// por muchos módulos de tenant que tenga: la elevación es local al tenant.
func VisibleItems(catalog *Catalog, res Result) []NavItem {
	items := make([]NavItem, 0, len(catalog.features))
	for _, f := range catalog.Features() {
		visible := (!f.PlatformOnly && res.ActiveModules.Has(f.ID)) ||
			res.Tier == TierPlatformSuperAdmin
		if visible {
			items = append(items, NavItem{ID: f.ID, Label: f.Label, PlatformOnly: f.PlatformOnly})
		}
	}
	return items
}
