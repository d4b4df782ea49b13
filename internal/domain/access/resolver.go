package access

// Resolve calcula el conjunto de módulos activos para un tier y un grant map.
// Función pura: no consulta nada, no reintenta nada — el guard de escasez y la
// resincronización viven en el Engine.
//
// Reglas, en orden de prioridad:
//  1. PlatformSuperAdmin → catálogo completo, platform-only incluidos; el
//     grant map ni se mira.
//  2. Tiers de tenant → por cada (código, valor) otorgado, resolver el código
//     a id canónico (búsqueda en tres pasos) y añadirlo si existe en el
//     catálogo y no es platform-only; siempre se une la línea base.
//  3. Unauthenticated / inclasificable → exactamente la línea base.
//
// Invariantes: el resultado nunca está vacío y nunca omite los tres ids de la
// línea base; contiene ids platform-only si y solo si el tier es
// PlatformSuperAdmin.
func Resolve(tier Tier, grants GrantMap, catalog *Catalog) ModuleSet {
	set := make(ModuleSet)
	for _, id := range Baseline() {
		set[id] = true
	}

	switch {
	case tier == TierPlatformSuperAdmin:
		for _, id := range catalog.IDs() {
			set[id] = true
		}
	case tier.IsTenant():
		for code, value := range grants {
			if !IsGranted(value) {
				continue
			}
			id, ok := catalog.ResolveCode(code)
			if !ok {
				continue
			}
			if f, ok := catalog.Feature(id); !ok || f.PlatformOnly {
				continue
			}
			set[id] = true
		}
	}
	return set
}

// IsSparse informa si un conjunto resuelto no contiene ningún módulo de pago:
// como la línea base siempre está unida, "a lo sumo los 3 ids base" equivale a
// "exactamente la línea base". Es la señal de deriva de datos que dispara la
// resincronización; el guard solo ensancha, nunca recorta.
func IsSparse(set ModuleSet) bool {
	return len(set) <= len(Baseline())
}
