package dto

// AccessResponse artefacto de resolución entregado al frontend: el tier y el
// conjunto de módulos activos (ids canónicos, ordenados).
type AccessResponse struct {
	Tier          string   `json:"tier"`
	ActiveModules []string `json:"active_modules"`
}

// NavItemResponse elemento de navegación ya filtrado para la identidad.
type NavItemResponse struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	PlatformOnly bool   `json:"platform_only"`
}

// TenantResponse organización vista desde la administración de plataforma.
type TenantResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// GrantMapResponse mapa de módulos crudo de un tenant (valores heterogéneos
// tal cual están almacenados, para diagnóstico).
type GrantMapResponse struct {
	EntrepriseID string         `json:"entreprise_id"`
	Grants       map[string]any `json:"grants"`
}

// SubscriptionResponse suscripción de un tenant con los módulos de su plan,
// vista desde la administración de plataforma. El precio viaja como string
// decimal exacto.
type SubscriptionResponse struct {
	EntrepriseID string   `json:"entreprise_id"`
	PlanCode     string   `json:"plan_code"`
	PlanName     string   `json:"plan_name"`
	MonthlyPrice string   `json:"monthly_price"`
	Status       string   `json:"status"`
	ExpiresAt    *string  `json:"expires_at,omitempty"`
	Modules      []string `json:"modules"`
}
