package usecase

import (
	"context"
	"time"

	appaccess "github.com/tu-usuario/gestion-pro/internal/application/access"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TenantAdminUseCase operaciones de administración de plataforma sobre los
// tenants: listado, inspección del mapa de módulos crudo y resincronización
// forzada. Solo accesible tras RequirePlatformAdmin.
type TenantAdminUseCase struct {
	entrepriseRepo repository.EntrepriseRepository
	grantRepo      repository.ModuleGrantRepository
	membershipRepo repository.MembershipRepository
	subsRepo       repository.SubscriptionRepository
	access         *appaccess.AccessUseCase
}

// NewTenantAdminUseCase construye el caso de uso de administración de tenants.
func NewTenantAdminUseCase(
	entrepriseRepo repository.EntrepriseRepository,
	grantRepo repository.ModuleGrantRepository,
	membershipRepo repository.MembershipRepository,
	subsRepo repository.SubscriptionRepository,
	access *appaccess.AccessUseCase,
) *TenantAdminUseCase {
	return &TenantAdminUseCase{
		entrepriseRepo: entrepriseRepo,
		grantRepo:      grantRepo,
		membershipRepo: membershipRepo,
		subsRepo:       subsRepo,
		access:         access,
	}
}

// List lista organizaciones con paginación.
func (uc *TenantAdminUseCase) List(ctx context.Context, limit, offset int) ([]dto.TenantResponse, error) {
	tenants, err := uc.entrepriseRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, dto.TenantResponse{ID: t.ID, Name: t.Name, Email: t.Email, Status: t.Status})
	}
	return out, nil
}

// GrantMap devuelve el mapa de módulos crudo de un tenant, valores
// heterogéneos incluidos, para diagnóstico de deriva.
func (uc *TenantAdminUseCase) GrantMap(ctx context.Context, entrepriseID string) (*dto.GrantMapResponse, error) {
	t, err := uc.entrepriseRepo.GetByID(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	grants, err := uc.grantRepo.FetchGrantMap(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}
	return &dto.GrantMapResponse{EntrepriseID: entrepriseID, Grants: grants}, nil
}

// Subscription devuelve la suscripción del tenant con los módulos de su plan.
func (uc *TenantAdminUseCase) Subscription(ctx context.Context, entrepriseID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.subsRepo.GetByEntreprise(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrSubscriptionNotFound
	}
	out := &dto.SubscriptionResponse{
		EntrepriseID: entrepriseID,
		PlanCode:     sub.PlanCode,
		MonthlyPrice: sub.MonthlyPrice.String(),
		Status:       sub.Status,
	}
	if sub.ExpiresAt != nil {
		s := sub.ExpiresAt.Format(time.RFC3339)
		out.ExpiresAt = &s
	}
	plan, err := uc.subsRepo.GetPlan(ctx, sub.PlanCode)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		out.PlanName = plan.Name
		out.Modules = plan.Modules
	}
	return out, nil
}

// ForceResync reescribe el mapa de módulos del tenant desde su suscripción
// (misma operación idempotente que el disparador de deriva) e invalida el
// acceso cacheado de todos sus miembros para que el cambio sea visible sin
// esperar al TTL.
func (uc *TenantAdminUseCase) ForceResync(ctx context.Context, entrepriseID string) error {
	t, err := uc.entrepriseRepo.GetByID(ctx, entrepriseID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrTenantNotFound
	}
	if err := uc.grantRepo.Resync(ctx, entrepriseID); err != nil {
		return err
	}
	userIDs, err := uc.membershipRepo.ListUserIDsByEntreprise(ctx, entrepriseID)
	if err != nil {
		// La resincronización ya se aplicó; el cache caduca solo por TTL.
		return nil
	}
	for _, id := range userIDs {
		uc.access.Invalidate(ctx, id)
	}
	return nil
}
