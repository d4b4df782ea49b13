package provision

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// TxRunner contrato de la transacción de aprovisionamiento. Lo implementa
// postgres.TxRunner; la interfaz evita que el use case dependa de pgx.
type TxRunner interface {
	RunProvision(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		membershipRepo repository.MembershipRepository,
	) error) error
}

// ProvisionUseCase aprovisiona cuentas de miembro tras la compra de una
// suscripción: usuario + membresía en una transacción, y siembra del mapa de
// módulos del tenant desde su plan activo.
type ProvisionUseCase struct {
	tx             TxRunner
	userRepo       repository.UserRepository
	entrepriseRepo repository.EntrepriseRepository
	grantRepo      repository.ModuleGrantRepository
}

// NewProvisionUseCase construye el caso de uso de aprovisionamiento.
func NewProvisionUseCase(
	tx TxRunner,
	userRepo repository.UserRepository,
	entrepriseRepo repository.EntrepriseRepository,
	grantRepo repository.ModuleGrantRepository,
) *ProvisionUseCase {
	return &ProvisionUseCase{tx: tx, userRepo: userRepo, entrepriseRepo: entrepriseRepo, grantRepo: grantRepo}
}

// ProvisionMember crea la cuenta de un miembro de organización. El usuario y
// su membresía se escriben atómicamente: no puede quedar una cuenta sin tenant
// a medio aprovisionar. Después se siembra el mapa de módulos del tenant
// (misma operación idempotente que usa el disparador de resincronización);
// un fallo ahí no deshace el alta — el guard de escasez lo reparará en la
// primera resolución.
func (uc *ProvisionUseCase) ProvisionMember(ctx context.Context, in dto.ProvisionMemberRequest) (*dto.MemberResponse, error) {
	entreprise, err := uc.entrepriseRepo.GetByID(ctx, in.EntrepriseID)
	if err != nil {
		return nil, err
	}
	if entreprise == nil {
		return nil, domain.ErrTenantNotFound
	}
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	membership := &entity.TenantMembership{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		EntrepriseID: in.EntrepriseID,
		ClientID:     in.ClientID,
		SuperAdmin:   in.SuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.RunProvision(ctx, func(
		userRepo repository.UserRepository,
		membershipRepo repository.MembershipRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return membershipRepo.Create(ctx, membership)
	})
	if err != nil {
		return nil, err
	}

	// Mejor esfuerzo: si la siembra falla, la primera resolución del miembro
	// disparará la resincronización por el guard de escasez.
	_ = uc.grantRepo.Resync(ctx, in.EntrepriseID)

	return &dto.MemberResponse{
		User:         *auth.ToUserResponse(user),
		EntrepriseID: in.EntrepriseID,
		SuperAdmin:   in.SuperAdmin,
	}, nil
}
