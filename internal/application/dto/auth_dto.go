package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password). No lleva rol: el nivel de
// acceso se consulta en GET /api/access, no se persiste en el usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProvisionMemberRequest entrada para aprovisionar una cuenta de miembro tras
// la compra de una suscripción (password en texto, se hashea en el use case).
type ProvisionMemberRequest struct {
	EntrepriseID string `json:"entreprise_id" validate:"required,uuid"`
	ClientID     string `json:"client_id" validate:"omitempty,uuid"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Name         string `json:"name" validate:"omitempty,max=200"`
	SuperAdmin   bool   `json:"super_admin"`
}

// MemberResponse salida del aprovisionamiento.
type MemberResponse struct {
	User         UserResponse `json:"user"`
	EntrepriseID string       `json:"entreprise_id"`
	SuperAdmin   bool         `json:"super_admin"`
}
