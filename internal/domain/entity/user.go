package entity

import "time"

// Identity referencia mínima de un usuario autenticado. Es lo único que el
// motor de acceso necesita conocer del colaborador de autenticación.
type Identity struct {
	ID    string
	Email string
}

// User representa una cuenta del sistema. Nota: no lleva campo Role — el nivel
// de acceso se resuelve en runtime por el clasificador, nunca se persiste aquí.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity proyecta la referencia mínima usada por el motor de acceso.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
