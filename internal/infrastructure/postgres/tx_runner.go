package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunProvision inicia una transacción con los repos necesarios para
// aprovisionar un miembro (usuario + membresía atómicos) y hace Commit o
// Rollback.
func (r *TxRunner) RunProvision(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	membershipRepo repository.MembershipRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := newUserRepoTx(tx)
	membershipRepo := newMembershipRepoTx(tx)

	if err := fn(userRepo, membershipRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
