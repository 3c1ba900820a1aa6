package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zmitacart/catalog-api/internal/application/category"
	"github.com/zmitacart/catalog-api/internal/domain"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
)

var _ category.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL SERIALIZABLE, de modo que
// la lectura del subárbol (chequeo de ciclo) y la escritura del nuevo padre no se intercalen
// con otra reasignación concurrente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia la transacción, ejecuta fn con un repositorio atado a la tx y hace Commit o Rollback.
// Un fallo de serialización se devuelve como domain.ErrConflict; no se reintenta.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.CategoryRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCategoryRepository(tx)); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
