// Package memory implementa los puertos de persistencia en memoria. Se usa con STORAGE=memory
// (desarrollo local sin PostgreSQL) y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sync"

	"github.com/zmitacart/catalog-api/internal/application/category"
	"github.com/zmitacart/catalog-api/internal/domain/entity"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
)

var _ category.TxRunner = (*Store)(nil)

// table es un estado completo del almacén: filas y contador de IDs.
type table struct {
	nextID int64
	rows   map[int64]*entity.Category
}

func (t *table) clone() *table {
	out := &table{nextID: t.nextID, rows: make(map[int64]*entity.Category, len(t.rows))}
	for id, c := range t.rows {
		out.rows[id] = clone(c)
	}
	return out
}

// Store guarda las categorías confirmadas en committed.
// Las transacciones se serializan con txMu y trabajan sobre una copia privada que
// reemplaza a committed solo al confirmar; las lecturas de fuera nunca ven cambios pendientes.
type Store struct {
	txMu      sync.Mutex
	mu        sync.RWMutex
	committed *table
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{committed: &table{rows: make(map[int64]*entity.Category)}}
}

// Repository devuelve un repositorio fuera de transacción (equivalente al pool):
// cada escritura se confirma sola.
func (s *Store) Repository() *CategoryRepo {
	return &CategoryRepo{s: s}
}

// Run ejecuta fn sobre una copia del estado confirmado y la publica si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(repo repository.CategoryRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(&CategoryRepo{s: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = work
	s.mu.Unlock()
	return nil
}

func clone(c *entity.Category) *entity.Category {
	if c == nil {
		return nil
	}
	out := *c
	if c.IconName != nil {
		v := *c.IconName
		out.IconName = &v
	}
	if c.ParentID != nil {
		v := *c.ParentID
		out.ParentID = &v
	}
	return &out
}
