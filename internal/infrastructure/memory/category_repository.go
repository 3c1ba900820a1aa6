package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/zmitacart/catalog-api/internal/domain"
	"github.com/zmitacart/catalog-api/internal/domain/entity"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria del puerto CategoryRepository.
// Replica las restricciones del esquema: nombre único, padre existente, ON DELETE SET NULL.
// Con tx != nil opera sobre la copia de una transacción en curso.
type CategoryRepo struct {
	s  *Store
	tx *table
}

// read ejecuta fn sobre el estado visible para este repositorio.
func (r *CategoryRepo) read(fn func(t *table)) {
	if r.tx != nil {
		fn(r.tx)
		return
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	fn(r.s.committed)
}

// write fuera de transacción espera a que termine la transacción en curso y confirma al instante.
func (r *CategoryRepo) write(fn func(t *table) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.committed)
}

// Create asigna el siguiente ID y guarda una copia.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.write(func(t *table) error {
		if err := checkConstraints(t, category, 0); err != nil {
			return err
		}
		t.nextID++
		category.ID = t.nextID
		t.rows[category.ID] = clone(category)
		return nil
	})
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	r.read(func(t *table) { out = clone(t.rows[id]) })
	return out, nil
}

// GetByName busca por nombre exacto; (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	var out *entity.Category
	r.read(func(t *table) {
		for _, c := range t.rows {
			if c.Name == name {
				out = clone(c)
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza nombre, icono y padre.
func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.write(func(t *table) error {
		if _, ok := t.rows[category.ID]; !ok {
			return nil
		}
		if err := checkConstraints(t, category, category.ID); err != nil {
			return err
		}
		t.rows[category.ID] = clone(category)
		return nil
	})
}

// ListRoots lista las categorías sin padre ordenadas por ID.
func (r *CategoryRepo) ListRoots(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	r.read(func(t *table) {
		for _, c := range t.rows {
			if c.ParentID == nil {
				list = append(list, clone(c))
			}
		}
	})
	sortByID(list)
	return list, nil
}

// ListByParentIDs lista los hijos directos de los padres indicados ordenados por ID.
func (r *CategoryRepo) ListByParentIDs(_ context.Context, parentIDs []int64) ([]*entity.Category, error) {
	set := make(map[int64]struct{}, len(parentIDs))
	for _, id := range parentIDs {
		set[id] = struct{}{}
	}
	var list []*entity.Category
	r.read(func(t *table) {
		for _, c := range t.rows {
			if c.ParentID == nil {
				continue
			}
			if _, ok := set[*c.ParentID]; ok {
				list = append(list, clone(c))
			}
		}
	})
	sortByID(list)
	return list, nil
}

// DetachChildren convierte en raíz a los hijos directos de parentID.
func (r *CategoryRepo) DetachChildren(_ context.Context, parentID int64) (int64, error) {
	var n int64
	err := r.write(func(t *table) error {
		n = detach(t, parentID)
		return nil
	})
	return n, err
}

// Delete elimina la categoría; los hijos que queden apuntando a ella pasan a raíz (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, id int64) error {
	return r.write(func(t *table) error {
		detach(t, id)
		delete(t.rows, id)
		return nil
	})
}

func detach(t *table, parentID int64) int64 {
	var n int64
	for _, c := range t.rows {
		if c.ParentID != nil && *c.ParentID == parentID {
			c.ParentID = nil
			n++
		}
	}
	return n
}

// checkConstraints valida unicidad de nombre y existencia del padre. selfID se excluye del chequeo de nombre.
func checkConstraints(t *table, c *entity.Category, selfID int64) error {
	for id, other := range t.rows {
		if id != selfID && other.Name == c.Name {
			return fmt.Errorf("insert category: %w", domain.ErrAlreadyExists)
		}
	}
	if c.ParentID != nil {
		if *c.ParentID == selfID && selfID != 0 {
			return fmt.Errorf("category parent: %w", domain.ErrInvalidOperation)
		}
		if _, ok := t.rows[*c.ParentID]; !ok {
			return fmt.Errorf("category parent %d: %w", *c.ParentID, domain.ErrNotFound)
		}
	}
	return nil
}

func sortByID(list []*entity.Category) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}
