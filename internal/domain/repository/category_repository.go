package repository

import (
	"context"

	"github.com/zmitacart/catalog-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID y GetByName devuelven (nil, nil) cuando no existe el registro.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	// ListRoots lista las categorías sin padre ordenadas por ID.
	ListRoots(ctx context.Context) ([]*entity.Category, error)
	// ListByParentIDs lista los hijos directos de todos los padres indicados en una sola consulta, ordenados por ID.
	ListByParentIDs(ctx context.Context, parentIDs []int64) ([]*entity.Category, error)
	// DetachChildren convierte en raíz a todos los hijos directos de parentID y devuelve cuántos cambió.
	DetachChildren(ctx context.Context, parentID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
