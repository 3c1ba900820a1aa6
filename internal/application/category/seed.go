package category

import (
	"context"
	"fmt"

	"github.com/zmitacart/catalog-api/internal/domain/category"
)

// SeedNode categoría de un archivo de carga inicial, con sus hijos anidados.
type SeedNode struct {
	Name     string      `json:"name"`
	IconName *string     `json:"icon_name,omitempty"`
	Children []*SeedNode `json:"children,omitempty"`
}

// SeedResult resumen de una carga.
type SeedResult struct {
	Created int
	Skipped int
}

// Seed crea las categorías que falten respetando la jerarquía del archivo.
// Una categoría cuyo nombre ya existe no se modifica; sus hijos se cuelgan de ella.
func (m *TreeManager) Seed(ctx context.Context, roots []*SeedNode) (SeedResult, error) {
	type item struct {
		node     *SeedNode
		parentID *int64
	}
	var res SeedResult

	stack := make([]item, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, item{node: roots[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := category.NormalizeName(it.node.Name)
		existing, err := m.repo.GetByName(ctx, name)
		if err != nil {
			return res, err
		}

		var id int64
		if existing != nil {
			id = existing.ID
			res.Skipped++
		} else {
			id, err = m.Create(ctx, CreateInput{Name: name, ParentID: it.parentID, IconName: it.node.IconName})
			if err != nil {
				return res, fmt.Errorf("seed %q: %w", name, err)
			}
			res.Created++
		}

		for i := len(it.node.Children) - 1; i >= 0; i-- {
			parentID := id
			stack = append(stack, item{node: it.node.Children[i], parentID: &parentID})
		}
	}
	return res, nil
}
