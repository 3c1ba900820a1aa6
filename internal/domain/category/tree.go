package category

import (
	"context"

	"github.com/zmitacart/catalog-api/internal/domain/entity"
)

// LevelLoader devuelve los hijos directos de todos los padres indicados (una consulta por nivel).
type LevelLoader func(ctx context.Context, parentIDs []int64) ([]*entity.Category, error)

// Expand materializa en anchura hasta depth niveles por debajo de roots, con una sola
// llamada a load por nivel. Devuelve cuántos niveles consultó.
// Un nodo ya visitado no se vuelve a expandir, lo que acota el recorrido aun con datos corruptos.
func Expand(ctx context.Context, load LevelLoader, roots []*Node, depth Depth) (int, error) {
	visited := make(map[int64]struct{}, len(roots))
	frontier := make([]*Node, 0, len(roots))
	for _, n := range roots {
		if _, seen := visited[n.ID]; seen {
			continue
		}
		visited[n.ID] = struct{}{}
		frontier = append(frontier, n)
	}

	queried := 0
	for level := 1; depth.allows(level) && len(frontier) > 0; level++ {
		ids := make([]int64, 0, len(frontier))
		byID := make(map[int64]*Node, len(frontier))
		for _, n := range frontier {
			n.Children = []*Node{}
			ids = append(ids, n.ID)
			byID[n.ID] = n
		}

		children, err := load(ctx, ids)
		if err != nil {
			return queried, err
		}
		queried++

		next := make([]*Node, 0, len(children))
		for _, c := range children {
			if c.ParentID == nil {
				continue
			}
			parent, ok := byID[*c.ParentID]
			if !ok {
				continue
			}
			if _, seen := visited[c.ID]; seen {
				continue
			}
			visited[c.ID] = struct{}{}
			child := NewNode(c)
			parent.Children = append(parent.Children, child)
			next = append(next, child)
		}
		frontier = next
	}
	return queried, nil
}
