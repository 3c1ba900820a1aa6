package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zmitacart/catalog-api/internal/domain"
	"github.com/zmitacart/catalog-api/internal/domain/category"
	"github.com/zmitacart/catalog-api/internal/domain/entity"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
)

// Operaciones registradas en logs y métricas.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// TreeManager gestiona la jerarquía de categorías: altas, cambios y bajas que preservan
// el bosque (sin ciclos, nombres únicos) y lecturas del árbol con profundidad acotada.
// Las mutaciones corren dentro de TxRunner; las lecturas usan repo directamente.
type TreeManager struct {
	repo     repository.CategoryRepository
	txRunner TxRunner
	cache    TreeCache
	metrics  Recorder
	log      zerolog.Logger
}

// NewTreeManager construye el caso de uso. cache y metrics pueden ser nil.
func NewTreeManager(
	repo repository.CategoryRepository,
	txRunner TxRunner,
	cache TreeCache,
	metrics Recorder,
	log zerolog.Logger,
) *TreeManager {
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &TreeManager{
		repo:     repo,
		txRunner: txRunner,
		cache:    cache,
		metrics:  metrics,
		log:      log.With().Str("component", "category_tree").Logger(),
	}
}

// Create crea una categoría raíz o hija y devuelve su ID.
// ErrAlreadyExists si el nombre ya existe (en cualquier parte del árbol), ErrNotFound si el padre no existe.
func (m *TreeManager) Create(ctx context.Context, in CreateInput) (int64, error) {
	name := category.NormalizeName(in.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}

	var id int64
	err := m.txRunner.Run(ctx, func(repo repository.CategoryRepository) error {
		existing, err := repo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ya existe una categoría llamada %q", domain.ErrAlreadyExists, name)
		}
		if in.ParentID != nil {
			parent, err := repo.GetByID(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return fmt.Errorf("%w: la categoría padre %d no existe", domain.ErrNotFound, *in.ParentID)
			}
		}

		now := time.Now().UTC()
		c := &entity.Category{
			Name:      name,
			IconName:  iconOrNil(in.IconName),
			ParentID:  in.ParentID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		id = c.ID
		return nil
	})
	m.finish(ctx, OpCreate, id, err)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update aplica los campos presentes en in y devuelve el ID.
// Mover la categoría bajo sí misma o bajo un descendiente devuelve ErrInvalidOperation.
func (m *TreeManager) Update(ctx context.Context, in UpdateInput) (int64, error) {
	err := m.txRunner.Run(ctx, func(repo repository.CategoryRepository) error {
		c, err := repo.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: la categoría %d no existe", domain.ErrNotFound, in.ID)
		}

		if in.Name != nil {
			name := category.NormalizeName(*in.Name)
			if name == "" {
				return fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
			}
			if name != c.Name {
				other, err := repo.GetByName(ctx, name)
				if err != nil {
					return err
				}
				if other != nil && other.ID != c.ID {
					return fmt.Errorf("%w: ya existe una categoría llamada %q", domain.ErrAlreadyExists, name)
				}
			}
			c.Name = name
		}
		if in.IconName != nil {
			c.IconName = iconOrNil(in.IconName)
		}
		if in.Parent.Set {
			if in.Parent.ID == nil {
				c.ParentID = nil
			} else {
				parentID := *in.Parent.ID
				parent, err := repo.GetByID(ctx, parentID)
				if err != nil {
					return err
				}
				if parent == nil {
					return fmt.Errorf("%w: la categoría padre %d no existe", domain.ErrNotFound, parentID)
				}
				if err := m.checkCycle(ctx, repo, c, parentID); err != nil {
					return err
				}
				c.ParentID = &parentID
			}
		}

		c.UpdatedAt = time.Now().UTC()
		return repo.Update(ctx, c)
	})
	m.finish(ctx, OpUpdate, in.ID, err)
	if err != nil {
		return 0, err
	}
	return in.ID, nil
}

// checkCycle carga el subárbol completo de c (sin límite de profundidad) y rechaza
// parentID si es c o alguno de sus descendientes.
func (m *TreeManager) checkCycle(ctx context.Context, repo repository.CategoryRepository, c *entity.Category, parentID int64) error {
	if parentID == c.ID {
		return fmt.Errorf("%w: una categoría no puede ser su propio padre", domain.ErrInvalidOperation)
	}
	root := category.NewNode(c)
	levels, err := category.Expand(ctx, repo.ListByParentIDs, []*category.Node{root}, category.Unlimited())
	m.metrics.LevelQueries(levels)
	if err != nil {
		return err
	}
	if category.ContainsID(root, parentID) {
		return fmt.Errorf("%w: la categoría %d es descendiente de %d", domain.ErrInvalidOperation, parentID, c.ID)
	}
	return nil
}

// Delete elimina la categoría. Sus hijos directos pasan a ser raíces (no se borran en cascada).
func (m *TreeManager) Delete(ctx context.Context, id int64) error {
	var detached int64
	err := m.txRunner.Run(ctx, func(repo repository.CategoryRepository) error {
		c, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: la categoría %d no existe", domain.ErrNotFound, id)
		}
		detached, err = repo.DetachChildren(ctx, id)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err == nil && detached > 0 {
		m.log.Info().Int64("category_id", id).Int64("promoted", detached).Msg("hijos promovidos a raíz")
	}
	m.finish(ctx, OpDelete, id, err)
	return err
}

// GetAllSuperiors lista las categorías raíz sin hijos.
func (m *TreeManager) GetAllSuperiors(ctx context.Context) ([]*category.Node, error) {
	return m.read(ctx, "superiors", func() ([]*category.Node, error) {
		list, err := m.repo.ListRoots(ctx)
		if err != nil {
			return nil, err
		}
		return category.NewNodes(list), nil
	})
}

// GetSuperiorsWithChildren lista las raíces con depth niveles de descendientes.
// Cuando el parámetro no viene, quien llama debe pasar category.None().
func (m *TreeManager) GetSuperiorsWithChildren(ctx context.Context, depth category.Depth) ([]*category.Node, error) {
	return m.read(ctx, "superiors:tree:"+depth.String(), func() ([]*category.Node, error) {
		list, err := m.repo.ListRoots(ctx)
		if err != nil {
			return nil, err
		}
		nodes := category.NewNodes(list)
		if err := m.expand(ctx, nodes, depth); err != nil {
			return nil, err
		}
		return nodes, nil
	})
}

// GetCategoriesBySuperiorID devuelve la categoría superiorID con depth niveles de descendientes.
// Cuando el parámetro no viene, quien llama debe pasar category.Unlimited().
func (m *TreeManager) GetCategoriesBySuperiorID(ctx context.Context, superiorID int64, depth category.Depth) ([]*category.Node, error) {
	key := fmt.Sprintf("subtree:%d:%s", superiorID, depth)
	return m.read(ctx, key, func() ([]*category.Node, error) {
		c, err := m.repo.GetByID(ctx, superiorID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: la categoría superior %d no existe", domain.ErrNotFound, superiorID)
		}
		nodes := []*category.Node{category.NewNode(c)}
		if err := m.expand(ctx, nodes, depth); err != nil {
			return nil, err
		}
		return nodes, nil
	})
}

func (m *TreeManager) expand(ctx context.Context, nodes []*category.Node, depth category.Depth) error {
	levels, err := category.Expand(ctx, m.repo.ListByParentIDs, nodes, depth)
	m.metrics.LevelQueries(levels)
	return err
}

// read sirve key desde caché o la carga con load. La generación se toma antes de cargar:
// si una mutación confirma mientras tanto, el resultado se guarda en una generación ya retirada.
func (m *TreeManager) read(ctx context.Context, key string, load func() ([]*category.Node, error)) ([]*category.Node, error) {
	gen, cacheUp := m.cache.Generation(ctx)
	if cacheUp {
		nodes, hit := m.cache.Get(ctx, gen, key)
		m.metrics.CacheLookup(hit)
		if hit {
			return nodes, nil
		}
	}
	nodes, err := load()
	if err != nil {
		return nil, err
	}
	if cacheUp {
		m.cache.Set(ctx, gen, key, nodes)
	}
	return nodes, nil
}

// finish registra el resultado de una mutación e invalida la caché si tuvo éxito.
func (m *TreeManager) finish(ctx context.Context, op string, id int64, err error) {
	outcome := Outcome(err)
	m.metrics.MutationDone(op, outcome)

	switch outcome {
	case "ok":
		m.cache.InvalidateAll(ctx)
		m.log.Info().Str("op", op).Int64("category_id", id).Msg("categoría modificada")
	case "error":
		m.log.Error().Err(err).Str("op", op).Int64("category_id", id).Msg("fallo al modificar categoría")
	default:
		m.log.Debug().Err(err).Str("op", op).Int64("category_id", id).Str("outcome", outcome).Msg("mutación rechazada")
	}
}

// Outcome clasifica el error de una operación para logs y métricas.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, domain.ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

func iconOrNil(icon *string) *string {
	if icon == nil {
		return nil
	}
	v := strings.TrimSpace(*icon)
	if v == "" {
		return nil
	}
	return &v
}
