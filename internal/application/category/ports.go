package category

import (
	"context"

	"github.com/zmitacart/catalog-api/internal/domain/category"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un repositorio atado a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.CategoryRepository) error) error
}

// TreeCache guarda resultados de lecturas del árbol. Los fallos se absorben en la implementación:
// una caché caída nunca debe romper una petición.
//
// Las entradas pertenecen a una generación. InvalidateAll abre una generación nueva, así que un Set
// con la generación leída antes de cargar queda fuera de vista si hubo una mutación en medio.
type TreeCache interface {
	// Generation devuelve la generación vigente; ok=false si la caché no responde.
	Generation(ctx context.Context) (gen uint64, ok bool)
	Get(ctx context.Context, gen uint64, key string) ([]*category.Node, bool)
	Set(ctx context.Context, gen uint64, key string, nodes []*category.Node)
	InvalidateAll(ctx context.Context)
}

// Recorder recibe métricas de negocio del gestor de categorías.
type Recorder interface {
	MutationDone(op, outcome string)
	LevelQueries(n int)
	CacheLookup(hit bool)
}

type noopCache struct{}

func (noopCache) Generation(context.Context) (uint64, bool) { return 0, false }

func (noopCache) Get(context.Context, uint64, string) ([]*category.Node, bool) { return nil, false }

func (noopCache) Set(context.Context, uint64, string, []*category.Node) {}

func (noopCache) InvalidateAll(context.Context) {}

type noopRecorder struct{}

func (noopRecorder) MutationDone(string, string) {}

func (noopRecorder) LevelQueries(int) {}

func (noopRecorder) CacheLookup(bool) {}
