package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zmitacart/catalog-api/internal/domain"
	"github.com/zmitacart/catalog-api/internal/domain/entity"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
	"github.com/zmitacart/catalog-api/internal/infrastructure/memory"
)

func TestRun_RollbackRestauraEstado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Repository().Create(ctx, &entity.Category{Name: "Root"}))

	boom := errors.New("falla a mitad de transacción")
	err := store.Run(ctx, func(repo repository.CategoryRepository) error {
		if err := repo.Create(ctx, &entity.Category{Name: "Temp"}); err != nil {
			return err
		}
		if _, err := repo.DetachChildren(ctx, 1); err != nil {
			return err
		}
		if err := repo.Delete(ctx, 1); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Repository().GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got, "el borrado se deshace")
	missing, err := store.Repository().GetByName(ctx, "Temp")
	require.NoError(t, err)
	assert.Nil(t, missing, "el alta se deshace")

	next := &entity.Category{Name: "Next"}
	require.NoError(t, store.Repository().Create(ctx, next))
	assert.Equal(t, int64(2), next.ID, "el contador de IDs también vuelve atrás")
}

func TestRun_EscriturasPendientesNoSonVisiblesFuera(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	boom := errors.New("rollback")
	err := store.Run(ctx, func(repo repository.CategoryRepository) error {
		if err := repo.Create(ctx, &entity.Category{Name: "Fantasma"}); err != nil {
			return err
		}
		inTx, err := repo.GetByName(ctx, "Fantasma")
		require.NoError(t, err)
		require.NotNil(t, inTx, "la propia transacción ve su alta")

		outside, err := store.Repository().GetByName(ctx, "Fantasma")
		require.NoError(t, err)
		assert.Nil(t, outside, "fuera de la transacción no se ve el alta pendiente")
		return boom
	})
	require.ErrorIs(t, err, boom)

	gone, err := store.Repository().GetByName(ctx, "Fantasma")
	require.NoError(t, err)
	assert.Nil(t, gone)

	require.NoError(t, store.Run(ctx, func(repo repository.CategoryRepository) error {
		return repo.Create(ctx, &entity.Category{Name: "Fantasma"})
	}))
	committed, err := store.Repository().GetByName(ctx, "Fantasma")
	require.NoError(t, err)
	require.NotNil(t, committed, "al confirmar el alta queda visible")
	assert.Equal(t, int64(1), committed.ID)
}

func TestCategoryRepo_Restricciones(t *testing.T) {
	store := memory.NewStore()
	repo := store.Repository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "A"}))
	err := repo.Create(ctx, &entity.Category{Name: "A"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	missing := int64(50)
	err = repo.Create(ctx, &entity.Category{Name: "B", ParentID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepo_ListByParentIDsOrdenado(t *testing.T) {
	store := memory.NewStore()
	repo := store.Repository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "P1"}))
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "P2"}))
	p1, p2 := int64(1), int64(2)
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "c", ParentID: &p2}))
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "a", ParentID: &p1}))
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "b", ParentID: &p2}))

	list, err := repo.ListByParentIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{3, 4, 5}, []int64{list[0].ID, list[1].ID, list[2].ID})

	n, err := repo.DetachChildren(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	roots, err := repo.ListRoots(ctx)
	require.NoError(t, err)
	assert.Len(t, roots, 4)
}

func TestCategoryRepo_DevuelveCopias(t *testing.T) {
	store := memory.NewStore()
	repo := store.Repository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "Original"}))

	got, _ := repo.GetByID(ctx, 1)
	got.Name = "Mutado"

	again, _ := repo.GetByID(ctx, 1)
	assert.Equal(t, "Original", again.Name)
}
