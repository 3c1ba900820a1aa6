package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zmitacart/catalog-api/internal/domain"
	"github.com/zmitacart/catalog-api/internal/domain/entity"
	"github.com/zmitacart/catalog-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, name, icon_name, parent_id, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.IconName, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva categoría y completa su ID.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (name, icon_name, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		category.Name, category.IconName, category.ParentID, category.CreatedAt, category.UpdatedAt,
	).Scan(&category.ID)
	if err != nil {
		return translate("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	row := r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

// Update actualiza nombre, icono y padre.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, icon_name = $3, parent_id = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		category.ID, category.Name, category.IconName, category.ParentID, category.UpdatedAt,
	)
	if err != nil {
		return translate("update category", err)
	}
	return nil
}

// ListRoots lista las categorías sin padre.
func (r *CategoryRepo) ListRoots(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE parent_id IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list root categories: %w", err)
	}
	return collect(rows)
}

// ListByParentIDs lista los hijos directos de varios padres en una sola consulta (parent_id = ANY).
func (r *CategoryRepo) ListByParentIDs(ctx context.Context, parentIDs []int64) ([]*entity.Category, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE parent_id = ANY($1) ORDER BY id`,
		parentIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list child categories: %w", err)
	}
	return collect(rows)
}

// DetachChildren deja sin padre a los hijos directos de parentID.
func (r *CategoryRepo) DetachChildren(ctx context.Context, parentID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET parent_id = NULL, updated_at = now() WHERE parent_id = $1`,
		parentID,
	)
	if err != nil {
		return 0, fmt.Errorf("detach child categories: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func collect(rows pgx.Rows) ([]*entity.Category, error) {
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// translate convierte violaciones de constraints en errores de dominio.
func translate(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case isCheckViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidOperation)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
