package entity

import "time"

// Category representa una categoría del marketplace. La jerarquía es un bosque:
// ParentID nil indica raíz y ninguna categoría puede ser ancestro de sí misma.
type Category struct {
	ID        int64
	Name      string  // único en todo el catálogo (no por padre)
	IconName  *string // opcional
	ParentID  *int64  // nil si es raíz
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
