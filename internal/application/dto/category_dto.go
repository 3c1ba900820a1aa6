package dto

import (
	"bytes"
	"encoding/json"

	"github.com/zmitacart/catalog-api/internal/domain/category"
)

// CreateCategoryRequest entrada para crear una categoría. Sin parent_id se crea como raíz.
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	IconName *string `json:"icon_name" validate:"omitempty,max=100"`
	ParentID *int64  `json:"parent_id" validate:"omitempty,gt=0"`
}

// UpdateCategoryRequest entrada para actualizar una categoría. Campos ausentes no cambian.
// parent_id: ausente = sin cambio, null = pasa a raíz, número = nuevo padre.
type UpdateCategoryRequest struct {
	Name     *string    `json:"name" validate:"omitempty,min=1,max=100"`
	IconName *string    `json:"icon_name" validate:"omitempty,max=100"`
	ParentID OptionalID `json:"parent_id"`
}

// OptionalID distingue un campo JSON ausente de uno presente con null.
type OptionalID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON solo se invoca si la clave viene en el cuerpo (también con null).
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// CategoryResponse nodo del árbol de categorías.
// children null = nivel no solicitado; [] = expandido y sin hijos.
type CategoryResponse struct {
	ID       int64               `json:"id"`
	Name     string              `json:"name"`
	IconName *string             `json:"icon_name"`
	ParentID *int64              `json:"parent_id"`
	Children []*CategoryResponse `json:"children"`
}

// FromNodes convierte un bosque materializado en respuestas, conservando nil vs vacío.
func FromNodes(nodes []*category.Node) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, fromNode(n))
	}
	return out
}

func fromNode(n *category.Node) *CategoryResponse {
	r := &CategoryResponse{
		ID:       n.ID,
		Name:     n.Name,
		IconName: n.IconName,
		ParentID: n.ParentID,
	}
	if n.Children != nil {
		r.Children = FromNodes(n.Children)
	}
	return r
}
