package category

import (
	"strings"

	"github.com/zmitacart/catalog-api/internal/domain/entity"
	"golang.org/x/text/unicode/norm"
)

// Node es una categoría dentro de un árbol materializado.
// Children nil = nivel no expandido; slice vacío = expandido y sin hijos.
type Node struct {
	ID       int64
	Name     string
	IconName *string
	ParentID *int64
	Children []*Node
}

// NewNode construye un nodo sin expandir a partir de la entidad.
func NewNode(c *entity.Category) *Node {
	return &Node{
		ID:       c.ID,
		Name:     c.Name,
		IconName: c.IconName,
		ParentID: c.ParentID,
	}
}

// NewNodes convierte una lista de entidades en nodos sin expandir.
func NewNodes(list []*entity.Category) []*Node {
	out := make([]*Node, 0, len(list))
	for _, c := range list {
		out = append(out, NewNode(c))
	}
	return out
}

// ContainsID recorre el subárbol de root (incluido root) con una pila explícita
// y se detiene en la primera coincidencia.
func ContainsID(root *Node, id int64) bool {
	if root == nil {
		return false
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.ID == id {
			return true
		}
		stack = append(stack, n.Children...)
	}
	return false
}

// NormalizeName recorta espacios y normaliza a NFC para que nombres visualmente
// iguales se comparen igual. La comparación sigue siendo sensible a mayúsculas.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
