package category

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zmitacart/catalog-api/internal/domain"
)

type depthKind uint8

const (
	depthNone depthKind = iota
	depthLimited
	depthUnlimited
)

// Depth indica cuántos niveles de hijos se materializan bajo un nodo.
// El valor cero equivale a None.
type Depth struct {
	kind   depthKind
	levels int
}

// None no expande hijos.
func None() Depth { return Depth{kind: depthNone} }

// Unlimited expande hasta las hojas.
func Unlimited() Depth { return Depth{kind: depthUnlimited} }

// Limited expande exactamente n niveles. n <= 0 equivale a None.
func Limited(n int) Depth {
	if n <= 0 {
		return None()
	}
	return Depth{kind: depthLimited, levels: n}
}

// IsNone indica si no se expande ningún nivel.
func (d Depth) IsNone() bool { return d.kind == depthNone }

// IsUnlimited indica si se expande hasta las hojas.
func (d Depth) IsUnlimited() bool { return d.kind == depthUnlimited }

// Levels devuelve el número de niveles y false si la profundidad es ilimitada.
func (d Depth) Levels() (int, bool) {
	switch d.kind {
	case depthLimited:
		return d.levels, true
	case depthUnlimited:
		return 0, false
	default:
		return 0, true
	}
}

// allows indica si el nivel (1 = hijos directos) entra en la profundidad.
func (d Depth) allows(level int) bool {
	switch d.kind {
	case depthUnlimited:
		return true
	case depthLimited:
		return level <= d.levels
	default:
		return false
	}
}

// String devuelve "none", "all" o el número de niveles. Se usa en claves de caché y logs.
func (d Depth) String() string {
	switch d.kind {
	case depthUnlimited:
		return "all"
	case depthLimited:
		return strconv.Itoa(d.levels)
	default:
		return "none"
	}
}

// ParseDepth interpreta el parámetro de profundidad recibido por la API.
// Vacío devuelve def; "all" o "-1" es ilimitado; un entero >= 0 es Limited(n).
func ParseDepth(raw string, def Depth) (Depth, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	if strings.EqualFold(raw, "all") || raw == "-1" {
		return Unlimited(), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return Depth{}, fmt.Errorf("%w: depth %q", domain.ErrInvalidInput, raw)
	}
	return Limited(n), nil
}
