package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrAlreadyExists    = errors.New("el recurso ya existe")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidOperation = errors.New("operación inválida")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
)
