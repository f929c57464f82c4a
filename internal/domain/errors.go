package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrMalformedSnapshot = errors.New("borrador persistido malformado")
	ErrPersistFailed     = errors.New("no se pudo persistir el borrador")
)
