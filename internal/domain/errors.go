package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrTokenExpired    = errors.New("token expirado")
	ErrStorageDisabled = errors.New("almacenamiento de reportes no configurado")
)
