package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrBusy               = errors.New("recurso ocupado, reintente")
)

// InsufficientStockError detalla un rechazo por stock insuficiente en una salida (OUT).
// Lleva la cantidad solicitada y la disponible para que el caller vea la razón exacta.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("no se pueden retirar %d unidades: solo hay %d disponibles en stock", e.Requested, e.Available)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ValidationError detalla un rechazo de validación sobre un campo concreto.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campo %s inválido: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConflictError detalla un conflicto (clave única violada o borrado bloqueado
// por asociaciones vivas) con un mensaje accionable para el caller.
type ConflictError struct {
	Entity string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicto en %s: %s", e.Entity, e.Reason)
}

// Is permite errors.Is(err, domain.ErrConflict).
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
