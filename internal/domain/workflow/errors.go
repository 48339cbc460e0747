package workflow

import (
	"errors"
	"fmt"
)

// Tipos de error comunes a todos los workflows.
// Todo error devuelto por una operación de dominio envuelve exactamente uno.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
)

// ValidationError describe un input mal formado. Se rechaza antes de tocar estado.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Reason)
	}
	return fmt.Sprintf("validation error: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid crea un ValidationError para un campo.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// TransitionError: el par (estado, evento) no existe en la tabla.
type TransitionError struct {
	Kind  string
	From  string
	Event string
	To    string
}

func (e *TransitionError) Error() string {
	switch {
	case e.Event != "":
		return fmt.Sprintf("%s: cannot %s from %s", e.Kind, e.Event, e.From)
	case e.To != "":
		return fmt.Sprintf("%s: cannot move from %s to %s", e.Kind, e.From, e.To)
	default:
		return fmt.Sprintf("%s: invalid transition from %s", e.Kind, e.From)
	}
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Conflictf envuelve ErrConflict con contexto.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// NotFoundf envuelve ErrNotFound con contexto.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Kind devuelve el nombre estable del tipo de error (para respuestas HTTP y métricas).
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}
