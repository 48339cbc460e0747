package workflow

import (
	"context"
	"time"
)

// Transition es el registro de un cambio de estado aplicado.
type Transition struct {
	ID        string
	Kind      string
	SubjectID string
	From      string
	To        string
	Event     string
	ActorID   string
	Notes     string
	At        time.Time
}

// Recorder persiste transiciones dentro de la misma transacción que el cambio.
type Recorder interface {
	Record(ctx context.Context, t Transition) error
}

// Observer recibe el resultado de cada intento de transición (métricas).
type Observer interface {
	ObserveTransition(kind, event string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveTransition(string, string, error) {}

// NopObserver no hace nada.
var NopObserver Observer = nopObserver{}

// TxRunner ejecuta fn como una transacción de workflow: o se aplica todo o nada.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
