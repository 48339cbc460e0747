package workflow

import "fmt"

// Rule declara una transición: desde cualquiera de From, el evento Event lleva a To.
type Rule[S ~string, E ~string] struct {
	From  []S
	Event E
	To    S
}

// Machine es la tabla cerrada (estado, evento) -> estado de una entidad.
// Pares no listados se rechazan por construcción.
type Machine[S ~string, E ~string] struct {
	kind     string
	initial  S
	states   []S
	known    map[S]bool
	terminal map[S]bool
	table    map[S]map[E]S
}

// MachineConfig agrupa la definición de una máquina.
type MachineConfig[S ~string, E ~string] struct {
	Kind     string
	Initial  S
	States   []S
	Terminal []S
	Rules    []Rule[S, E]
}

// NewMachine construye la tabla. Entra en pánico ante una definición inconsistente
// (estado desconocido o par duplicado): es un error de programación.
func NewMachine[S ~string, E ~string](cfg MachineConfig[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		kind:     cfg.Kind,
		initial:  cfg.Initial,
		states:   append([]S(nil), cfg.States...),
		known:    make(map[S]bool, len(cfg.States)),
		terminal: make(map[S]bool, len(cfg.Terminal)),
		table:    make(map[S]map[E]S),
	}
	for _, s := range cfg.States {
		m.known[s] = true
	}
	if !m.known[cfg.Initial] {
		panic(fmt.Sprintf("workflow %s: unknown initial state %q", cfg.Kind, cfg.Initial))
	}
	for _, s := range cfg.Terminal {
		if !m.known[s] {
			panic(fmt.Sprintf("workflow %s: unknown terminal state %q", cfg.Kind, s))
		}
		m.terminal[s] = true
	}
	for _, r := range cfg.Rules {
		if !m.known[r.To] {
			panic(fmt.Sprintf("workflow %s: unknown target state %q", cfg.Kind, r.To))
		}
		for _, from := range r.From {
			if !m.known[from] {
				panic(fmt.Sprintf("workflow %s: unknown source state %q", cfg.Kind, from))
			}
			row, ok := m.table[from]
			if !ok {
				row = make(map[E]S)
				m.table[from] = row
			}
			if _, dup := row[r.Event]; dup {
				panic(fmt.Sprintf("workflow %s: duplicate rule (%s, %s)", cfg.Kind, from, r.Event))
			}
			row[r.Event] = r.To
		}
	}
	return m
}

func (m *Machine[S, E]) Kind() string { return m.kind }
func (m *Machine[S, E]) Initial() S   { return m.initial }

func (m *Machine[S, E]) States() []S {
	return append([]S(nil), m.states...)
}

func (m *Machine[S, E]) Valid(s S) bool { return m.known[s] }

// IsTerminal: estado cerrado a updateStatus.
func (m *Machine[S, E]) IsTerminal(s S) bool { return m.terminal[s] }

// Fire aplica un evento. Solo consulta la tabla.
func (m *Machine[S, E]) Fire(from S, ev E) (S, error) {
	if to, ok := m.table[from][ev]; ok {
		return to, nil
	}
	var zero S
	return zero, &TransitionError{Kind: m.kind, From: string(from), Event: string(ev)}
}

// Can indica si el evento es aplicable desde el estado.
func (m *Machine[S, E]) Can(from S, ev E) bool {
	_, ok := m.table[from][ev]
	return ok
}

// EventFor resuelve el evento que lleva de from a to (para updateStatus).
// Falla si from es terminal o si ninguna regla conecta ambos estados.
func (m *Machine[S, E]) EventFor(from, to S) (E, error) {
	var zero E
	if !m.known[to] {
		return zero, Invalid("status", fmt.Sprintf("unknown %s status %q", m.kind, to))
	}
	if m.terminal[from] {
		return zero, &TransitionError{Kind: m.kind, From: string(from), To: string(to)}
	}
	for ev, target := range m.table[from] {
		if target == to {
			return ev, nil
		}
	}
	return zero, &TransitionError{Kind: m.kind, From: string(from), To: string(to)}
}

// Events lista los eventos aplicables desde un estado.
func (m *Machine[S, E]) Events(from S) []E {
	out := make([]E, 0, len(m.table[from]))
	for ev := range m.table[from] {
		out = append(out, ev)
	}
	return out
}
