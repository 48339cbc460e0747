package history

import "pet-adoption/internal/domain/workflow"

// Entry es una transición aplicada. El journal es append-only.
type Entry = workflow.Transition

// Kinds conocidos (coinciden con el Kind de cada máquina).
var Kinds = map[string]bool{
	"pet":            true,
	"application":    true,
	"booking":        true,
	"payment":        true,
	"medical_record": true,
}
