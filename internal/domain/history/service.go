package history

import (
	"context"
	"strings"

	"pet-adoption/internal/domain/workflow"

	"github.com/google/uuid"
)

// Service implementa workflow.Recorder sobre el Repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record se llama dentro de la transacción del workflow (ctx lleva la tx).
func (s *Service) Record(ctx context.Context, t workflow.Transition) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Kind == "" || t.SubjectID == "" || t.To == "" {
		return workflow.Invalid("transition", "kind, subject and target status are required")
	}
	return s.repo.Append(ctx, t)
}

func (s *Service) ListBySubject(ctx context.Context, kind, subjectID string) ([]Entry, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	subjectID = strings.TrimSpace(subjectID)
	if !Kinds[kind] {
		return nil, workflow.Invalid("kind", "must be pet, application, booking, payment or medical_record")
	}
	if subjectID == "" {
		return nil, workflow.Invalid("subject_id", "is required")
	}
	return s.repo.ListBySubject(ctx, kind, subjectID)
}
