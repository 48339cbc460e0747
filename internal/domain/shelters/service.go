package shelters

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"pet-adoption/internal/domain/workflow"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Name     string
	City     string
	Address  string
	Email    string
	Phone    string
	Capacity int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Shelter, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Shelter{}, workflow.Invalid("name", "is required")
	}
	if in.Capacity < 0 {
		return Shelter{}, workflow.Invalid("capacity", "must be >= 0")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return Shelter{}, workflow.Invalid("email", "is not a valid address")
		}
	}

	now := s.now()
	sh := Shelter{
		ID:        uuid.NewString(),
		Name:      name,
		City:      strings.TrimSpace(in.City),
		Address:   strings.TrimSpace(in.Address),
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Capacity:  in.Capacity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		return Shelter{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Shelter, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetByID(ctx, id)
	if errors.Is(err, workflow.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
