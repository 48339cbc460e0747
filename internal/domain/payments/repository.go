package payments

import "context"

// Repository. TransactionID es único: un duplicado devuelve workflow.ErrConflict.
type Repository interface {
	Create(ctx context.Context, p Payment) error
	GetByID(ctx context.Context, id string) (Payment, error)
	GetByTransactionID(ctx context.Context, txID string) (Payment, error)

	// UpdateIf: control optimista sobre Version.
	UpdateIf(ctx context.Context, p Payment, fromVersion int64) error

	ListByUser(ctx context.Context, userID string) ([]Payment, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Payment, error)
	// TotalByStatus suma AmountCents por estado para un tipo.
	TotalByStatus(ctx context.Context, kind PaymentKind) (map[Status]int64, error)
}

// Directory: lookups de solo lectura (mascotas, refugios) para dedicar donaciones.
type Directory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
