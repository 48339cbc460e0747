package payments

import "time"

// Status de un pago o donación.
// @Enum PENDING, COMPLETED, FAILED, CANCELLED, REFUNDED, PARTIALLY_REFUNDED
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
	StatusCancelled         Status = "CANCELLED"
	StatusRefunded          Status = "REFUNDED"
	StatusPartiallyRefunded Status = "PARTIALLY_REFUNDED"
)

// PaymentKind distingue pagos (tarifa de adopción, cuidado) de donaciones.
// @Enum PAYMENT, DONATION
type PaymentKind string

const (
	KindPayment  PaymentKind = "PAYMENT"
	KindDonation PaymentKind = "DONATION"
)

const DefaultCurrency = "USD"

// Payment: los montos van en centavos. TransactionID es único en el registro.
type Payment struct {
	ID            string
	TransactionID string
	Kind          PaymentKind
	UserID        string

	AmountCents   int64
	RefundedCents int64
	Currency      string

	Purpose string
	Method  string
	Notes   string

	// Solo donaciones.
	DedicatedPetID     *string
	DedicatedShelterID *string
	Anonymous          bool

	Status       Status
	FailReason   string
	RefundReason string

	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ProcessedAt *time.Time
	RefundedAt  *time.Time
}

func (p Payment) RemainingCents() int64 { return p.AmountCents - p.RefundedCents }
