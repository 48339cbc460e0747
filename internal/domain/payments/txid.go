package payments

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const txIDPrefix = "TXN-"

// maxTxIDAttempts: regeneraciones ante colisión de un id generado.
const maxTxIDAttempts = 5

var txIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{3,63}$`)

// NewTransactionID genera TXN- + 32 hex en minúsculas (122 bits aleatorios de un UUIDv4).
func NewTransactionID() string {
	u := uuid.New()
	return txIDPrefix + strings.ReplaceAll(u.String(), "-", "")
}

func validTransactionID(s string) bool { return txIDPattern.MatchString(s) }
