package statement

import (
	"github.com/google/uuid"

	"fjacquet/statement-parser/internal/models"
	"fjacquet/statement-parser/internal/textutils"
)

// Canonicalize normalizes every record a strategy produced: the description
// is trimmed and length-bounded, the amount stored as a non-negative
// two-decimal value, the direction forced to one of the two valid values,
// and each record given an identifier and the account key it was parsed
// under. The input slice is modified in place and returned.
func Canonicalize(transactions []models.Transaction, accountKey string) []models.Transaction {
	for i := range transactions {
		tx := &transactions[i]

		tx.Description = textutils.NormalizeWhitespace(tx.Description)
		if len(tx.Description) > models.MaxDescriptionLength {
			tx.Description = tx.Description[:models.MaxDescriptionLength]
		}

		tx.Amount = tx.Amount.Abs().Round(2)
		if tx.Balance.Valid {
			tx.Balance.Decimal = tx.Balance.Decimal.Round(2)
		}

		if !tx.Direction.IsValid() {
			tx.Direction = models.PaidOut
		}

		if tx.AccountKey == "" {
			tx.AccountKey = accountKey
		}
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
	}
	return transactions
}
