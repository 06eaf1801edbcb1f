// Package models defines the canonical data types shared by every parser:
// the parsed transaction record, the parsing pattern looked up from the
// registry, and the document passed in from the text extraction service.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction increases or decreases the account.
type Direction string

const (
	PaidIn  Direction = "Paid In"
	PaidOut Direction = "Paid Out"
)

// IsValid reports whether d is one of the two known directions.
func (d Direction) IsValid() bool {
	return d == PaidIn || d == PaidOut
}

// MaxDescriptionLength bounds the description of a canonical transaction.
const MaxDescriptionLength = 255

// Transaction is the canonical output unit of the parsing engine.
// It is created by a dialect or generic parser and is immutable once
// canonicalized by the orchestrator.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Direction   Direction
	Balance     decimal.NullDecimal
	AccountKey  string
}

// HasBalance reports whether a running balance was extracted for this record.
func (t Transaction) HasBalance() bool {
	return t.Balance.Valid
}
