package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidTransactionType indicates an unsupported transaction type.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// Transaction holds a single signed balance change for an account.
//
// The amount sign encodes direction: positive increases what the
// counterparty owes the owner, negative decreases it. Payments are always
// stored negative. The type classifies the record but the balance math is
// driven by the sign alone.
type Transaction struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
	Date   string          `json:"date"` // YYYY-MM-DD, local-day granularity
}

// CreateTransactionParams is the input data to record a loan or a borrowing.
type CreateTransactionParams struct {
	Amount string `json:"amount"`
	Party  string `json:"party"`
	Type   string `json:"type"`
	Date   string `json:"date"`
}

// CreatePaymentParams is the input data to record a payment against an account.
type CreatePaymentParams struct {
	Amount string `json:"amount"`
	Date   string `json:"date"`
}
