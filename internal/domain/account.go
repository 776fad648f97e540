// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidParty indicates a blank counterparty name.
	ErrInvalidParty = errors.New("invalid party")
	// ErrInvalidLedger indicates that the imported data is not a valid ledger snapshot.
	ErrInvalidLedger = errors.New("invalid ledger data")
	// ErrInvalidSharedAccount indicates that the shared account payload cannot be decoded.
	ErrInvalidSharedAccount = errors.New("invalid shared account payload")
)

// Account holds the transaction history for a single counterparty.
type Account struct {
	ID           string        `json:"id"`
	Party        string        `json:"party"`
	Transactions []Transaction `json:"transactions"`
}

// Balance returns the sum of the account's transaction amounts.
//
// Positive means the counterparty owes the owner, negative means the owner
// owes the counterparty, zero means settled. The balance is always derived
// from the transactions and never stored.
func (a Account) Balance() decimal.Decimal {
	balance := decimal.Zero

	for _, t := range a.Transactions {
		balance = balance.Add(t.Amount)
	}

	return balance
}

// NormalizeParty returns the comparison key for a counterparty name.
//
// Party is both a display string and a case-insensitive natural key; every
// lookup site must go through this single routine.
func NormalizeParty(party string) string {
	return strings.ToLower(strings.TrimSpace(party))
}
