// Package ledgerservice manages bussines logic layer of the ledger.
package ledgerservice

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/lendbook/internal/domain"
	"github.com/go-petr/lendbook/pkg/txtypepkg"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Load(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, accounts []domain.Account) error
}

// Service facilitates ledger service layer logic.
//
// It owns the in-memory ledger: loaded once at construction and persisted
// through the repo after every mutation. If a save fails the mutation is not
// rolled back, so memory and storage may diverge until the next successful
// save. The mutex exists because the delivery layer serves requests
// concurrently.
type Service struct {
	repo Repo

	mu       sync.Mutex
	accounts []domain.Account
}

// New loads the persisted ledger and returns the service that owns it.
func New(ctx context.Context, r Repo) (*Service, error) {
	accounts, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &Service{repo: r, accounts: accounts}, nil
}

// Accounts returns a copy of all accounts in persisted order.
func (s *Service) Accounts(ctx context.Context) []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyAccounts(s.accounts)
}

// AddTransaction records a loan or a borrowing against the counterparty
// named in arg, creating the account on first use. Party names match
// case-insensitively, so "Bob" and "bob" land on the same account.
func (s *Service) AddTransaction(ctx context.Context, arg domain.CreateTransactionParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if !txtypepkg.IsSupportedType(arg.Type) {
		return domain.Account{}, domain.ErrInvalidTransactionType
	}

	party := strings.TrimSpace(arg.Party)
	if party == "" {
		return domain.Account{}, domain.ErrInvalidParty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findParty(party)
	if i < 0 {
		s.accounts = append(s.accounts, domain.Account{
			ID:           uuid.NewString(),
			Party:        party,
			Transactions: []domain.Transaction{},
		})
		i = len(s.accounts) - 1
	}

	s.accounts[i].Transactions = append(s.accounts[i].Transactions, domain.Transaction{
		ID:     uuid.NewString(),
		Amount: amount,
		Type:   arg.Type,
		Date:   arg.Date,
	})

	if err := s.repo.Save(ctx, s.accounts); err != nil {
		return domain.Account{}, err
	}

	return copyAccount(s.accounts[i]), nil
}

// AddPayment records a payment against the account. The stored amount is
// always the negative of the supplied magnitude regardless of its sign; a
// payment can only reduce what the counterparty owes.
func (s *Service) AddPayment(ctx context.Context, accountID string, arg domain.CreatePaymentParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	amount, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findAccount(accountID)
	if i < 0 {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	s.accounts[i].Transactions = append(s.accounts[i].Transactions, domain.Transaction{
		ID:     uuid.NewString(),
		Amount: amount.Abs().Neg(),
		Type:   txtypepkg.Payment,
		Date:   arg.Date,
	})

	if err := s.repo.Save(ctx, s.accounts); err != nil {
		return domain.Account{}, err
	}

	return copyAccount(s.accounts[i]), nil
}

// DeleteTransaction removes the transaction from the account. Unknown ids
// are a silent no-op so deletes stay idempotent.
func (s *Service) DeleteTransaction(ctx context.Context, accountID, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findAccount(accountID)
	if i < 0 {
		return nil
	}

	transactions := s.accounts[i].Transactions
	for j, t := range transactions {
		if t.ID == transactionID {
			s.accounts[i].Transactions = append(transactions[:j:j], transactions[j+1:]...)
			return s.repo.Save(ctx, s.accounts)
		}
	}

	return nil
}

// DeleteAccount removes the account and all its transactions. Unknown ids
// are a silent no-op.
func (s *Service) DeleteAccount(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findAccount(accountID)
	if i < 0 {
		return nil
	}

	s.accounts = append(s.accounts[:i:i], s.accounts[i+1:]...)

	return s.repo.Save(ctx, s.accounts)
}

// Export returns a lossless JSON serialization of the entire ledger,
// suitable for re-import.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return json.MarshalIndent(s.accounts, "", "  ")
}

// Import replaces the ledger wholesale with the parsed blob.
//
// A blob that is not a JSON array of account records fails with
// domain.ErrInvalidLedger and leaves the current ledger untouched. The new
// state is persisted before the in-memory ledger is swapped.
func (s *Service) Import(ctx context.Context, blob []byte) error {
	l := zerolog.Ctx(ctx)

	accounts, err := parseLedger(blob)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidLedger
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, accounts); err != nil {
		return err
	}

	s.accounts = accounts

	return nil
}

// MergeShared merges a single decoded shared account into the ledger.
//
// If an account with the same party exists (case-insensitive) its entire
// record is overwritten by the incoming one, ids included; otherwise the
// incoming account is appended. This is a whole-record replace, not a
// per-transaction union.
func (s *Service) MergeShared(ctx context.Context, account domain.Account) (domain.Account, error) {
	account.Party = strings.TrimSpace(account.Party)
	if account.Party == "" {
		return domain.Account{}, domain.ErrInvalidSharedAccount
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	if account.Transactions == nil {
		account.Transactions = []domain.Transaction{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findParty(account.Party); i >= 0 {
		s.accounts[i] = account
	} else {
		s.accounts = append(s.accounts, account)
	}

	if err := s.repo.Save(ctx, s.accounts); err != nil {
		return domain.Account{}, err
	}

	return copyAccount(account), nil
}

// findParty returns the index of the account matching the party
// case-insensitively, or -1. Callers must hold s.mu.
func (s *Service) findParty(party string) int {
	key := domain.NormalizeParty(party)

	for i, a := range s.accounts {
		if domain.NormalizeParty(a.Party) == key {
			return i
		}
	}

	return -1
}

// findAccount returns the index of the account with the given id, or -1.
// Callers must hold s.mu.
func (s *Service) findAccount(id string) int {
	for i, a := range s.accounts {
		if a.ID == id {
			return i
		}
	}

	return -1
}

// parseLedger validates that the blob is structurally a ledger snapshot:
// a JSON array whose every element carries a party. Missing ids get fresh
// ones so records imported from older exports stay addressable.
func parseLedger(blob []byte) ([]domain.Account, error) {
	var accounts []domain.Account

	if err := json.Unmarshal(blob, &accounts); err != nil {
		return nil, err
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}

	for i := range accounts {
		accounts[i].Party = strings.TrimSpace(accounts[i].Party)
		if accounts[i].Party == "" {
			return nil, domain.ErrInvalidParty
		}

		if accounts[i].ID == "" {
			accounts[i].ID = uuid.NewString()
		}

		if accounts[i].Transactions == nil {
			accounts[i].Transactions = []domain.Transaction{}
		}

		for j := range accounts[i].Transactions {
			if accounts[i].Transactions[j].ID == "" {
				accounts[i].Transactions[j].ID = uuid.NewString()
			}
		}
	}

	return accounts, nil
}

func copyAccount(a domain.Account) domain.Account {
	out := a
	out.Transactions = make([]domain.Transaction, len(a.Transactions))
	copy(out.Transactions, a.Transactions)

	return out
}

func copyAccounts(accounts []domain.Account) []domain.Account {
	out := make([]domain.Account, len(accounts))
	for i, a := range accounts {
		out[i] = copyAccount(a)
	}

	return out
}
