package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBalance(t *testing.T) {
	testCases := []struct {
		name    string
		amounts []string
		want    string
	}{
		{name: "Empty", amounts: nil, want: "0"},
		{name: "SingleLoan", amounts: []string{"100"}, want: "100"},
		{name: "LoanAndPayment", amounts: []string{"100", "-40"}, want: "60"},
		{name: "Settled", amounts: []string{"100", "-100"}, want: "0"},
		{name: "OwnerOwes", amounts: []string{"-25.50"}, want: "-25.5"},
		{name: "FractionalCents", amounts: []string{"0.1", "0.2"}, want: "0.3"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			account := Account{ID: "a1", Party: "Bob"}
			for i, amount := range tc.amounts {
				account.Transactions = append(account.Transactions, Transaction{
					ID:     string(rune('a' + i)),
					Amount: decimal.RequireFromString(amount),
				})
			}

			require.True(t, account.Balance().Equal(decimal.RequireFromString(tc.want)),
				"Balance() = %s, want %s", account.Balance(), tc.want)
		})
	}
}

func TestNormalizeParty(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Bob", want: "bob"},
		{in: "  Bob  ", want: "bob"},
		{in: "ALICE", want: "alice"},
		{in: "", want: ""},
		{in: "   ", want: ""},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, NormalizeParty(tc.in), "NormalizeParty(%q)", tc.in)
	}
}
