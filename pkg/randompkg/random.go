// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/go-petr/lendbook/pkg/txtypepkg"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Party generates a random counterparty name.
func Party() string {
	return String(6)
}

// Amount generates a random positive amount between min and max as a string.
func Amount(min, max float64) string {
	return fmt.Sprintf("%.2f", FloatBetween(min, max))
}

// Date generates a random ISO date within the year 2024.
func Date() string {
	return fmt.Sprintf("2024-%02d-%02d", Intn(12)+1, Intn(28)+1)
}

// TransactionType generates a random loan transaction type.
func TransactionType() string {
	types := []string{txtypepkg.Lent, txtypepkg.Borrowed}
	return types[Intn(len(types))]
}
