// Package txtypepkg provides common transaction type functionality for apps.
package txtypepkg

// Constants for all supported transaction types.
const (
	Lent     = "lent"
	Borrowed = "borrowed"
	Payment  = "payment"
)

// SupportedTypes holds all the supported transaction types.
var SupportedTypes = []string{
	Lent,
	Borrowed,
	Payment,
}

// IsSupportedType returns true if the transaction type is supported.
func IsSupportedType(txType string) bool {
	for _, t := range SupportedTypes {
		if t == txType {
			return true
		}
	}

	return false
}
