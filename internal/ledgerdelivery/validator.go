package ledgerdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/go-petr/lendbook/pkg/txtypepkg"
)

// ValidTransactionType validates whether the transaction type is supported.
var ValidTransactionType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return txtypepkg.IsSupportedType(t)
	}
	return false
}
