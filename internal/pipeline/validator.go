// Package pipeline implements the transaction stages: validate, sign,
// broadcast and confirm. Each stage is an independent component; callers
// carry the transaction between them.
package pipeline

import (
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/model"
)

// Validator checks the structural validity of transactions
type Validator struct {
	core.BaseComponent
}

// NewValidator creates a new transaction validator
func NewValidator() *Validator {
	return &Validator{
		BaseComponent: core.NewBaseComponent("transaction_validator"),
	}
}

// Validate reports whether tx is well formed. An empty sender or a negative
// amount makes it invalid; that outcome is a false result, not an error.
func (v *Validator) Validate(tx *model.Transaction) (bool, error) {
	var valid bool
	err := v.Guard(func() error {
		if tx == nil {
			return model.InvalidInput(v.Name(), "transaction is nil")
		}
		valid = tx.Sender != "" && tx.Amount >= 0
		return nil
	})
	return valid, err
}
