package pipeline

import (
	"github.com/sliink/chaincore/internal/model"
)

// ErrValidationFailed is returned by Submit when the validator rejects a transaction
var ErrValidationFailed = &model.Error{Code: model.CodeInvalidInput, Component: "pipeline", Message: "transaction failed validation"}

// Pipeline chains the stages in validate, sign, broadcast order for callers
// that do not need to drive each stage themselves. It owns no state; the
// stages keep their own lifecycle.
type Pipeline struct {
	Validator   *Validator
	Signer      *Signer
	Broadcaster *Broadcaster
}

// New creates a pipeline over the given stages
func New(validator *Validator, signer *Signer, broadcaster *Broadcaster) *Pipeline {
	return &Pipeline{
		Validator:   validator,
		Signer:      signer,
		Broadcaster: broadcaster,
	}
}

// Submit validates tx, signs it with privateKey and broadcasts the signed copy.
// It returns the ledger snapshot of the broadcast transaction.
func (p *Pipeline) Submit(tx *model.Transaction, privateKey string) (*model.Transaction, error) {
	valid, err := p.Validator.Validate(tx)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, &model.Error{
			Code:      ErrValidationFailed.Code,
			Component: ErrValidationFailed.Component,
			Message:   ErrValidationFailed.Message + ": " + tx.ID,
		}
	}

	signed, err := p.Signer.Sign(tx, privateKey)
	if err != nil {
		return nil, err
	}
	if _, err := p.Broadcaster.Broadcast(signed); err != nil {
		return nil, err
	}
	return p.Broadcaster.BroadcastedTransaction(signed.ID)
}

// Confirm confirms a previously submitted transaction and returns its ledger snapshot
func (p *Pipeline) Confirm(id string) (*model.Transaction, error) {
	if _, err := p.Broadcaster.ConfirmBroadcast(id); err != nil {
		return nil, err
	}
	return p.Broadcaster.BroadcastedTransaction(id)
}
