package pipeline

import (
	"github.com/jinzhu/copier"
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/keys"
	"github.com/sliink/chaincore/internal/model"
)

// SignFunc produces a signature over message with an opaque private key
type SignFunc func(privateKey string, message []byte) (string, error)

// Signer attaches signatures to transactions
type Signer struct {
	sign SignFunc
	core.BaseComponent
}

// NewSigner creates a new transaction signer. A nil sign function selects keys.Sign.
func NewSigner(sign SignFunc) *Signer {
	if sign == nil {
		sign = keys.Sign
	}
	return &Signer{
		sign:          sign,
		BaseComponent: core.NewBaseComponent("transaction_signer"),
	}
}

// Sign returns a copy of tx carrying a signature derived from privateKey.
// The input is not modified and the status is left as it was.
func (s *Signer) Sign(tx *model.Transaction, privateKey string) (*model.Transaction, error) {
	var signed *model.Transaction
	err := s.Guard(func() error {
		if tx == nil {
			return model.InvalidInput(s.Name(), "transaction is nil")
		}
		if privateKey == "" {
			return model.InvalidInput(s.Name(), "private key is empty")
		}

		message, err := tx.SigningBytes()
		if err != nil {
			return model.OperationFailed(s.Name(), err, "encode transaction %q", tx.ID)
		}
		signature, err := s.sign(privateKey, message)
		if err != nil {
			return model.OperationFailed(s.Name(), err, "sign transaction %q", tx.ID)
		}

		out := &model.Transaction{}
		if err := copier.Copy(out, tx); err != nil {
			return model.OperationFailed(s.Name(), err, "copy transaction %q", tx.ID)
		}
		out.Signature = signature
		signed = out
		return nil
	})
	return signed, err
}

// Verify checks an ECDSA transaction signature against a hex public key.
// Signatures made with opaque (non secp256k1) keys never verify.
func (s *Signer) Verify(tx *model.Transaction, publicKey string) (bool, error) {
	var ok bool
	err := s.Guard(func() error {
		if tx == nil {
			return model.InvalidInput(s.Name(), "transaction is nil")
		}
		if publicKey == "" {
			return model.InvalidInput(s.Name(), "public key is empty")
		}
		if !tx.IsSigned() {
			return nil
		}
		message, err := tx.SigningBytes()
		if err != nil {
			return model.OperationFailed(s.Name(), err, "encode transaction %q", tx.ID)
		}
		ok = keys.Verify(publicKey, message, tx.Signature)
		return nil
	})
	return ok, err
}
