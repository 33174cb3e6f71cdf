// Package security exposes key generation and message signing as a managed component.
package security

import (
	"github.com/sliink/chaincore/internal/core"
	"github.com/sliink/chaincore/internal/keys"
	"github.com/sliink/chaincore/internal/model"
)

// Manager generates key pairs and signs messages
type Manager struct {
	generator keys.Generator
	core.BaseComponent
}

// NewManager creates a new security manager. A nil generator selects secp256k1.
func NewManager(generator keys.Generator) *Manager {
	if generator == nil {
		generator = keys.Secp256k1{}
	}
	return &Manager{
		generator:     generator,
		BaseComponent: core.NewBaseComponent("security_manager"),
	}
}

// GenerateKeyPair returns a fresh key pair. Both halves are non-empty.
func (m *Manager) GenerateKeyPair() (keys.KeyPair, error) {
	var pair keys.KeyPair
	err := m.Guard(func() error {
		var err error
		pair, err = m.generator.GenerateKeyPair()
		if err != nil {
			return model.OperationFailed(m.Name(), err, "generate key pair")
		}
		if pair.PrivateKey == "" || pair.PublicKey == "" {
			return model.OperationFailed(m.Name(), nil, "generator returned an incomplete key pair")
		}
		return nil
	})
	if err != nil {
		return keys.KeyPair{}, err
	}
	return pair, nil
}

// SignMessage signs message with privateKey
func (m *Manager) SignMessage(privateKey string, message []byte) (string, error) {
	var signature string
	err := m.Guard(func() error {
		if privateKey == "" {
			return model.InvalidInput(m.Name(), "private key is empty")
		}
		if len(message) == 0 {
			return model.InvalidInput(m.Name(), "message is empty")
		}
		var err error
		signature, err = keys.Sign(privateKey, message)
		if err != nil {
			return model.OperationFailed(m.Name(), err, "sign message")
		}
		return nil
	})
	return signature, err
}

// VerifySignature checks a signature produced by SignMessage with a secp256k1 key
func (m *Manager) VerifySignature(publicKey string, message []byte, signature string) (bool, error) {
	var ok bool
	err := m.Guard(func() error {
		if publicKey == "" || signature == "" {
			return model.InvalidInput(m.Name(), "public key and signature are required")
		}
		ok = keys.Verify(publicKey, message, signature)
		return nil
	})
	return ok, err
}

// Address derives the address of a public key
func (m *Manager) Address(publicKey string) (string, error) {
	var addr string
	err := m.Guard(func() error {
		var err error
		addr, err = keys.Address(publicKey)
		if err != nil {
			return model.InvalidInput(m.Name(), "%v", err)
		}
		return nil
	})
	return addr, err
}
