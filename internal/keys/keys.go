// Package keys provides the key material and signing primitives used by the
// security manager and the transaction signer.
package keys

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// AddressVersion is the base58check version byte used for addresses
const AddressVersion byte = 0x3f

// KeyPair holds hex encoded key material
type KeyPair struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

// Generator produces new key pairs
type Generator interface {
	GenerateKeyPair() (KeyPair, error)
}

// Secp256k1 generates secp256k1 key pairs
type Secp256k1 struct{}

// GenerateKeyPair creates a random secp256k1 key pair. The public key is the
// 33 byte compressed encoding.
func (Secp256k1) GenerateKeyPair() (KeyPair, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate secp256k1 key: %w", err)
	}
	return KeyPair{
		PrivateKey: hex.EncodeToString(crypto.FromECDSA(priv)),
		PublicKey:  hex.EncodeToString(crypto.CompressPubkey(&priv.PublicKey)),
	}, nil
}

// ParsePrivateKey decodes a hex secp256k1 private key
func ParsePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, err
	}
	return crypto.ToECDSA(raw)
}

// PublicKeyOf returns the compressed hex public key for a hex private key
func PublicKeyOf(privateKey string) (string, error) {
	priv, err := ParsePrivateKey(privateKey)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(crypto.CompressPubkey(&priv.PublicKey)), nil
}

// Address derives the base58check address of a hex public key
func Address(publicKey string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(publicKey, "0x"))
	if err != nil {
		return "", fmt.Errorf("decode public key: %w", err)
	}
	if _, err := crypto.DecompressPubkey(raw); err != nil {
		if _, err := crypto.UnmarshalPubkey(raw); err != nil {
			return "", errors.New("invalid secp256k1 public key")
		}
	}
	return base58.CheckEncode(btcutil.Hash160(raw), AddressVersion), nil
}

// Digest is the blake2b-256 hash messages are signed over
func Digest(message []byte) []byte {
	sum := blake2b.Sum256(message)
	return sum[:]
}

// Sign signs message with privateKey. A hex secp256k1 key yields a 65 byte
// recoverable ECDSA signature; any other opaque key yields a keyed blake2b MAC.
// The result is hex encoded.
func Sign(privateKey string, message []byte) (string, error) {
	if privateKey == "" {
		return "", errors.New("private key is empty")
	}
	digest := Digest(message)

	if priv, err := ParsePrivateKey(privateKey); err == nil {
		sig, err := crypto.Sign(digest, priv)
		if err != nil {
			return "", fmt.Errorf("ecdsa sign: %w", err)
		}
		return hex.EncodeToString(sig), nil
	}

	mac, err := blake2b.New256(macKey(privateKey))
	if err != nil {
		return "", fmt.Errorf("blake2b mac: %w", err)
	}
	mac.Write(digest)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify checks an ECDSA signature produced by Sign against a hex public key
func Verify(publicKey string, message []byte, signature string) bool {
	pub, err := hex.DecodeString(strings.TrimPrefix(publicKey, "0x"))
	if err != nil {
		return false
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}
	recovered, err := crypto.SigToPub(Digest(message), sig)
	if err != nil {
		return false
	}
	if len(pub) == 33 {
		return strings.EqualFold(hex.EncodeToString(crypto.CompressPubkey(recovered)), hex.EncodeToString(pub))
	}
	return strings.EqualFold(hex.EncodeToString(crypto.FromECDSAPub(recovered)), hex.EncodeToString(pub))
}

// blake2b accepts keys of at most 64 bytes
func macKey(privateKey string) []byte {
	key := []byte(privateKey)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		return sum[:]
	}
	return key
}
