package model

import (
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Transaction carries a transfer intent and its processing status
type Transaction struct {
	ID        string            `json:"id" cbor:"1,keyasint"`
	Sender    string            `json:"sender" cbor:"2,keyasint"`
	Recipient string            `json:"recipient" cbor:"3,keyasint"`
	Amount    int64             `json:"amount" cbor:"4,keyasint"`
	Timestamp int64             `json:"timestamp" cbor:"5,keyasint"`
	Signature string            `json:"signature" cbor:"6,keyasint"`
	Status    TransactionStatus `json:"status" cbor:"7,keyasint"`
}

// signingBody is the part of a transaction covered by its signature
type signingBody struct {
	_         struct{} `cbor:",toarray"`
	ID        string
	Sender    string
	Recipient string
	Amount    int64
	Timestamp int64
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// NewTransaction builds a pending transaction with a fresh id and the current time
func NewTransaction(sender, recipient string, amount int64) *Transaction {
	return &Transaction{
		ID:        uuid.NewString(),
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Timestamp: time.Now().Unix(),
		Status:    TxStatusPending,
	}
}

// SigningBytes returns the deterministic CBOR encoding of the signed fields.
// Signature and status are excluded.
func (t *Transaction) SigningBytes() ([]byte, error) {
	return encMode.Marshal(signingBody{
		ID:        t.ID,
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    t.Amount,
		Timestamp: t.Timestamp,
	})
}

// IsSigned reports whether a signature has been attached
func (t *Transaction) IsSigned() bool {
	return t.Signature != ""
}

// EncodeTransaction encodes a transaction record with deterministic CBOR
func EncodeTransaction(t *Transaction) ([]byte, error) {
	return encMode.Marshal(t)
}

// DecodeTransaction decodes a record produced by EncodeTransaction
func DecodeTransaction(data []byte) (*Transaction, error) {
	var t Transaction
	if err := cbor.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
