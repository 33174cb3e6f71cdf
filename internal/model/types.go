package model

import "time"

// ComponentStatus represents the lifecycle state of a component
type ComponentStatus string

const (
	// StatusUninitialized indicates the component has not been initialized or was shut down
	StatusUninitialized ComponentStatus = "UNINITIALIZED"
	// StatusReady indicates the component has been initialized and accepts guarded operations
	StatusReady ComponentStatus = "READY"
)

// TransactionStatus represents the processing status of a transaction
type TransactionStatus string

const (
	// TxStatusPending indicates the transaction has not been broadcast yet
	TxStatusPending TransactionStatus = "PENDING"
	// TxStatusBroadcast indicates the transaction was handed to the network
	TxStatusBroadcast TransactionStatus = "BROADCAST"
	// TxStatusConfirmed indicates the broadcast was confirmed
	TxStatusConfirmed TransactionStatus = "CONFIRMED"
)

var txStatusRank = map[TransactionStatus]int{
	TxStatusPending:   0,
	TxStatusBroadcast: 1,
	TxStatusConfirmed: 2,
}

// Valid reports whether the status is one of the known values
func (s TransactionStatus) Valid() bool {
	_, ok := txStatusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next keeps the status monotonic.
// Staying on the same status is allowed.
func (s TransactionStatus) CanAdvanceTo(next TransactionStatus) bool {
	from, ok := txStatusRank[s]
	if !ok {
		return false
	}
	to, ok := txStatusRank[next]
	if !ok {
		return false
	}
	return to >= from
}

// EventType represents the type of system event
type EventType string

const (
	// EventComponentReady indicates a component finished initialization
	EventComponentReady EventType = "COMPONENT_READY"
	// EventComponentShutdown indicates a component was shut down
	EventComponentShutdown EventType = "COMPONENT_SHUTDOWN"
	// EventComponentFailed indicates a component lifecycle call returned failure
	EventComponentFailed EventType = "COMPONENT_FAILED"
	// EventConfigChange indicates the registry configuration has changed
	EventConfigChange EventType = "CONFIG_CHANGE"
	// EventTransactionBroadcast indicates a transaction entered the ledger as BROADCAST
	EventTransactionBroadcast EventType = "TRANSACTION_BROADCAST"
	// EventTransactionConfirmed indicates a ledger entry moved to CONFIRMED
	EventTransactionConfirmed EventType = "TRANSACTION_CONFIRMED"
)

// HealthStatus represents the health status of the system or a component
type HealthStatus struct {
	Status     ComponentStatus         `json:"status"`
	Timestamp  time.Time               `json:"timestamp"`
	Message    string                  `json:"message,omitempty"`
	LastError  string                  `json:"last_error,omitempty"`
	Components map[string]HealthStatus `json:"components,omitempty"`
}
