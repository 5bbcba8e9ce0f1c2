package reel

import "github.com/google/uuid"

// PinID addresses one pin on one node.
type PinID struct {
	NodeID  uuid.UUID `json:"node_id"`
	PinName string    `json:"pin_name"`
}

// Connection is a directed edge from an output pin to an input pin. Input
// pins are single-valued; output pins fan out freely. The slice order in
// Project.Connections is the tie-break order for chain resolution.
type Connection struct {
	ID   uuid.UUID `json:"id"`
	From PinID     `json:"from"`
	To   PinID     `json:"to"`
}

// NewConnection builds a connection with a fresh id.
func NewConnection(from, to PinID) *Connection {
	return &Connection{ID: uuid.New(), From: from, To: to}
}
