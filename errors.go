package reel

import "errors"

// Structural graph errors returned by the Store mutation API. Data-level
// absence (a missing property, an unconnected pin) is never an error — it
// degrades to a None pin or a default value instead.
var (
	// ErrNodeNotFound is returned when an operation references a node id
	// that does not exist in the project registry.
	ErrNodeNotFound = errors.New("reel: node not found")

	// ErrConnectionNotFound is returned when removing a connection id that
	// does not exist.
	ErrConnectionNotFound = errors.New("reel: connection not found")

	// ErrInputOccupied is returned when connecting to an input pin that
	// already has a connection. Input pins are single-valued.
	ErrInputOccupied = errors.New("reel: input pin already connected")

	// ErrSelfConnection is returned when a connection's endpoints are the
	// same node.
	ErrSelfConnection = errors.New("reel: cannot connect a node to itself")

	// ErrCycle is returned when adding a connection would make the graph
	// cyclic. Cycle-freedom is a structural invariant enforced here, at
	// mutation time, so evaluation can recurse without a depth bound.
	ErrCycle = errors.New("reel: connection would create a cycle")

	// ErrTypeMismatch is returned when a connection's pin data types are
	// incompatible. PinAny matches every type.
	ErrTypeMismatch = errors.New("reel: incompatible pin data types")

	// ErrUnknownEffect is returned by EffectRegistry.Apply for a name with
	// no registered implementation. Unlike a missing property, silently
	// skipping a named effect would produce a wrong frame, so this is hard.
	ErrUnknownEffect = errors.New("reel: unknown effect")

	// ErrNoEvaluator is returned when a graph node's type_id matches no
	// registered node evaluator prefix.
	ErrNoEvaluator = errors.New("reel: no evaluator for node type")

	// ErrUnknownNodeType is returned when instantiating a graph node whose
	// type_id has no registered NodeTypeDefinition.
	ErrUnknownNodeType = errors.New("reel: unknown node type")
)
