package reel

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// NodeEvaluator computes output pin values for the node types it handles.
type NodeEvaluator interface {
	// Handles returns the type_id prefixes this evaluator owns, e.g.
	// "effect." or "compositing.transform".
	Handles() []string
	// Evaluate computes one output pin of one node.
	Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error)
}

// EvaluatorSet dispatches node evaluation by type_id prefix. Prefix
// ownership is validated once at construction: no registered prefix may be
// a prefix of another, so dispatch is unambiguous no matter the order.
type EvaluatorSet struct {
	entries []evaluatorEntry
}

type evaluatorEntry struct {
	prefix string
	eval   NodeEvaluator
}

// NewEvaluatorSet builds a set from the given evaluators, validating
// prefix uniqueness.
func NewEvaluatorSet(evals ...NodeEvaluator) (*EvaluatorSet, error) {
	s := &EvaluatorSet{}
	for _, ev := range evals {
		for _, prefix := range ev.Handles() {
			for _, e := range s.entries {
				if strings.HasPrefix(prefix, e.prefix) || strings.HasPrefix(e.prefix, prefix) {
					return nil, fmt.Errorf("reel: evaluator prefix %q overlaps %q", prefix, e.prefix)
				}
			}
			s.entries = append(s.entries, evaluatorEntry{prefix: prefix, eval: ev})
		}
	}
	return s, nil
}

// For returns the evaluator owning the type id.
func (s *EvaluatorSet) For(typeID string) (NodeEvaluator, bool) {
	for _, e := range s.entries {
		if strings.HasPrefix(typeID, e.prefix) {
			return e.eval, true
		}
	}
	return nil, false
}

type pinKey struct {
	node uuid.UUID
	pin  string
}

// EvalContext is the state of one evaluation pass: a project snapshot, a
// composition and time point, the collaborator set, and a memo cache keyed
// by (node, pin). Contexts are single-goroutine; parallel workers each get
// their own.
type EvalContext struct {
	Project *Project
	Comp    *Composition

	Renderer Renderer
	Source   Source
	Effects  *EffectRegistry
	Props    *PropertyEvaluators
	Evals    *EvaluatorSet
	Types    *TypeRegistry

	// Engine links back to the owning engine for nested composition
	// rendering. Nil disables nesting.
	Engine *Engine

	// Frame is the timeline frame being evaluated; Time is the same
	// point in seconds.
	Frame int
	Time  float64

	Log *slog.Logger

	cache    map[pinKey]PinValue
	inflight map[pinKey]bool

	// compStack holds the compositions currently being rendered above
	// this context, so composition reference loops fail instead of
	// recursing.
	compStack map[uuid.UUID]bool
}

func (ctx *EvalContext) init() {
	if ctx.cache == nil {
		ctx.cache = make(map[pinKey]PinValue)
	}
	if ctx.inflight == nil {
		ctx.inflight = make(map[pinKey]bool)
	}
	if ctx.Log == nil {
		ctx.Log = slog.Default()
	}
}

// Info returns the property evaluation time context.
func (ctx *EvalContext) Info() EvalInfo {
	fps := 0.0
	if ctx.Comp != nil {
		fps = ctx.Comp.FPS
	}
	return EvalInfo{Time: ctx.Time, Frame: ctx.Frame, FPS: fps}
}

// EvaluatePin computes one output pin, memoized for the rest of the pass.
//
// The graph is kept acyclic at mutation time, so recursion terminates on
// any graph built through the Store. The in-flight set is defense in depth:
// a hand-corrupted cyclic graph returns ErrCycle instead of hanging.
func (ctx *EvalContext) EvaluatePin(nodeID uuid.UUID, pin string) (PinValue, error) {
	ctx.init()
	key := pinKey{node: nodeID, pin: pin}
	if v, ok := ctx.cache[key]; ok {
		return v, nil
	}
	if ctx.inflight[key] {
		return NonePin(), fmt.Errorf("evaluating %s.%s: %w", nodeID, pin, ErrCycle)
	}
	ctx.inflight[key] = true
	defer delete(ctx.inflight, key)

	n, ok := ctx.Project.Node(nodeID)
	if !ok {
		return NonePin(), fmt.Errorf("evaluating %s.%s: %w", nodeID, pin, ErrNodeNotFound)
	}

	var v PinValue
	var err error
	switch node := n.(type) {
	case *Clip:
		v, err = evaluateClipPin(node, pin, ctx)
	case *GraphNode:
		ev, ok := ctx.Evals.For(node.TypeID)
		if !ok {
			return NonePin(), fmt.Errorf("node type %q: %w", node.TypeID, ErrNoEvaluator)
		}
		v, err = ev.Evaluate(nodeID, pin, ctx)
	default:
		// Tracks have no pins.
		v = NonePin()
	}
	if err != nil {
		return NonePin(), err
	}
	ctx.cache[key] = v
	return v, nil
}

// PullInputValue resolves an input pin: the connected upstream output if a
// connection exists, otherwise the pin's declared default, otherwise the
// declared type's zero. Absence is never an error.
func (ctx *EvalContext) PullInputValue(nodeID uuid.UUID, pin string) (PinValue, error) {
	ctx.init()
	if conn, ok := ctx.Project.InputConnection(PinID{NodeID: nodeID, PinName: pin}); ok {
		return ctx.EvaluatePin(conn.From.NodeID, conn.From.PinName)
	}
	if gn, ok := ctx.Project.GraphNode(nodeID); ok && ctx.Types != nil {
		if def, ok := ctx.Types.Lookup(gn.TypeID); ok {
			if pd, ok := def.Pin(pin); ok {
				if pd.Default != nil {
					return pinFromProperty(*pd.Default), nil
				}
				return zeroPinValue(pd.Type), nil
			}
		}
	}
	return NonePin(), nil
}

// ResolveValue evaluates a named property at the context's time, or def
// when the property is absent.
func (ctx *EvalContext) ResolveValue(props *PropertyMap, name string, def PropertyValue) PropertyValue {
	p, ok := props.Get(name)
	if !ok {
		return def
	}
	return ctx.Props.Evaluate(p, ctx.Info())
}

// ResolveNumber evaluates a numeric property, coercing Integer.
func (ctx *EvalContext) ResolveNumber(props *PropertyMap, name string, def float64) float64 {
	p, ok := props.Get(name)
	if !ok {
		return def
	}
	return ctx.Props.Evaluate(p, ctx.Info()).AsNumber(def)
}

// ResolveString evaluates a string property.
func (ctx *EvalContext) ResolveString(props *PropertyMap, name string, def string) string {
	p, ok := props.Get(name)
	if !ok {
		return def
	}
	return ctx.Props.Evaluate(p, ctx.Info()).AsString(def)
}

// ResolveBool evaluates a boolean property.
func (ctx *EvalContext) ResolveBool(props *PropertyMap, name string, def bool) bool {
	p, ok := props.Get(name)
	if !ok {
		return def
	}
	return ctx.Props.Evaluate(p, ctx.Info()).AsBool(def)
}

// ResolveColor evaluates a color property.
func (ctx *EvalContext) ResolveColor(props *PropertyMap, name string, def Color) Color {
	p, ok := props.Get(name)
	if !ok {
		return def
	}
	return ctx.Props.Evaluate(p, ctx.Info()).AsColor(def)
}

// ResolveVec2 evaluates a Vec2 property.
func (ctx *EvalContext) ResolveVec2(props *PropertyMap, name string, dx, dy float64) (x, y float64) {
	p, ok := props.Get(name)
	if !ok {
		return dx, dy
	}
	v := ctx.Props.Evaluate(p, ctx.Info())
	if v.Kind != KindVec2 {
		return dx, dy
	}
	return v.Vec2()
}

// ResolveAll evaluates every property on the map into pin values, in
// property order. Used by the effect evaluator to pass full param sets.
func (ctx *EvalContext) ResolveAll(props *PropertyMap) map[string]PinValue {
	out := make(map[string]PinValue, props.Len())
	for _, name := range props.Keys() {
		p, _ := props.Get(name)
		out[name] = pinFromProperty(ctx.Props.Evaluate(p, ctx.Info()))
	}
	return out
}
