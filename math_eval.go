package reel

import (
	"math"

	"github.com/google/uuid"
)

// MathEvaluator computes scalar utility nodes used to drive properties
// from other pins.
type MathEvaluator struct{}

// Handles returns the math prefix.
func (MathEvaluator) Handles() []string { return []string{"math."} }

// Evaluate computes the result pin.
func (MathEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
	if pin != "result" {
		return NonePin(), nil
	}
	node, _ := ctx.Project.GraphNode(nodeID)

	pull := func(name string, def float64) (float64, error) {
		v, err := ctx.PullInputValue(nodeID, name)
		if err != nil {
			return 0, err
		}
		return v.AsScalar(def), nil
	}

	switch node.TypeID {
	case "math.add":
		a, err := pull("a", 0)
		if err != nil {
			return NonePin(), err
		}
		b, err := pull("b", 0)
		if err != nil {
			return NonePin(), err
		}
		return ScalarPin(a + b), nil

	case "math.multiply":
		a, err := pull("a", 1)
		if err != nil {
			return NonePin(), err
		}
		b, err := pull("b", 1)
		if err != nil {
			return NonePin(), err
		}
		return ScalarPin(a * b), nil

	case "math.clamp":
		v, err := pull("value", 0)
		if err != nil {
			return NonePin(), err
		}
		lo, err := pull("min", 0)
		if err != nil {
			return NonePin(), err
		}
		hi, err := pull("max", 1)
		if err != nil {
			return NonePin(), err
		}
		return ScalarPin(math.Min(math.Max(v, lo), hi)), nil
	}
	return NonePin(), nil
}
