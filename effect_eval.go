package reel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EffectEvaluator runs image effects. The effect name is the type id
// suffix after "effect."; its parameters are every resolved node property
// plus the synthetic u_time.
type EffectEvaluator struct{}

// Handles returns the effect prefix.
func (EffectEvaluator) Handles() []string { return []string{"effect."} }

// Evaluate computes image_out. A None input stays None, but an effect name
// with no registered implementation is a hard error.
func (EffectEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
	if pin != PinImageOut {
		return NonePin(), nil
	}
	in, err := ctx.PullInputValue(nodeID, PinImageIn)
	if err != nil {
		return NonePin(), err
	}
	img, ok := in.IntoImage()
	if !ok {
		return NonePin(), nil
	}

	node, _ := ctx.Project.GraphNode(nodeID)
	name := strings.TrimPrefix(node.TypeID, "effect.")
	params := ctx.ResolveAll(node.Properties)
	params["u_time"] = ScalarPin(ctx.Time)

	out, err := ctx.Effects.Apply(name, img, params)
	if err != nil {
		return NonePin(), fmt.Errorf("effect %q: %w", node.Name, err)
	}
	return ImagePin(out), nil
}
