package reel

import (
	"fmt"

	"github.com/google/uuid"
)

// TransformEvaluator places a layer: position, anchor, scale, rotation and
// opacity resolved from the node's properties and applied by the renderer.
type TransformEvaluator struct{}

// Handles returns the transform type id.
func (TransformEvaluator) Handles() []string { return []string{"compositing.transform"} }

// Evaluate computes image_out. A None input stays None; the transform of
// nothing is nothing.
func (TransformEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
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
	props := node.Properties
	tf := Transform{
		PositionX: ctx.ResolveNumber(props, "position_x", 0),
		PositionY: ctx.ResolveNumber(props, "position_y", 0),
		AnchorX:   ctx.ResolveNumber(props, "anchor_x", 0),
		AnchorY:   ctx.ResolveNumber(props, "anchor_y", 0),
		ScaleX:    ctx.ResolveNumber(props, "scale_x", 100),
		ScaleY:    ctx.ResolveNumber(props, "scale_y", 100),
		Rotation:  ctx.ResolveNumber(props, "rotation", 0),
		Opacity:   ctx.ResolveNumber(props, "opacity", 100),
	}

	out, err := ctx.Renderer.TransformLayer(img, tf)
	if err != nil {
		return NonePin(), fmt.Errorf("transform %q: %w", node.Name, err)
	}
	return ImagePin(out), nil
}
