package reel

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// EffectorEvaluator deforms shape geometry, shape to shape.
type EffectorEvaluator struct{}

// Handles returns the effector prefix.
func (EffectorEvaluator) Handles() []string { return []string{"effector."} }

// Evaluate computes shape_out. Unknown effector types pass the shape
// through unchanged (warn logged); a missing deformation degrades, it
// never fails the frame.
func (EffectorEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
	if pin != PinShapeOut {
		return NonePin(), nil
	}
	in, err := ctx.PullInputValue(nodeID, PinShapeIn)
	if err != nil {
		return NonePin(), err
	}
	shape, ok := in.IntoShape()
	if !ok {
		return NonePin(), nil
	}

	node, _ := ctx.Project.GraphNode(nodeID)
	switch node.TypeID {
	case "effector.wave":
		return ShapePin(waveShape(shape, node, ctx)), nil
	}
	ctx.Log.Warn("unknown effector type, passing shape through", "type_id", node.TypeID)
	return ShapePin(shape), nil
}

// waveShape offsets each glyph vertically on a sine over its x position,
// phased by time so the wave travels.
func waveShape(shape *ShapeData, node *GraphNode, ctx *EvalContext) *ShapeData {
	amplitude := ctx.ResolveNumber(node.Properties, "amplitude", 10)
	frequency := ctx.ResolveNumber(node.Properties, "frequency", 1)

	out := shape.Clone()
	for i, g := range out.Glyphs {
		phase := g.X*frequency*0.05 + ctx.Time*frequency*2*math.Pi
		out.Glyphs[i].Y = g.Y + amplitude*math.Sin(phase)
	}
	return out
}

// DecoratorEvaluator adds geometry derived from the shape's text layout,
// shape to shape.
type DecoratorEvaluator struct{}

// Handles returns the decorator prefix.
func (DecoratorEvaluator) Handles() []string { return []string{"decorator."} }

// Evaluate computes shape_out.
func (DecoratorEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
	if pin != PinShapeOut {
		return NonePin(), nil
	}
	in, err := ctx.PullInputValue(nodeID, PinShapeIn)
	if err != nil {
		return NonePin(), err
	}
	shape, ok := in.IntoShape()
	if !ok {
		return NonePin(), nil
	}

	node, _ := ctx.Project.GraphNode(nodeID)
	switch node.TypeID {
	case "decorator.backplate":
		return ShapePin(backplateShape(shape, node, ctx)), nil
	}
	ctx.Log.Warn("unknown decorator type, passing shape through", "type_id", node.TypeID)
	return ShapePin(shape), nil
}

// backplateShape prepends padded plate rectangles behind the chosen target
// boxes. Target selects the granularity: char, line or block.
func backplateShape(shape *ShapeData, node *GraphNode, ctx *EvalContext) *ShapeData {
	target := ctx.ResolveString(node.Properties, "target", "line")
	padding := ctx.ResolveNumber(node.Properties, "padding", 4)

	var boxes []Rect
	switch target {
	case "char":
		boxes = shape.Glyphs
	case "block":
		boxes = shape.Blocks
	default:
		boxes = shape.Lines
	}

	out := shape.Clone()
	var plates strings.Builder
	for _, b := range boxes {
		x, y := b.X-padding, b.Y-padding
		w, h := b.W+2*padding, b.H+2*padding
		fmt.Fprintf(&plates, "M%g %gh%gv%gh%gZ", x, y, w, h, -w)
	}
	// Plates precede the original path so they render behind it.
	out.Path = plates.String() + out.Path
	return out
}
