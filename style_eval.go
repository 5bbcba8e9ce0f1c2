package reel

import (
	"fmt"

	"github.com/google/uuid"
)

// StyleEvaluator rasterizes shapes: it is the pivot where the shape chain
// becomes an image. style.fill and style.stroke share it.
type StyleEvaluator struct{}

// Handles returns the style prefix.
func (StyleEvaluator) Handles() []string { return []string{"style."} }

// Evaluate computes image_out from shape_in. A None shape stays None.
func (StyleEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
	if pin != PinImageOut {
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
	sc := styleConfigFor(node, ctx)
	w, h := ctx.canvasSize()
	img, err := ctx.Renderer.RasterizeShape(shape, sc, w, h)
	if err != nil {
		return NonePin(), fmt.Errorf("style %q: %w", node.Name, err)
	}
	return ImagePin(img), nil
}

func styleConfigFor(node *GraphNode, ctx *EvalContext) *StyleConfig {
	props := node.Properties
	sc := &StyleConfig{
		Style: StyleFill,
		Color: ctx.ResolveColor(props, "color", Color{255, 255, 255, 255}),
	}
	if node.TypeID != "style.stroke" {
		return sc
	}
	sc.Style = StyleStroke
	sc.Width = ctx.ResolveNumber(props, "width", 2)
	sc.Cap = parseLineCap(ctx.ResolveString(props, "cap", string(CapButt)))
	sc.Join = parseLineJoin(ctx.ResolveString(props, "join", string(JoinMiter)))
	if dash := ctx.ResolveValue(props, "dash", ArrayValue()); dash.Kind == KindArray {
		for _, item := range dash.Array() {
			sc.Dashes = append(sc.Dashes, item.AsNumber(0))
		}
	}
	return sc
}

func parseLineCap(s string) LineCap {
	switch LineCap(s) {
	case CapRound:
		return CapRound
	case CapSquare:
		return CapSquare
	}
	return CapButt
}

func parseLineJoin(s string) LineJoin {
	switch LineJoin(s) {
	case JoinRound:
		return JoinRound
	case JoinBevel:
		return JoinBevel
	}
	return JoinMiter
}
