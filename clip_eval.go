package reel

import (
	"fmt"

	"github.com/google/uuid"
)

// evaluateClipPin computes a clip's output pin. A clip outside its timing
// window, or a kind with no payload for the requested pin, yields None.
func evaluateClipPin(c *Clip, pin string, ctx *EvalContext) (PinValue, error) {
	if !c.ActiveAt(ctx.Frame) {
		return NonePin(), nil
	}

	switch pin {
	case PinShapeOut:
		switch c.Kind {
		case ClipText:
			return ShapePin(textShape(c, ctx)), nil
		case ClipShape:
			path := ctx.ResolveString(c.Properties, "path", "")
			if path == "" {
				return NonePin(), nil
			}
			return ShapePin(&ShapeData{Path: path}), nil
		}
		return NonePin(), nil

	case PinImageOut:
		switch c.Kind {
		case ClipImage:
			asset, ok := ctx.clipAsset(c)
			if !ok {
				return NonePin(), nil
			}
			img, err := ctx.Source.LoadImage(asset.Path)
			if err != nil {
				return NonePin(), fmt.Errorf("clip %q: %w", c.Name, err)
			}
			return ImagePin(img), nil

		case ClipVideo:
			asset, ok := ctx.clipAsset(c)
			if !ok {
				return NonePin(), nil
			}
			fps := 0.0
			if ctx.Comp != nil {
				fps = ctx.Comp.FPS
			}
			frame := c.SourceFrameAt(ctx.Frame, fps)
			img, err := ctx.Source.LoadVideoFrame(asset.Path, frame)
			if err != nil {
				return NonePin(), fmt.Errorf("clip %q frame %d: %w", c.Name, frame, err)
			}
			return ImagePin(img), nil

		case ClipShader:
			src := ctx.ResolveString(c.Properties, "source", "")
			if src == "" {
				return NonePin(), nil
			}
			params := ctx.ResolveAll(c.Properties)
			params["u_time"] = ScalarPin(ctx.Time)
			w, h := ctx.canvasSize()
			img, err := ctx.Renderer.RasterizeShader(src, params, w, h)
			if err != nil {
				return NonePin(), fmt.Errorf("clip %q: %w", c.Name, err)
			}
			return ImagePin(img), nil

		case ClipComposition:
			return evaluateNestedComposition(c, ctx)
		}
		return NonePin(), nil
	}
	return NonePin(), nil
}

// textShape builds the shape payload for a text clip: the string plus
// per-glyph, per-line and whole-block boxes laid out on a fixed grid. Real
// font metrics belong to the renderer; the grid keeps effectors and
// decorators deterministic without one.
func textShape(c *Clip, ctx *EvalContext) *ShapeData {
	text := ctx.ResolveString(c.Properties, "text", "")
	if text == "" {
		return nil
	}
	size := ctx.ResolveNumber(c.Properties, "font_size", 16)
	advance := size * 0.6

	sd := &ShapeData{Text: text}
	x, y := 0.0, 0.0
	lineStart := 0.0
	maxX := 0.0
	flushLine := func() {
		if x > lineStart {
			sd.Lines = append(sd.Lines, Rect{X: lineStart, Y: y, W: x - lineStart, H: size})
		}
		if x > maxX {
			maxX = x
		}
	}
	for _, r := range text {
		if r == '\n' {
			flushLine()
			x = 0
			y += size
			continue
		}
		sd.Glyphs = append(sd.Glyphs, Rect{X: x, Y: y, W: advance, H: size})
		x += advance
	}
	flushLine()
	if len(sd.Glyphs) > 0 {
		sd.Blocks = []Rect{{X: 0, Y: 0, W: maxX, H: y + size}}
	}
	return sd
}

// evaluateNestedComposition renders a referenced composition at the
// remapped frame and returns the resulting layer.
func evaluateNestedComposition(c *Clip, ctx *EvalContext) (PinValue, error) {
	if c.ReferenceID == nil || ctx.Engine == nil {
		return NonePin(), nil
	}
	comp, ok := ctx.Project.Composition(*c.ReferenceID)
	if !ok {
		return NonePin(), nil
	}
	fps := 0.0
	stack := ctx.compStack
	if ctx.Comp != nil {
		fps = ctx.Comp.FPS
		if stack == nil {
			stack = map[uuid.UUID]bool{ctx.Comp.ID: true}
		}
	}
	frame := c.SourceFrameAt(ctx.Frame, fps)
	img, err := ctx.Engine.renderComposition(ctx.Project, comp, frame, ctx.Log, stack)
	if err != nil {
		return NonePin(), fmt.Errorf("nested composition %q: %w", comp.Name, err)
	}
	return ImagePin(img), nil
}

func (ctx *EvalContext) clipAsset(c *Clip) (*Asset, bool) {
	if c.ReferenceID == nil {
		return nil, false
	}
	return ctx.Project.Asset(*c.ReferenceID)
}

func (ctx *EvalContext) canvasSize() (w, h int) {
	if ctx.Comp == nil {
		return 0, 0
	}
	return ctx.Comp.Width, ctx.Comp.Height
}
