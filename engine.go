package reel

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// EngineConfig wires an Engine's collaborators. Renderer and Source are
// required for frame rendering; nil registries get the built-in defaults.
type EngineConfig struct {
	Renderer   Renderer
	Source     Source
	Effects    *EffectRegistry
	Props      *PropertyEvaluators
	Evaluators *EvaluatorSet
	Types      *TypeRegistry
	Log        *slog.Logger
}

// Engine evaluates pins and renders frames. It is stateless across passes;
// all per-pass state lives in the EvalContext it hands out, so one engine
// serves any number of parallel workers as long as each uses its own
// context.
type Engine struct {
	renderer Renderer
	source   Source
	effects  *EffectRegistry
	props    *PropertyEvaluators
	evals    *EvaluatorSet
	types    *TypeRegistry
	log      *slog.Logger
}

// DefaultEvaluators returns the built-in node evaluator set.
func DefaultEvaluators() (*EvaluatorSet, error) {
	return NewEvaluatorSet(
		TransformEvaluator{},
		EffectEvaluator{},
		StyleEvaluator{},
		EffectorEvaluator{},
		DecoratorEvaluator{},
		MathEvaluator{},
	)
}

// NewEngine builds an engine from cfg, filling unset registries with the
// built-in defaults.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	e := &Engine{
		renderer: cfg.Renderer,
		source:   cfg.Source,
		effects:  cfg.Effects,
		props:    cfg.Props,
		evals:    cfg.Evaluators,
		types:    cfg.Types,
		log:      cfg.Log,
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.effects == nil {
		e.effects = NewEffectRegistry()
	}
	if e.props == nil {
		e.props = NewPropertyEvaluators(e.log)
	}
	if e.types == nil {
		e.types = BuiltinTypes()
	}
	if e.evals == nil {
		evals, err := DefaultEvaluators()
		if err != nil {
			return nil, err
		}
		e.evals = evals
	}
	return e, nil
}

// Context builds a fresh evaluation context for one composition at one
// frame. Contexts are single-goroutine and never shared between workers.
func (e *Engine) Context(p *Project, comp *Composition, frame int) *EvalContext {
	t := 0.0
	if comp != nil && comp.FPS > 0 {
		t = float64(frame) / comp.FPS
	}
	return &EvalContext{
		Project:  p,
		Comp:     comp,
		Renderer: e.renderer,
		Source:   e.source,
		Effects:  e.effects,
		Props:    e.props,
		Evals:    e.evals,
		Types:    e.types,
		Engine:   e,
		Frame:    frame,
		Time:     t,
		Log:      e.log,
	}
}

// ResolveOutputPin finds the terminal pin of a clip's processing chain.
//
// For image clips this walks image_out -> image_in links, following the
// first matching connection in Connections order at each hop. For vector
// clips it first walks shape_out -> shape_in links until a style node turns
// the shape into an image, then continues along the image chain. A shape
// chain that never reaches a style node terminates at the last shape pin.
func (e *Engine) ResolveOutputPin(p *Project, clipID uuid.UUID) (PinID, error) {
	cur, visited, err := e.imageChainStart(p, clipID)
	if err != nil || cur.PinName != PinImageOut {
		return cur, err
	}
	for {
		next, ok := e.nextHop(p, cur, PinImageIn)
		if !ok {
			return cur, nil
		}
		if _, isGraph := p.GraphNode(next); !isGraph || visited[next] {
			return cur, nil
		}
		visited[next] = true
		cur = PinID{NodeID: next, PinName: PinImageOut}
	}
}

// imageChainStart resolves a clip's chain up to its first image pin: the
// clip's own image_out, or for vector clips the image_out of the style
// node that rasterizes the shape. A shape chain with no style node yields
// the last shape pin instead. The visited set covers the walked prefix so
// callers can continue along the image chain without revisiting.
func (e *Engine) imageChainStart(p *Project, clipID uuid.UUID) (PinID, map[uuid.UUID]bool, error) {
	clip, ok := p.Clip(clipID)
	if !ok {
		return PinID{}, nil, fmt.Errorf("resolving chain for %s: %w", clipID, ErrNodeNotFound)
	}

	cur := PinID{NodeID: clipID, PinName: clip.PrimaryOutputPin()}
	visited := map[uuid.UUID]bool{clipID: true}
	if cur.PinName != PinShapeOut {
		return cur, visited, nil
	}
	for {
		next, ok := e.nextHop(p, cur, PinShapeIn)
		if !ok {
			return cur, visited, nil
		}
		node, ok := p.GraphNode(next)
		if !ok || visited[next] {
			return cur, visited, nil
		}
		visited[next] = true
		if cat, ok := e.types.CategoryOf(node.TypeID); ok && cat == CategoryStyle {
			return PinID{NodeID: next, PinName: PinImageOut}, visited, nil
		}
		cur = PinID{NodeID: next, PinName: PinShapeOut}
	}
}

// nextHop returns the first node, in Connections order, whose input pin
// named inPin is fed by the given output pin.
func (e *Engine) nextHop(p *Project, from PinID, inPin string) (uuid.UUID, bool) {
	for _, c := range p.Connections {
		if c.From == from && c.To.PinName == inPin {
			return c.To.NodeID, true
		}
	}
	return uuid.Nil, false
}

// EvaluateClip evaluates a clip's processing chain in ctx. The image
// chain is walked hop by hop: a downstream node yielding None stops the
// walk and the last image obtained wins, so an idle tail node degrades to
// the upstream picture instead of blanking the layer. An inactive clip
// still evaluates to None, and evaluation errors propagate.
func (e *Engine) EvaluateClip(clipID uuid.UUID, ctx *EvalContext) (PinValue, error) {
	cur, visited, err := e.imageChainStart(ctx.Project, clipID)
	if err != nil {
		return NonePin(), err
	}
	last, err := ctx.EvaluatePin(cur.NodeID, cur.PinName)
	if err != nil || last.IsNone() || cur.PinName != PinImageOut {
		return last, err
	}
	for {
		next, ok := e.nextHop(ctx.Project, cur, PinImageIn)
		if !ok {
			return last, nil
		}
		if _, isGraph := ctx.Project.GraphNode(next); !isGraph || visited[next] {
			return last, nil
		}
		visited[next] = true
		cur = PinID{NodeID: next, PinName: PinImageOut}
		v, err := ctx.EvaluatePin(cur.NodeID, cur.PinName)
		if err != nil {
			return NonePin(), err
		}
		if v.IsNone() {
			return last, nil
		}
		last = v
	}
}

// RenderFrame renders one frame of a composition: the root track tree is
// walked in child order (bottom to top), each active clip's chain is
// evaluated, and layers composite through the renderer honoring track
// blend mode, opacity and visibility.
func (e *Engine) RenderFrame(p *Project, compID uuid.UUID, frame int) (*Image, error) {
	comp, ok := p.Composition(compID)
	if !ok {
		return nil, fmt.Errorf("rendering composition %s: %w", compID, ErrNodeNotFound)
	}
	return e.renderComposition(p, comp, frame, e.log, nil)
}

// renderComposition renders one composition frame. stack carries the
// compositions already being rendered further up, so a reference loop
// between compositions fails with ErrCycle instead of recursing.
func (e *Engine) renderComposition(p *Project, comp *Composition, frame int, log *slog.Logger, stack map[uuid.UUID]bool) (*Image, error) {
	if stack[comp.ID] {
		return nil, fmt.Errorf("composition %q references itself: %w", comp.Name, ErrCycle)
	}
	root, ok := p.Track(comp.RootTrackID)
	if !ok {
		return nil, fmt.Errorf("composition %q root track: %w", comp.Name, ErrNodeNotFound)
	}
	ctx := e.Context(p, comp, frame)
	ctx.Log = log
	ctx.compStack = make(map[uuid.UUID]bool, len(stack)+1)
	for id := range stack {
		ctx.compStack[id] = true
	}
	ctx.compStack[comp.ID] = true
	return e.renderTrack(root, ctx)
}

func (e *Engine) renderTrack(t *Track, ctx *EvalContext) (*Image, error) {
	w, h := ctx.canvasSize()
	canvas := NewImage(w, h)

	for _, childID := range t.ChildIDs {
		child, ok := ctx.Project.Node(childID)
		if !ok {
			ctx.Log.Warn("track child missing, skipping", "track", t.Name, "child", childID)
			continue
		}
		switch node := child.(type) {
		case *Track:
			if !node.Visible {
				continue
			}
			layer, err := e.renderTrack(node, ctx)
			if err != nil {
				return nil, err
			}
			canvas, err = ctx.Renderer.Composite(canvas, layer, node.Blend, node.Opacity*100)
			if err != nil {
				return nil, fmt.Errorf("compositing track %q: %w", node.Name, err)
			}
		case *Clip:
			if !node.ActiveAt(ctx.Frame) {
				continue
			}
			v, err := e.EvaluateClip(node.ID, ctx)
			if err != nil {
				return nil, err
			}
			layer, ok := v.IntoImage()
			if !ok {
				continue
			}
			canvas, err = ctx.Renderer.Composite(canvas, layer, BlendNormal, 100)
			if err != nil {
				return nil, fmt.Errorf("compositing clip %q: %w", node.Name, err)
			}
		}
	}
	return canvas, nil
}
