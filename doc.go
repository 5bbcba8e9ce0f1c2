// Package reel is a node-graph evaluation engine for timeline compositing,
// with an embedded keyframe animation model.
//
// A [Project] holds compositions, a flat registry of tracks, clips and
// graph nodes, and an ordered connection list. Clips sit on tracks with a
// frame window; graph nodes (transforms, effects, styles, effectors,
// decorators) process the clip's output through typed pins.
//
// # Evaluation
//
// Evaluation is pull based and memoized. An [Engine] hands out one
// [EvalContext] per pass; [EvalContext.EvaluatePin] computes an output pin,
// recursively pulling upstream pins through the connection list and caching
// every result for the rest of the pass:
//
//	engine, _ := reel.NewEngine(reel.EngineConfig{Renderer: r, Source: src})
//	ctx := engine.Context(project, comp, frame)
//	v, err := ctx.EvaluatePin(nodeID, "image_out")
//
// [Engine.RenderFrame] assembles a whole frame: it walks the composition's
// track tree in child order, resolves each active clip's processing chain
// ([Engine.ResolveOutputPin]), and composites the layers through the
// [Renderer].
//
// # Animation
//
// Every clip and graph node carries a [PropertyMap]. A [Property] is
// produced by a named evaluator: a stored constant, keyframe interpolation
// ([InterpolateKeyframes], with per-segment [Easing] curves), or an
// expression of time. Plugin evaluators register on [PropertyEvaluators].
//
// # Editing
//
// A [Store] owns the authoritative project behind a read-write lock.
// Mutations validate first (pin types, single-valued inputs, acyclicity)
// and mutate second, so a failed edit leaves the project untouched.
// Evaluation workers take [Store.Snapshot] clones and never contend with
// editors.
//
// The engine is renderer agnostic: rasterization, media decoding and
// effect kernels live behind the [Renderer], [Source] and [EffectRegistry]
// collaborator interfaces.
package reel
