package reel

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// BlendMode selects how a track composites onto the layers below it. Each
// maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendBelow                     // destination-over (draw behind existing content)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendBelow:
		return ebiten.BlendDestinationOver
	}
	return ebiten.BlendSourceOver
}

// Image is a rendered layer. Texture is nil in headless evaluation (tests,
// CLI validation); Width and Height always describe the layer bounds so the
// engine never needs a live GPU texture.
type Image struct {
	Texture *ebiten.Image
	Width   int
	Height  int
}

// NewImage wraps dimensions without a texture.
func NewImage(w, h int) *Image { return &Image{Width: w, Height: h} }

// Transform is the resolved 2D placement of a layer: position, anchor,
// percentage scale, rotation in degrees, opacity in [0,100].
type Transform struct {
	PositionX float64
	PositionY float64
	AnchorX   float64
	AnchorY   float64
	ScaleX    float64
	ScaleY    float64
	Rotation  float64
	Opacity   float64
}

// IdentityTransform is the no-op placement.
func IdentityTransform() Transform {
	return Transform{ScaleX: 100, ScaleY: 100, Opacity: 100}
}

// Affine returns the placement matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Composition order: Translate(-Anchor) -> Scale -> Rotate -> Translate(Position).
func (t Transform) Affine() [6]float64 {
	sx := t.ScaleX / 100
	sy := t.ScaleY / 100
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)

	preTx := -t.AnchorX * sx
	preTy := -t.AnchorY * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + t.PositionX,
		sin*preTx + cos*preTy + t.PositionY,
	}
}

// ShapeData is the vector payload flowing between shape pins: an outline
// path plus the text geometry effectors and decorators act on.
type ShapeData struct {
	// Path is the vector outline in an SVG-style path encoding.
	Path string
	// Text is the source string for text-derived shapes.
	Text string
	// Glyphs, Lines and Blocks are the target bounds backplate
	// decorators draw behind.
	Glyphs []Rect
	Lines  []Rect
	Blocks []Rect
}

// Rect is an axis-aligned box in shape space.
type Rect struct {
	X, Y, W, H float64
}

// Clone deep-copies the shape data.
func (s *ShapeData) Clone() *ShapeData {
	if s == nil {
		return nil
	}
	out := *s
	out.Glyphs = append([]Rect(nil), s.Glyphs...)
	out.Lines = append([]Rect(nil), s.Lines...)
	out.Blocks = append([]Rect(nil), s.Blocks...)
	return &out
}

// LineCap and LineJoin name stroke geometry options.
type (
	LineCap  string
	LineJoin string
)

const (
	CapButt   LineCap = "butt"
	CapRound  LineCap = "round"
	CapSquare LineCap = "square"

	JoinMiter LineJoin = "miter"
	JoinRound LineJoin = "round"
	JoinBevel LineJoin = "bevel"
)

// DrawStyle selects fill versus stroke rasterization.
type DrawStyle uint8

const (
	StyleFill DrawStyle = iota
	StyleStroke
)

// StyleConfig is the resolved rasterization style a style node hands to
// the renderer.
type StyleConfig struct {
	Style  DrawStyle
	Color  Color
	Width  float64
	Cap    LineCap
	Join   LineJoin
	Dashes []float64
}

// Renderer rasterizes and composites layers. The engine is renderer
// agnostic: implementations may target the GPU, a software canvas, or a
// recording fake in tests.
type Renderer interface {
	// TransformLayer applies placement and opacity to a layer.
	TransformLayer(img *Image, tf Transform) (*Image, error)
	// RasterizeShape draws one shape with one style.
	RasterizeShape(shape *ShapeData, style *StyleConfig, w, h int) (*Image, error)
	// RasterizeGroupedShapes draws several shapes into one layer.
	RasterizeGroupedShapes(shapes []*ShapeData, style *StyleConfig, w, h int) (*Image, error)
	// RasterizeShader runs a shader clip with its resolved parameters.
	RasterizeShader(source string, params map[string]PinValue, w, h int) (*Image, error)
	// Composite draws src over dst with the given blend and opacity.
	Composite(dst, src *Image, blend BlendMode, opacity float64) (*Image, error)
}

// Source loads external media for clips.
type Source interface {
	LoadImage(path string) (*Image, error)
	LoadVideoFrame(path string, frame int) (*Image, error)
}

// EffectFunc applies one named effect to a layer. Params carries every
// resolved node property plus the synthetic u_time.
type EffectFunc func(img *Image, params map[string]PinValue) (*Image, error)

// EffectRegistry maps effect names (the type id suffix after "effect.")
// to implementations. An unregistered name is a hard error: silently
// skipping a named effect would produce a wrong frame.
type EffectRegistry struct {
	byName map[string]EffectFunc
}

// NewEffectRegistry returns an empty registry.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{byName: make(map[string]EffectFunc)}
}

// Register installs or replaces an effect implementation.
func (r *EffectRegistry) Register(name string, fn EffectFunc) {
	r.byName[name] = fn
}

// Apply runs the named effect. Returns ErrUnknownEffect for an
// unregistered name.
func (r *EffectRegistry) Apply(name string, img *Image, params map[string]PinValue) (*Image, error) {
	fn, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, name)
	}
	return fn(img, params)
}
