package reel

import "github.com/google/uuid"

// ClipKind identifies what a clip plays.
type ClipKind string

const (
	ClipVideo       ClipKind = "video"
	ClipAudio       ClipKind = "audio"
	ClipImage       ClipKind = "image"
	ClipText        ClipKind = "text"
	ClipShape       ClipKind = "shape"
	ClipShader      ClipKind = "sksl"
	ClipComposition ClipKind = "composition"
)

// Clip is a timed media item on a track. In/Out bound its active window on
// the composition timeline; SourceIn and FPS map composition frames onto
// source frames for video and nested compositions.
type Clip struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Kind ClipKind  `json:"kind"`

	// ReferenceID points at the asset or composition the clip plays.
	// Nil for self-contained kinds (text, shape).
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`

	// In and Out are the clip's active frame window on the timeline,
	// inclusive of In and exclusive of Out.
	In  int `json:"in"`
	Out int `json:"out"`

	// SourceIn is the source frame that plays at timeline frame In.
	SourceIn int `json:"source_in"`
	// FPS is the source's native frame rate. Zero means same as the
	// composition.
	FPS float64 `json:"fps,omitempty"`

	Properties *PropertyMap `json:"properties"`
}

// NewClip builds a clip with a fresh id and an empty property map.
func NewClip(name string, kind ClipKind, in, out int) *Clip {
	return &Clip{
		ID:         uuid.New(),
		Name:       name,
		Kind:       kind,
		In:         in,
		Out:        out,
		Properties: NewPropertyMap(),
	}
}

// NodeID implements Node.
func (c *Clip) NodeID() uuid.UUID { return c.ID }

func (c *Clip) nodeType() string { return nodeTypeClip }

// ActiveAt reports whether the clip covers timeline frame f.
func (c *Clip) ActiveAt(f int) bool { return f >= c.In && f < c.Out }

// PrimaryOutputPin names the pin the chain resolver starts from: shape_out
// for vector kinds, image_out otherwise.
func (c *Clip) PrimaryOutputPin() string {
	switch c.Kind {
	case ClipText, ClipShape:
		return PinShapeOut
	}
	return PinImageOut
}

// SourceFrameAt maps timeline frame f onto a source frame, honoring the
// clip's own frame rate when it differs from the composition's.
func (c *Clip) SourceFrameAt(f int, compFPS float64) int {
	local := f - c.In
	if c.FPS > 0 && compFPS > 0 && c.FPS != compFPS {
		local = int(float64(local) * c.FPS / compFPS)
	}
	return c.SourceIn + local
}

// Clone deep-copies the clip.
func (c *Clip) Clone() *Clip {
	out := *c
	if c.ReferenceID != nil {
		ref := *c.ReferenceID
		out.ReferenceID = &ref
	}
	out.Properties = c.Properties.Clone()
	return &out
}
