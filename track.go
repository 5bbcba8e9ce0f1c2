package reel

import "github.com/google/uuid"

// Track is an ordered layer container. Children are ids into the project
// registry and may be clips or nested tracks; their order is z-order, first
// child drawn first (bottom).
type Track struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	ChildIDs []uuid.UUID `json:"child_ids"`
	Blend    BlendMode   `json:"blend"`
	Opacity  float64     `json:"opacity"`
	Visible  bool        `json:"visible"`
}

// NewTrack builds a visible, fully opaque track with a fresh id.
func NewTrack(name string) *Track {
	return &Track{
		ID:      uuid.New(),
		Name:    name,
		Blend:   BlendNormal,
		Opacity: 1,
		Visible: true,
	}
}

// NodeID implements Node.
func (t *Track) NodeID() uuid.UUID { return t.ID }

func (t *Track) nodeType() string { return nodeTypeTrack }

// AddChild appends a child id (topmost layer).
func (t *Track) AddChild(id uuid.UUID) {
	t.ChildIDs = append(t.ChildIDs, id)
}

// InsertChild inserts a child id at index, clamping index to the valid
// range.
func (t *Track) InsertChild(id uuid.UUID, index int) {
	if index < 0 {
		index = 0
	}
	if index > len(t.ChildIDs) {
		index = len(t.ChildIDs)
	}
	t.ChildIDs = append(t.ChildIDs, uuid.Nil)
	copy(t.ChildIDs[index+1:], t.ChildIDs[index:])
	t.ChildIDs[index] = id
}

// RemoveChild deletes a child id preserving the order of the rest, and
// reports whether it was present.
func (t *Track) RemoveChild(id uuid.UUID) bool {
	for i, c := range t.ChildIDs {
		if c == id {
			t.ChildIDs = append(t.ChildIDs[:i], t.ChildIDs[i+1:]...)
			return true
		}
	}
	return false
}

// HasChild reports whether id is a direct child.
func (t *Track) HasChild(id uuid.UUID) bool {
	for _, c := range t.ChildIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Clone deep-copies the track.
func (t *Track) Clone() *Track {
	out := *t
	out.ChildIDs = append([]uuid.UUID(nil), t.ChildIDs...)
	return &out
}
