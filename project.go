package reel

import (
	"fmt"

	"github.com/google/uuid"
)

// Node union tags used by the JSON encoding.
const (
	nodeTypeTrack     = "track"
	nodeTypeClip      = "clip"
	nodeTypeGraphNode = "graph_node"
)

// Node is a registry entry: a Track, Clip or GraphNode.
type Node interface {
	NodeID() uuid.UUID
	nodeType() string
}

// Asset is an external media file referenced by clips.
type Asset struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Path string    `json:"path"`
	Kind ClipKind  `json:"kind"`
}

// Composition is one renderable timeline: a canvas, a frame rate, and a
// root track tree. Duration is in seconds.
type Composition struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FPS         float64   `json:"fps"`
	Duration    float64   `json:"duration"`
	Background  Color     `json:"background"`
	RootTrackID uuid.UUID `json:"root_track_id"`
}

// Project is the whole document: assets, compositions, a flat node
// registry, and an ordered connection list. The registry is flat so every
// node is addressable by id regardless of where it hangs in a track tree
// or effect graph.
type Project struct {
	Name         string
	Assets       []*Asset
	Compositions []*Composition
	Nodes        map[uuid.UUID]Node
	Connections  []*Connection
}

// NewProject returns an empty named project.
func NewProject(name string) *Project {
	return &Project{
		Name:  name,
		Nodes: make(map[uuid.UUID]Node),
	}
}

// AddNode inserts a node into the registry, replacing any node with the
// same id.
func (p *Project) AddNode(n Node) {
	if p.Nodes == nil {
		p.Nodes = make(map[uuid.UUID]Node)
	}
	p.Nodes[n.NodeID()] = n
}

// Node returns the registry entry for id.
func (p *Project) Node(id uuid.UUID) (Node, bool) {
	n, ok := p.Nodes[id]
	return n, ok
}

// Track returns the node for id if it is a track.
func (p *Project) Track(id uuid.UUID) (*Track, bool) {
	t, ok := p.Nodes[id].(*Track)
	return t, ok
}

// Clip returns the node for id if it is a clip.
func (p *Project) Clip(id uuid.UUID) (*Clip, bool) {
	c, ok := p.Nodes[id].(*Clip)
	return c, ok
}

// GraphNode returns the node for id if it is a graph node.
func (p *Project) GraphNode(id uuid.UUID) (*GraphNode, bool) {
	n, ok := p.Nodes[id].(*GraphNode)
	return n, ok
}

// Composition returns the composition for id.
func (p *Project) Composition(id uuid.UUID) (*Composition, bool) {
	for _, c := range p.Compositions {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Asset returns the asset for id.
func (p *Project) Asset(id uuid.UUID) (*Asset, bool) {
	for _, a := range p.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// InputConnection returns the single connection feeding the input pin, if
// any. Input pins are single-valued by invariant.
func (p *Project) InputConnection(to PinID) (*Connection, bool) {
	for _, c := range p.Connections {
		if c.To == to {
			return c, true
		}
	}
	return nil, false
}

// ConnectionsFrom returns, in list order, every connection leaving the
// output pin.
func (p *Project) ConnectionsFrom(from PinID) []*Connection {
	var out []*Connection
	for _, c := range p.Connections {
		if c.From == from {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsOf returns every connection touching the node, in list order.
func (p *Project) ConnectionsOf(nodeID uuid.UUID) []*Connection {
	var out []*Connection
	for _, c := range p.Connections {
		if c.From.NodeID == nodeID || c.To.NodeID == nodeID {
			out = append(out, c)
		}
	}
	return out
}

// ParentTrack returns the track that lists id among its children.
func (p *Project) ParentTrack(id uuid.UUID) (*Track, bool) {
	for _, n := range p.Nodes {
		if t, ok := n.(*Track); ok && t.HasChild(id) {
			return t, true
		}
	}
	return nil, false
}

// Clone deep-copies the project. Evaluation workers run against clones so
// editing never races a render pass.
func (p *Project) Clone() *Project {
	out := &Project{
		Name:  p.Name,
		Nodes: make(map[uuid.UUID]Node, len(p.Nodes)),
	}
	for _, a := range p.Assets {
		cp := *a
		out.Assets = append(out.Assets, &cp)
	}
	for _, c := range p.Compositions {
		cp := *c
		out.Compositions = append(out.Compositions, &cp)
	}
	for id, n := range p.Nodes {
		switch v := n.(type) {
		case *Track:
			out.Nodes[id] = v.Clone()
		case *Clip:
			out.Nodes[id] = v.Clone()
		case *GraphNode:
			out.Nodes[id] = v.Clone()
		}
	}
	for _, c := range p.Connections {
		cp := *c
		out.Connections = append(out.Connections, &cp)
	}
	return out
}

// Validate checks referential integrity: connection endpoints, track
// children, composition root tracks and clip references must all resolve.
// Dangling references are reported as errors, never panics.
func (p *Project) Validate() []error {
	var errs []error
	for _, c := range p.Connections {
		if _, ok := p.Nodes[c.From.NodeID]; !ok {
			errs = append(errs, fmt.Errorf("connection %s: from node %s: %w", c.ID, c.From.NodeID, ErrNodeNotFound))
		}
		if _, ok := p.Nodes[c.To.NodeID]; !ok {
			errs = append(errs, fmt.Errorf("connection %s: to node %s: %w", c.ID, c.To.NodeID, ErrNodeNotFound))
		}
	}
	for _, n := range p.Nodes {
		t, ok := n.(*Track)
		if !ok {
			continue
		}
		for _, child := range t.ChildIDs {
			if _, ok := p.Nodes[child]; !ok {
				errs = append(errs, fmt.Errorf("track %q: child %s: %w", t.Name, child, ErrNodeNotFound))
			}
		}
	}
	for _, comp := range p.Compositions {
		if _, ok := p.Track(comp.RootTrackID); !ok {
			errs = append(errs, fmt.Errorf("composition %q: root track %s: %w", comp.Name, comp.RootTrackID, ErrNodeNotFound))
		}
	}
	for _, n := range p.Nodes {
		c, ok := n.(*Clip)
		if !ok || c.ReferenceID == nil {
			continue
		}
		ref := *c.ReferenceID
		if c.Kind == ClipComposition {
			if _, ok := p.Composition(ref); !ok {
				errs = append(errs, fmt.Errorf("clip %q: composition %s: %w", c.Name, ref, ErrNodeNotFound))
			}
			continue
		}
		if _, ok := p.Asset(ref); !ok {
			errs = append(errs, fmt.Errorf("clip %q: asset %s: %w", c.Name, ref, ErrNodeNotFound))
		}
	}
	return errs
}
