package reel

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store owns the authoritative project behind a read-write lock. Every
// mutation validates first and mutates second, under a single lock
// acquisition, so a failed call leaves the project untouched and a
// concurrent reader never observes a half-applied edit.
type Store struct {
	mu    sync.RWMutex
	p     *Project
	types *TypeRegistry
}

// NewStore wraps a project. A nil types registry uses the built-ins.
func NewStore(p *Project, types *TypeRegistry) *Store {
	if p == nil {
		p = NewProject("")
	}
	if types == nil {
		types = BuiltinTypes()
	}
	return &Store{p: p, types: types}
}

// Snapshot returns a deep clone of the project for lock-free evaluation.
// Export workers each take a snapshot and evaluate it with a private
// context; they never share state with editors or each other.
func (s *Store) Snapshot() *Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Clone()
}

// View runs fn under the read lock. fn must not retain the project.
func (s *Store) View(fn func(p *Project)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.p)
}

// AddTrack registers a new track and, when parentID is non-nil, appends it
// to the parent's children.
func (s *Store) AddTrack(name string, parentID *uuid.UUID) (*Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var parent *Track
	if parentID != nil {
		var ok bool
		parent, ok = s.p.Track(*parentID)
		if !ok {
			return nil, fmt.Errorf("parent track %s: %w", *parentID, ErrNodeNotFound)
		}
	}
	t := NewTrack(name)
	s.p.AddNode(t)
	if parent != nil {
		parent.AddChild(t.ID)
	}
	return t, nil
}

// AddClip registers a new clip on a track.
func (s *Store) AddClip(trackID uuid.UUID, name string, kind ClipKind, in, out int) (*Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.p.Track(trackID)
	if !ok {
		return nil, fmt.Errorf("track %s: %w", trackID, ErrNodeNotFound)
	}
	c := NewClip(name, kind, in, out)
	s.p.AddNode(c)
	t.AddChild(c.ID)
	return c, nil
}

// AddGraphNode instantiates a registered node type into the graph.
func (s *Store) AddGraphNode(typeID, name string) (*GraphNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := NewGraphNode(s.types, typeID, name)
	if err != nil {
		return nil, fmt.Errorf("adding node %q: %w", typeID, err)
	}
	s.p.AddNode(n)
	return n, nil
}

// RemoveNode deletes a node and everything that references it: its
// connections first, then its entry in any parent track, then the registry
// entry. The cascade is atomic under one lock acquisition.
func (s *Store) RemoveNode(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.p.Node(id); !ok {
		return fmt.Errorf("removing %s: %w", id, ErrNodeNotFound)
	}

	kept := s.p.Connections[:0]
	for _, c := range s.p.Connections {
		if c.From.NodeID == id || c.To.NodeID == id {
			continue
		}
		kept = append(kept, c)
	}
	s.p.Connections = kept

	for _, n := range s.p.Nodes {
		if t, ok := n.(*Track); ok {
			t.RemoveChild(id)
		}
	}
	delete(s.p.Nodes, id)
	return nil
}

// Connect adds a validated edge from an output pin to an input pin.
func (s *Store) Connect(from, to PinID) (*Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ValidateConnection(s.p, s.types, from, to); err != nil {
		return nil, err
	}
	c := NewConnection(from, to)
	s.p.Connections = append(s.p.Connections, c)
	return c, nil
}

// Disconnect removes a connection by id.
func (s *Store) Disconnect(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.p.Connections {
		if c.ID == id {
			s.p.Connections = append(s.p.Connections[:i], s.p.Connections[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("disconnecting %s: %w", id, ErrConnectionNotFound)
}

// UpdateProperty sets a property on a clip or graph node.
func (s *Store) UpdateProperty(nodeID uuid.UUID, name string, prop *Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, err := s.propsOf(nodeID)
	if err != nil {
		return err
	}
	props.Set(name, prop)
	return nil
}

// UpsertKeyframe inserts or replaces a keyframe on a property, creating
// the property as keyframed when it does not exist yet.
func (s *Store) UpsertKeyframe(nodeID uuid.UUID, name string, kf Keyframe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, err := s.propsOf(nodeID)
	if err != nil {
		return err
	}
	p, ok := props.Get(name)
	if !ok {
		p = Keyframed()
		props.Set(name, p)
	}
	p.UpsertKeyframe(kf)
	return nil
}

// RemoveKeyframe deletes a keyframe at the given time.
func (s *Store) RemoveKeyframe(nodeID uuid.UUID, name string, t float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	props, err := s.propsOf(nodeID)
	if err != nil {
		return err
	}
	p, ok := props.Get(name)
	if !ok || !p.RemoveKeyframe(t) {
		return fmt.Errorf("keyframe on %q at %g: not found", name, t)
	}
	return nil
}

func (s *Store) propsOf(nodeID uuid.UUID) (*PropertyMap, error) {
	switch n := s.p.Nodes[nodeID].(type) {
	case *Clip:
		return n.Properties, nil
	case *GraphNode:
		return n.Properties, nil
	case nil:
		return nil, fmt.Errorf("node %s: %w", nodeID, ErrNodeNotFound)
	default:
		return nil, fmt.Errorf("node %s has no properties", nodeID)
	}
}
