package reel

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidateConnection checks a prospective edge against the structural
// invariants without mutating anything: both endpoints must exist, a node
// may not feed itself, the input pin must be free, the pin data types must
// be compatible, and the edge must not close a cycle.
func ValidateConnection(p *Project, types *TypeRegistry, from, to PinID) error {
	if _, ok := p.Node(from.NodeID); !ok {
		return fmt.Errorf("from node %s: %w", from.NodeID, ErrNodeNotFound)
	}
	if _, ok := p.Node(to.NodeID); !ok {
		return fmt.Errorf("to node %s: %w", to.NodeID, ErrNodeNotFound)
	}
	if from.NodeID == to.NodeID {
		return ErrSelfConnection
	}
	if _, ok := p.InputConnection(to); ok {
		return fmt.Errorf("pin %s.%s: %w", to.NodeID, to.PinName, ErrInputOccupied)
	}
	ft := pinTypeOf(p, types, from)
	tt := pinTypeOf(p, types, to)
	if !CompatiblePinTypes(ft, tt) {
		return fmt.Errorf("%s -> %s: %w", ft, tt, ErrTypeMismatch)
	}
	if WouldCreateCycle(p, from.NodeID, to.NodeID) {
		return ErrCycle
	}
	return nil
}

// pinTypeOf resolves a pin's declared data type. Clip pins derive their
// type from the pin name; undeclared pins are treated as Any so loading
// older files never rejects.
func pinTypeOf(p *Project, types *TypeRegistry, pin PinID) PinDataType {
	if gn, ok := p.GraphNode(pin.NodeID); ok && types != nil {
		if def, ok := types.Lookup(gn.TypeID); ok {
			if pd, ok := def.Pin(pin.PinName); ok {
				return pd.Type
			}
		}
		return DataAny
	}
	switch pin.PinName {
	case PinImageIn, PinImageOut:
		return DataImage
	case PinShapeIn, PinShapeOut:
		return DataShape
	}
	return DataAny
}

// WouldCreateCycle reports whether adding an edge from -> to would make
// the graph cyclic: true when from is already reachable downstream of to.
func WouldCreateCycle(p *Project, from, to uuid.UUID) bool {
	if from == to {
		return true
	}
	visited := map[uuid.UUID]bool{to: true}
	queue := []uuid.UUID{to}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range p.Connections {
			if c.From.NodeID != cur {
				continue
			}
			next := c.To.NodeID
			if next == from {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// TopologicalOrder returns every node that participates in a connection,
// sorted so producers precede consumers (Kahn's algorithm). Returns
// ErrCycle if the connection graph is cyclic.
func TopologicalOrder(p *Project) ([]uuid.UUID, error) {
	indegree := make(map[uuid.UUID]int)
	seen := make(map[uuid.UUID]bool)
	var order []uuid.UUID
	for _, c := range p.Connections {
		if !seen[c.From.NodeID] {
			seen[c.From.NodeID] = true
			order = append(order, c.From.NodeID)
		}
		if !seen[c.To.NodeID] {
			seen[c.To.NodeID] = true
			order = append(order, c.To.NodeID)
		}
		indegree[c.To.NodeID]++
	}

	var queue []uuid.UUID
	for _, id := range order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	var sorted []uuid.UUID
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		sorted = append(sorted, cur)
		for _, c := range p.Connections {
			if c.From.NodeID != cur {
				continue
			}
			indegree[c.To.NodeID]--
			if indegree[c.To.NodeID] == 0 {
				queue = append(queue, c.To.NodeID)
			}
		}
	}
	if len(sorted) != len(order) {
		return nil, ErrCycle
	}
	return sorted, nil
}

// EffectChain lists, in chain order, the effect nodes on a clip's image
// chain.
func EffectChain(p *Project, types *TypeRegistry, clipID uuid.UUID) []*GraphNode {
	return chainNodes(p, types, clipID, CategoryEffect)
}

// StyleNodes lists the style nodes reachable from a clip's shape chain.
func StyleNodes(p *Project, types *TypeRegistry, clipID uuid.UUID) []*GraphNode {
	return chainNodes(p, types, clipID, CategoryStyle)
}

// ShapeModifiers lists, in chain order, the effector and decorator nodes
// on a clip's shape chain.
func ShapeModifiers(p *Project, types *TypeRegistry, clipID uuid.UUID) []*GraphNode {
	var out []*GraphNode
	for _, n := range chainNodes(p, types, clipID, "") {
		cat, ok := types.CategoryOf(n.TypeID)
		if ok && (cat == CategoryEffector || cat == CategoryDecorator) {
			out = append(out, n)
		}
	}
	return out
}

// chainNodes walks the clip's full chain (shape phase then image phase)
// collecting graph nodes, filtered by category when one is given.
func chainNodes(p *Project, types *TypeRegistry, clipID uuid.UUID, filter NodeCategory) []*GraphNode {
	clip, ok := p.Clip(clipID)
	if !ok {
		return nil
	}
	var out []*GraphNode
	visited := map[uuid.UUID]bool{clipID: true}
	cur := PinID{NodeID: clipID, PinName: clip.PrimaryOutputPin()}

	step := func(inPin string) (PinID, bool) {
		for _, c := range p.Connections {
			if c.From == cur && c.To.PinName == inPin {
				return c.To, true
			}
		}
		return PinID{}, false
	}
	collect := func(n *GraphNode) {
		if filter == "" {
			out = append(out, n)
			return
		}
		if cat, ok := types.CategoryOf(n.TypeID); ok && cat == filter {
			out = append(out, n)
		}
	}

	if cur.PinName == PinShapeOut {
		for {
			to, ok := step(PinShapeIn)
			if !ok {
				return out
			}
			n, ok := p.GraphNode(to.NodeID)
			if !ok || visited[to.NodeID] {
				return out
			}
			visited[to.NodeID] = true
			collect(n)
			if cat, ok := types.CategoryOf(n.TypeID); ok && cat == CategoryStyle {
				cur = PinID{NodeID: to.NodeID, PinName: PinImageOut}
				break
			}
			cur = PinID{NodeID: to.NodeID, PinName: PinShapeOut}
		}
	}
	for {
		to, ok := step(PinImageIn)
		if !ok {
			return out
		}
		n, ok := p.GraphNode(to.NodeID)
		if !ok || visited[to.NodeID] {
			return out
		}
		visited[to.NodeID] = true
		collect(n)
		cur = PinID{NodeID: to.NodeID, PinName: PinImageOut}
	}
}
