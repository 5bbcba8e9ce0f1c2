package reel

import "github.com/google/uuid"

// GraphNode is a processing node in the effect graph: a transform, effect,
// style, effector or decorator instance. TypeID selects its
// NodeTypeDefinition and, by prefix, its evaluator.
type GraphNode struct {
	ID         uuid.UUID    `json:"id"`
	TypeID     string       `json:"type_id"`
	Name       string       `json:"name"`
	Properties *PropertyMap `json:"properties"`
}

// NewGraphNode instantiates a node of the given registered type, seeding
// the default properties from its definition. Returns ErrUnknownNodeType
// for an unregistered type id.
func NewGraphNode(reg *TypeRegistry, typeID, name string) (*GraphNode, error) {
	def, ok := reg.Lookup(typeID)
	if !ok {
		return nil, ErrUnknownNodeType
	}
	n := &GraphNode{
		ID:         uuid.New(),
		TypeID:     typeID,
		Name:       name,
		Properties: def.DefaultProperties(),
	}
	return n, nil
}

// NodeID implements Node.
func (n *GraphNode) NodeID() uuid.UUID { return n.ID }

func (n *GraphNode) nodeType() string { return nodeTypeGraphNode }

// Clone deep-copies the node.
func (n *GraphNode) Clone() *GraphNode {
	out := *n
	out.Properties = n.Properties.Clone()
	return &out
}
