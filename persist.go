package reel

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// projectFile is the on-disk layout. Nodes are stored as a flat array with
// a node_type tag and sorted by id, so saves are deterministic and diffs
// stay small.
type projectFile struct {
	Name         string            `json:"name"`
	Assets       []*Asset          `json:"assets"`
	Compositions []*Composition    `json:"compositions"`
	Nodes        []json.RawMessage `json:"nodes"`
	Connections  []*Connection     `json:"connections"`
}

type nodeTag struct {
	NodeType string `json:"node_type"`
}

// MarshalJSON writes the project in its file layout.
func (p *Project) MarshalJSON() ([]byte, error) {
	f := projectFile{
		Name:         p.Name,
		Assets:       p.Assets,
		Compositions: p.Compositions,
		Connections:  p.Connections,
	}

	nodes := make([]Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].NodeID().String() < nodes[j].NodeID().String()
	})
	for _, n := range nodes {
		body, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		tag, err := json.Marshal(nodeTag{NodeType: n.nodeType()})
		if err != nil {
			return nil, err
		}
		// Splice the tag into the node object.
		merged := append([]byte{'{'}, tag[1:len(tag)-1]...)
		if len(body) > 2 {
			merged = append(merged, ',')
			merged = append(merged, body[1:]...)
		} else {
			merged = append(merged, '}')
		}
		f.Nodes = append(f.Nodes, merged)
	}
	return json.Marshal(f)
}

// UnmarshalJSON reads the file layout back into a project.
func (p *Project) UnmarshalJSON(data []byte) error {
	var f projectFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	out := NewProject(f.Name)
	out.Assets = f.Assets
	out.Compositions = f.Compositions
	out.Connections = f.Connections

	for _, raw := range f.Nodes {
		var tag nodeTag
		if err := json.Unmarshal(raw, &tag); err != nil {
			return err
		}
		var n Node
		switch tag.NodeType {
		case nodeTypeTrack:
			t := &Track{}
			if err := json.Unmarshal(raw, t); err != nil {
				return err
			}
			n = t
		case nodeTypeClip:
			c := &Clip{}
			if err := json.Unmarshal(raw, c); err != nil {
				return err
			}
			if c.Properties == nil {
				c.Properties = NewPropertyMap()
			}
			n = c
		case nodeTypeGraphNode:
			g := &GraphNode{}
			if err := json.Unmarshal(raw, g); err != nil {
				return err
			}
			if g.Properties == nil {
				g.Properties = NewPropertyMap()
			}
			n = g
		default:
			return fmt.Errorf("reel: unknown node_type %q", tag.NodeType)
		}
		out.AddNode(n)
	}
	*p = *out
	return nil
}

// SaveProject writes the project as indented JSON.
func SaveProject(w io.Writer, p *Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// LoadProject reads a project from JSON.
func LoadProject(r io.Reader) (*Project, error) {
	var p Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProjectFile writes the project to path.
func SaveProjectFile(path string, p *Project) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return SaveProject(f, p)
}

// LoadProjectFile reads the project at path.
func LoadProjectFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadProject(f)
}
