package reel

import "fmt"

// PinDataType is the wire type of a pin. DataAny is the wildcard: it is
// compatible with every type on either end of a connection.
type PinDataType string

const (
	DataImage   PinDataType = "image"
	DataScalar  PinDataType = "scalar"
	DataInteger PinDataType = "integer"
	DataBoolean PinDataType = "boolean"
	DataVec2    PinDataType = "vec2"
	DataVec3    PinDataType = "vec3"
	DataColor   PinDataType = "color"
	DataString  PinDataType = "string"
	DataPath    PinDataType = "path"
	DataStyle   PinDataType = "style"
	DataShape   PinDataType = "shape"
	DataAny     PinDataType = "any"

	// DataStyleChain carries an ordered list of styles, letting one
	// shape rasterize with several stacked styles.
	DataStyleChain PinDataType = "style_chain"
)

// CompatiblePinTypes reports whether an output of type a may feed an input
// of type b.
func CompatiblePinTypes(a, b PinDataType) bool {
	return a == b || a == DataAny || b == DataAny
}

// Canonical pin names used by clips and the chain resolver.
const (
	PinImageIn  = "image_in"
	PinImageOut = "image_out"
	PinShapeIn  = "shape_in"
	PinShapeOut = "shape_out"
)

// PinDirection distinguishes input from output pins.
type PinDirection uint8

const (
	PinInput PinDirection = iota
	PinOutput
)

// PinDefinition declares one pin on a node type.
type PinDefinition struct {
	Name        string
	DisplayName string
	Direction   PinDirection
	Type        PinDataType
	// Default is pulled when the pin has no connection. Nil means the
	// type zero.
	Default *PropertyValue
}

// InPin declares an input pin.
func InPin(name, display string, t PinDataType) PinDefinition {
	return PinDefinition{Name: name, DisplayName: display, Direction: PinInput, Type: t}
}

// InPinDefault declares an input pin with a fallback value.
func InPinDefault(name, display string, t PinDataType, def PropertyValue) PinDefinition {
	return PinDefinition{Name: name, DisplayName: display, Direction: PinInput, Type: t, Default: &def}
}

// OutPin declares an output pin.
func OutPin(name, display string, t PinDataType) PinDefinition {
	return PinDefinition{Name: name, DisplayName: display, Direction: PinOutput, Type: t}
}

// NodeCategory is the closed category set. A node type's category is
// looked up from its definition, never inferred from its id at runtime.
type NodeCategory string

const (
	CategoryCompositing NodeCategory = "compositing"
	CategoryEffect      NodeCategory = "effect"
	CategoryStyle       NodeCategory = "style"
	CategoryEffector    NodeCategory = "effector"
	CategoryDecorator   NodeCategory = "decorator"
	CategoryMath        NodeCategory = "math"
)

// NodeTypeDefinition declares a graph node type: its pins and the default
// properties a fresh instance carries.
type NodeTypeDefinition struct {
	TypeID      string
	DisplayName string
	Category    NodeCategory
	Pins        []PinDefinition
	// Defaults are (name, value) pairs seeded as constant properties on
	// new instances, in order.
	Defaults []PropertyDefault
}

// PropertyDefault is one seeded default property.
type PropertyDefault struct {
	Name  string
	Value PropertyValue
}

// DefaultProperties builds the seed property map for a new instance.
func (d *NodeTypeDefinition) DefaultProperties() *PropertyMap {
	m := NewPropertyMap()
	for _, pd := range d.Defaults {
		m.SetConstant(pd.Name, pd.Value)
	}
	return m
}

// Pin returns the pin definition by name.
func (d *NodeTypeDefinition) Pin(name string) (PinDefinition, bool) {
	for _, p := range d.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return PinDefinition{}, false
}

// TypeRegistry holds the known node type definitions. Register rejects
// duplicate type ids; lookups are exact, never substring scans.
type TypeRegistry struct {
	byID  map[string]*NodeTypeDefinition
	order []string
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byID: make(map[string]*NodeTypeDefinition)}
}

// Register adds a definition. Duplicate type ids are rejected.
func (r *TypeRegistry) Register(def *NodeTypeDefinition) error {
	if _, ok := r.byID[def.TypeID]; ok {
		return fmt.Errorf("reel: node type %q already registered", def.TypeID)
	}
	r.byID[def.TypeID] = def
	r.order = append(r.order, def.TypeID)
	return nil
}

// Lookup returns the definition for an exact type id.
func (r *TypeRegistry) Lookup(typeID string) (*NodeTypeDefinition, bool) {
	def, ok := r.byID[typeID]
	return def, ok
}

// CategoryOf returns the category for a type id.
func (r *TypeRegistry) CategoryOf(typeID string) (NodeCategory, bool) {
	def, ok := r.byID[typeID]
	if !ok {
		return "", false
	}
	return def.Category, true
}

// TypeIDs returns the registered ids in registration order.
func (r *TypeRegistry) TypeIDs() []string {
	return r.order
}

// BuiltinTypes returns a registry populated with the built-in node
// catalog.
func BuiltinTypes() *TypeRegistry {
	r := NewTypeRegistry()
	for _, def := range builtinCatalog() {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

func builtinCatalog() []*NodeTypeDefinition {
	white := ColorValue(Color{255, 255, 255, 255})
	return []*NodeTypeDefinition{
		{
			TypeID:      "compositing.transform",
			DisplayName: "Transform",
			Category:    CategoryCompositing,
			Pins: []PinDefinition{
				InPin(PinImageIn, "Image", DataImage),
				OutPin(PinImageOut, "Image", DataImage),
			},
			Defaults: []PropertyDefault{
				{"position_x", Number(0)},
				{"position_y", Number(0)},
				{"anchor_x", Number(0)},
				{"anchor_y", Number(0)},
				{"scale_x", Number(100)},
				{"scale_y", Number(100)},
				{"rotation", Number(0)},
				{"opacity", Number(100)},
			},
		},
		{
			TypeID:      "effect.blur",
			DisplayName: "Blur",
			Category:    CategoryEffect,
			Pins: []PinDefinition{
				InPin(PinImageIn, "Image", DataImage),
				OutPin(PinImageOut, "Image", DataImage),
			},
			Defaults: []PropertyDefault{
				{"radius", Number(10)},
			},
		},
		{
			TypeID:      "effect.glow",
			DisplayName: "Glow",
			Category:    CategoryEffect,
			Pins: []PinDefinition{
				InPin(PinImageIn, "Image", DataImage),
				OutPin(PinImageOut, "Image", DataImage),
			},
			Defaults: []PropertyDefault{
				{"intensity", Number(1)},
				{"color", white},
			},
		},
		{
			TypeID:      "style.fill",
			DisplayName: "Fill",
			Category:    CategoryStyle,
			Pins: []PinDefinition{
				InPin(PinShapeIn, "Shape", DataShape),
				OutPin(PinImageOut, "Image", DataImage),
			},
			Defaults: []PropertyDefault{
				{"color", white},
			},
		},
		{
			TypeID:      "style.stroke",
			DisplayName: "Stroke",
			Category:    CategoryStyle,
			Pins: []PinDefinition{
				InPin(PinShapeIn, "Shape", DataShape),
				OutPin(PinImageOut, "Image", DataImage),
			},
			Defaults: []PropertyDefault{
				{"color", white},
				{"width", Number(2)},
				{"cap", String("butt")},
				{"join", String("miter")},
				{"dash", ArrayValue()},
			},
		},
		{
			TypeID:      "effector.wave",
			DisplayName: "Wave",
			Category:    CategoryEffector,
			Pins: []PinDefinition{
				InPin(PinShapeIn, "Shape", DataShape),
				OutPin(PinShapeOut, "Shape", DataShape),
			},
			Defaults: []PropertyDefault{
				{"amplitude", Number(10)},
				{"frequency", Number(1)},
			},
		},
		{
			TypeID:      "decorator.backplate",
			DisplayName: "Backplate",
			Category:    CategoryDecorator,
			Pins: []PinDefinition{
				InPin(PinShapeIn, "Shape", DataShape),
				OutPin(PinShapeOut, "Shape", DataShape),
			},
			Defaults: []PropertyDefault{
				{"target", String("line")},
				{"padding", Number(4)},
				{"color", ColorValue(Color{0, 0, 0, 255})},
			},
		},
		{
			TypeID:      "math.add",
			DisplayName: "Add",
			Category:    CategoryMath,
			Pins: []PinDefinition{
				InPinDefault("a", "A", DataScalar, Number(0)),
				InPinDefault("b", "B", DataScalar, Number(0)),
				OutPin("result", "Result", DataScalar),
			},
		},
		{
			TypeID:      "math.multiply",
			DisplayName: "Multiply",
			Category:    CategoryMath,
			Pins: []PinDefinition{
				InPinDefault("a", "A", DataScalar, Number(1)),
				InPinDefault("b", "B", DataScalar, Number(1)),
				OutPin("result", "Result", DataScalar),
			},
		},
		{
			TypeID:      "math.clamp",
			DisplayName: "Clamp",
			Category:    CategoryMath,
			Pins: []PinDefinition{
				InPinDefault("value", "Value", DataScalar, Number(0)),
				InPinDefault("min", "Min", DataScalar, Number(0)),
				InPinDefault("max", "Max", DataScalar, Number(1)),
				OutPin("result", "Result", DataScalar),
			},
		},
	}
}
