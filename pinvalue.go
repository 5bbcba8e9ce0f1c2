package reel

// PinKind discriminates the PinValue variants.
type PinKind uint8

const (
	PinNone PinKind = iota
	PinScalar
	PinIntegerValue
	PinBooleanValue
	PinVec2Value
	PinVec3Value
	PinColorValue
	PinStringValue
	PinPathValue
	PinImageValue
	PinShapeValue
	PinStyleValue
	PinStyleChainValue
)

// PinValue is what flows along a connection during evaluation. Like
// PropertyValue it is a flat tagged struct; None is the explicit absence
// value (an unconnected optional input, an empty frame) and is never an
// error.
type PinValue struct {
	Kind PinKind

	num   float64
	i     int64
	b     bool
	str   string
	vec   [3]float64
	col   Color
	img   *Image
	shape *ShapeData
	style *StyleConfig
	chain []*StyleConfig
}

// NonePin is the absence value.
func NonePin() PinValue { return PinValue{Kind: PinNone} }

// ScalarPin wraps a float64.
func ScalarPin(v float64) PinValue { return PinValue{Kind: PinScalar, num: v} }

// IntegerPin wraps an int64.
func IntegerPin(v int64) PinValue { return PinValue{Kind: PinIntegerValue, i: v} }

// BooleanPin wraps a bool.
func BooleanPin(v bool) PinValue { return PinValue{Kind: PinBooleanValue, b: v} }

// Vec2Pin wraps a 2D vector.
func Vec2Pin(x, y float64) PinValue {
	return PinValue{Kind: PinVec2Value, vec: [3]float64{x, y}}
}

// Vec3Pin wraps a 3D vector.
func Vec3Pin(x, y, z float64) PinValue {
	return PinValue{Kind: PinVec3Value, vec: [3]float64{x, y, z}}
}

// ColorPin wraps a color.
func ColorPin(c Color) PinValue { return PinValue{Kind: PinColorValue, col: c} }

// StringPin wraps a string.
func StringPin(s string) PinValue { return PinValue{Kind: PinStringValue, str: s} }

// PathPin wraps a filesystem path.
func PathPin(p string) PinValue { return PinValue{Kind: PinPathValue, str: p} }

// ImagePin wraps a rendered image. A nil image is None.
func ImagePin(img *Image) PinValue {
	if img == nil {
		return NonePin()
	}
	return PinValue{Kind: PinImageValue, img: img}
}

// ShapePin wraps shape data. Nil is None.
func ShapePin(sd *ShapeData) PinValue {
	if sd == nil {
		return NonePin()
	}
	return PinValue{Kind: PinShapeValue, shape: sd}
}

// StylePin wraps a style configuration. Nil is None.
func StylePin(sc *StyleConfig) PinValue {
	if sc == nil {
		return NonePin()
	}
	return PinValue{Kind: PinStyleValue, style: sc}
}

// StyleChainPin wraps an ordered list of styles to rasterize one shape
// with. An empty chain is None.
func StyleChainPin(chain []*StyleConfig) PinValue {
	if len(chain) == 0 {
		return NonePin()
	}
	return PinValue{Kind: PinStyleChainValue, chain: chain}
}

// IsNone reports absence.
func (v PinValue) IsNone() bool { return v.Kind == PinNone }

// AsScalar coerces Scalar and Integer, returning def otherwise.
func (v PinValue) AsScalar(def float64) float64 {
	switch v.Kind {
	case PinScalar:
		return v.num
	case PinIntegerValue:
		return float64(v.i)
	}
	return def
}

// AsInteger coerces Integer and Scalar (truncated), returning def otherwise.
func (v PinValue) AsInteger(def int64) int64 {
	switch v.Kind {
	case PinIntegerValue:
		return v.i
	case PinScalar:
		return int64(v.num)
	}
	return def
}

// AsBool returns the Boolean payload or def.
func (v PinValue) AsBool(def bool) bool {
	if v.Kind == PinBooleanValue {
		return v.b
	}
	return def
}

// AsString returns the String or Path payload or def.
func (v PinValue) AsString(def string) string {
	if v.Kind == PinStringValue || v.Kind == PinPathValue {
		return v.str
	}
	return def
}

// AsColor returns the Color payload or def.
func (v PinValue) AsColor(def Color) Color {
	if v.Kind == PinColorValue {
		return v.col
	}
	return def
}

// AsVec2 returns the Vec2 payload or the given defaults.
func (v PinValue) AsVec2(dx, dy float64) (x, y float64) {
	if v.Kind == PinVec2Value {
		return v.vec[0], v.vec[1]
	}
	return dx, dy
}

// IntoImage returns the image payload, if present.
func (v PinValue) IntoImage() (*Image, bool) {
	if v.Kind == PinImageValue {
		return v.img, true
	}
	return nil, false
}

// IntoShape returns the shape payload, if present.
func (v PinValue) IntoShape() (*ShapeData, bool) {
	if v.Kind == PinShapeValue {
		return v.shape, true
	}
	return nil, false
}

// IntoStyleChain returns the style list payload. A single Style coerces
// to a one-element chain.
func (v PinValue) IntoStyleChain() ([]*StyleConfig, bool) {
	switch v.Kind {
	case PinStyleChainValue:
		return v.chain, true
	case PinStyleValue:
		return []*StyleConfig{v.style}, true
	}
	return nil, false
}

// IntoStyle returns the style payload, if present.
func (v PinValue) IntoStyle() (*StyleConfig, bool) {
	if v.Kind == PinStyleValue {
		return v.style, true
	}
	return nil, false
}

// pinFromProperty converts a property value into the pin value it feeds
// when used as a pin default.
func pinFromProperty(v PropertyValue) PinValue {
	switch v.Kind {
	case KindNumber:
		return ScalarPin(v.Num())
	case KindInteger:
		return IntegerPin(v.Int())
	case KindBoolean:
		return BooleanPin(v.Bool())
	case KindString:
		return StringPin(v.Str())
	case KindVec2:
		x, y := v.Vec2()
		return Vec2Pin(x, y)
	case KindVec3:
		x, y, z := v.Vec3()
		return Vec3Pin(x, y, z)
	case KindColor:
		return ColorPin(v.Color())
	}
	return NonePin()
}

// zeroPinValue returns the deterministic zero for a declared pin type.
func zeroPinValue(t PinDataType) PinValue {
	switch t {
	case DataScalar:
		return ScalarPin(0)
	case DataInteger:
		return IntegerPin(0)
	case DataBoolean:
		return BooleanPin(false)
	case DataVec2:
		return Vec2Pin(0, 0)
	case DataVec3:
		return Vec3Pin(0, 0, 0)
	case DataColor:
		return ColorPin(Color{})
	case DataString, DataPath:
		return StringPin("")
	}
	return NonePin()
}
