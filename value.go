package reel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValueKind discriminates the PropertyValue variants.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindString
	KindVec2
	KindVec3
	KindVec4
	KindColor
	KindArray
	KindMap
)

// String returns the kind name used in log messages.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindColor:
		return "color"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	}
	return "invalid"
}

// Color is an 8-bit RGBA color. Channel interpolation happens per channel
// in u8 space, rounded, independently.
type Color struct {
	R, G, B, A uint8
}

// PropertyValue is the closed set of values a property (or keyframe) can
// hold. It is a flat tagged struct rather than an interface so evaluation
// can pass values around without allocating.
//
// The JSON form is untagged, matching the project file format: plain
// scalars, {x,y} for Vec2, {x,y,z} for Vec3, {x,y,z,w} for Vec4,
// {r,g,b,a} for Color, and any other object decodes as an ordered Map.
type PropertyValue struct {
	Kind ValueKind

	num float64
	i   int64
	b   bool
	str string
	vec [4]float64
	col Color
	arr []PropertyValue
	m   *ValueMap
}

// --- Constructors ---

// Number wraps a float64.
func Number(v float64) PropertyValue { return PropertyValue{Kind: KindNumber, num: v} }

// Integer wraps an int64.
func Integer(v int64) PropertyValue { return PropertyValue{Kind: KindInteger, i: v} }

// Boolean wraps a bool.
func Boolean(v bool) PropertyValue { return PropertyValue{Kind: KindBoolean, b: v} }

// String wraps a string.
func String(v string) PropertyValue { return PropertyValue{Kind: KindString, str: v} }

// Vec2Value wraps a 2D vector.
func Vec2Value(x, y float64) PropertyValue {
	return PropertyValue{Kind: KindVec2, vec: [4]float64{x, y}}
}

// Vec3Value wraps a 3D vector.
func Vec3Value(x, y, z float64) PropertyValue {
	return PropertyValue{Kind: KindVec3, vec: [4]float64{x, y, z}}
}

// Vec4Value wraps a 4D vector.
func Vec4Value(x, y, z, w float64) PropertyValue {
	return PropertyValue{Kind: KindVec4, vec: [4]float64{x, y, z, w}}
}

// ColorValue wraps a Color.
func ColorValue(c Color) PropertyValue { return PropertyValue{Kind: KindColor, col: c} }

// ArrayValue wraps an element list.
func ArrayValue(items ...PropertyValue) PropertyValue {
	return PropertyValue{Kind: KindArray, arr: items}
}

// MapValue wraps an ordered map. A nil map behaves as an empty one.
func MapValue(m *ValueMap) PropertyValue {
	if m == nil {
		m = NewValueMap()
	}
	return PropertyValue{Kind: KindMap, m: m}
}

// --- Accessors ---

// Num returns the Number payload (zero for other kinds).
func (v PropertyValue) Num() float64 { return v.num }

// Int returns the Integer payload (zero for other kinds).
func (v PropertyValue) Int() int64 { return v.i }

// Bool returns the Boolean payload.
func (v PropertyValue) Bool() bool { return v.b }

// Str returns the String payload.
func (v PropertyValue) Str() string { return v.str }

// Vec2 returns the Vec2 components.
func (v PropertyValue) Vec2() (x, y float64) { return v.vec[0], v.vec[1] }

// Vec3 returns the Vec3 components.
func (v PropertyValue) Vec3() (x, y, z float64) { return v.vec[0], v.vec[1], v.vec[2] }

// Vec4 returns the Vec4 components.
func (v PropertyValue) Vec4() (x, y, z, w float64) {
	return v.vec[0], v.vec[1], v.vec[2], v.vec[3]
}

// Color returns the Color payload.
func (v PropertyValue) Color() Color { return v.col }

// Array returns the element slice. Callers must not mutate it.
func (v PropertyValue) Array() []PropertyValue { return v.arr }

// Map returns the ordered map payload, or nil for other kinds.
func (v PropertyValue) Map() *ValueMap { return v.m }

// AsNumber coerces Number and Integer to float64, returning def otherwise.
func (v PropertyValue) AsNumber(def float64) float64 {
	switch v.Kind {
	case KindNumber:
		return v.num
	case KindInteger:
		return float64(v.i)
	}
	return def
}

// AsString returns the String payload or def.
func (v PropertyValue) AsString(def string) string {
	if v.Kind == KindString {
		return v.str
	}
	return def
}

// AsBool returns the Boolean payload or def.
func (v PropertyValue) AsBool(def bool) bool {
	if v.Kind == KindBoolean {
		return v.b
	}
	return def
}

// AsColor returns the Color payload or def.
func (v PropertyValue) AsColor(def Color) Color {
	if v.Kind == KindColor {
		return v.col
	}
	return def
}

// Zero returns the zero value of the same kind: Number(0), empty string,
// transparent color, and so on. The zero of an invalid value is Number(0).
func (v PropertyValue) Zero() PropertyValue {
	switch v.Kind {
	case KindInteger:
		return Integer(0)
	case KindBoolean:
		return Boolean(false)
	case KindString:
		return String("")
	case KindVec2:
		return Vec2Value(0, 0)
	case KindVec3:
		return Vec3Value(0, 0, 0)
	case KindVec4:
		return Vec4Value(0, 0, 0, 0)
	case KindColor:
		return ColorValue(Color{})
	case KindArray:
		return ArrayValue()
	case KindMap:
		return MapValue(nil)
	}
	return Number(0)
}

// Clone deep-copies the value. Scalar kinds are returned as-is.
func (v PropertyValue) Clone() PropertyValue {
	switch v.Kind {
	case KindArray:
		items := make([]PropertyValue, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return ArrayValue(items...)
	case KindMap:
		return MapValue(v.m.Clone())
	}
	return v
}

// Equal reports deep equality of kind and payload.
func (v PropertyValue) Equal(o PropertyValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.num == o.num
	case KindInteger:
		return v.i == o.i
	case KindBoolean:
		return v.b == o.b
	case KindString:
		return v.str == o.str
	case KindVec2, KindVec3, KindVec4:
		return v.vec == o.vec
	case KindColor:
		return v.col == o.col
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if v.m.Len() != o.m.Len() {
			return false
		}
		for _, k := range v.m.Keys() {
			a, _ := v.m.Get(k)
			b, ok := o.m.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return true
}

// --- JSON ---

// MarshalJSON writes the untagged wire form.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("0"), nil
		}
		return json.Marshal(v.num)
	case KindInteger:
		return json.Marshal(v.i)
	case KindBoolean:
		return json.Marshal(v.b)
	case KindString:
		return json.Marshal(v.str)
	case KindVec2:
		return []byte(fmt.Sprintf(`{"x":%s,"y":%s}`,
			jsonNum(v.vec[0]), jsonNum(v.vec[1]))), nil
	case KindVec3:
		return []byte(fmt.Sprintf(`{"x":%s,"y":%s,"z":%s}`,
			jsonNum(v.vec[0]), jsonNum(v.vec[1]), jsonNum(v.vec[2]))), nil
	case KindVec4:
		return []byte(fmt.Sprintf(`{"x":%s,"y":%s,"z":%s,"w":%s}`,
			jsonNum(v.vec[0]), jsonNum(v.vec[1]), jsonNum(v.vec[2]), jsonNum(v.vec[3]))), nil
	case KindColor:
		return []byte(fmt.Sprintf(`{"r":%d,"g":%d,"b":%d,"a":%d}`,
			v.col.R, v.col.G, v.col.B, v.col.A)), nil
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		return v.m.MarshalJSON()
	}
	return []byte("null"), nil
}

// UnmarshalJSON reads the untagged wire form, inferring Vec2/Vec3/Vec4/Color
// from object key shapes and preserving document order for maps.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	pv, err := decodeValue(data)
	if err != nil {
		return err
	}
	*v = pv
	return nil
}

func jsonNum(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func decodeValue(data []byte) (PropertyValue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		// Null has no native variant; the file format writes it as "null".
		return String("null"), nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return PropertyValue{}, err
		}
		return String(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return PropertyValue{}, err
		}
		return Boolean(b), nil
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return PropertyValue{}, err
		}
		items := make([]PropertyValue, len(raws))
		for i, raw := range raws {
			item, err := decodeValue(raw)
			if err != nil {
				return PropertyValue{}, err
			}
			items[i] = item
		}
		return ArrayValue(items...), nil
	case '{':
		return decodeObject(data)
	default:
		// Integers stay integers unless the literal carries a fraction
		// or exponent.
		if !bytes.ContainsAny(data, ".eE") {
			if i, err := strconv.ParseInt(string(data), 10, 64); err == nil {
				return Integer(i), nil
			}
		}
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return PropertyValue{}, fmt.Errorf("reel: invalid value literal %q: %w", data, err)
		}
		return Number(f), nil
	}
}

func decodeObject(data []byte) (PropertyValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil { // opening brace
		return PropertyValue{}, err
	}
	var keys []string
	var raws []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return PropertyValue{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return PropertyValue{}, fmt.Errorf("reel: invalid map key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return PropertyValue{}, err
		}
		keys = append(keys, key)
		raws = append(raws, raw)
	}

	if pv, ok := inferShaped(keys, raws); ok {
		return pv, nil
	}

	m := NewValueMap()
	for i, key := range keys {
		item, err := decodeValue(raws[i])
		if err != nil {
			return PropertyValue{}, err
		}
		m.Set(key, item)
	}
	return MapValue(m), nil
}

// inferShaped recognizes the fixed object shapes {x,y}, {x,y,z}, {x,y,z,w}
// and {r,g,b,a} whose members are all numeric.
func inferShaped(keys []string, raws []json.RawMessage) (PropertyValue, bool) {
	nums := make(map[string]float64, len(keys))
	for i, key := range keys {
		f, err := strconv.ParseFloat(string(bytes.TrimSpace(raws[i])), 64)
		if err != nil {
			return PropertyValue{}, false
		}
		nums[key] = f
	}
	has := func(ks ...string) bool {
		if len(nums) != len(ks) {
			return false
		}
		for _, k := range ks {
			if _, ok := nums[k]; !ok {
				return false
			}
		}
		return true
	}
	switch {
	case has("x", "y"):
		return Vec2Value(nums["x"], nums["y"]), true
	case has("x", "y", "z"):
		return Vec3Value(nums["x"], nums["y"], nums["z"]), true
	case has("x", "y", "z", "w"):
		return Vec4Value(nums["x"], nums["y"], nums["z"], nums["w"]), true
	case has("r", "g", "b", "a"):
		return ColorValue(Color{
			R: clampU8(nums["r"]),
			G: clampU8(nums["g"]),
			B: clampU8(nums["b"]),
			A: clampU8(nums["a"]),
		}), true
	}
	return PropertyValue{}, false
}

func clampU8(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(math.Round(f))
}

// --- ValueMap ---

// ValueMap is an insertion-ordered string → PropertyValue map. JSON encoding
// and decoding preserve key order.
type ValueMap struct {
	keys []string
	vals map[string]PropertyValue
}

// NewValueMap returns an empty ordered map.
func NewValueMap() *ValueMap {
	return &ValueMap{vals: make(map[string]PropertyValue)}
}

// Set inserts or replaces a key. A new key appends to the order.
func (m *ValueMap) Set(key string, v PropertyValue) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value for key.
func (m *ValueMap) Get(key string) (PropertyValue, bool) {
	if m == nil {
		return PropertyValue{}, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Keys returns the insertion-ordered key list. Callers must not mutate it.
func (m *ValueMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *ValueMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone deep-copies the map.
func (m *ValueMap) Clone() *ValueMap {
	out := NewValueMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.vals[k].Clone())
	}
	return out
}

// MarshalJSON writes the entries as a JSON object in insertion order.
func (m *ValueMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := m.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving document key order.
func (m *ValueMap) UnmarshalJSON(data []byte) error {
	pv, err := decodeObject(data)
	if err != nil {
		return err
	}
	switch pv.Kind {
	case KindMap:
		*m = *pv.m
	default:
		// A shaped object ({x,y}, {r,g,b,a}) explicitly decoded as a map
		// keeps its entries rather than collapsing to a vector.
		fresh := NewValueMap()
		switch pv.Kind {
		case KindVec2:
			fresh.Set("x", Number(pv.vec[0]))
			fresh.Set("y", Number(pv.vec[1]))
		case KindVec3:
			fresh.Set("x", Number(pv.vec[0]))
			fresh.Set("y", Number(pv.vec[1]))
			fresh.Set("z", Number(pv.vec[2]))
		case KindVec4:
			fresh.Set("x", Number(pv.vec[0]))
			fresh.Set("y", Number(pv.vec[1]))
			fresh.Set("z", Number(pv.vec[2]))
			fresh.Set("w", Number(pv.vec[3]))
		case KindColor:
			fresh.Set("r", Integer(int64(pv.col.R)))
			fresh.Set("g", Integer(int64(pv.col.G)))
			fresh.Set("b", Integer(int64(pv.col.B)))
			fresh.Set("a", Integer(int64(pv.col.A)))
		}
		*m = *fresh
	}
	return nil
}
