package reel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Evaluator names for the built-in property evaluators.
const (
	EvalConstant   = "constant"
	EvalKeyframe   = "keyframe"
	EvalExpression = "expression"
)

// Keyframe is one sample on an animated property. Easing shapes the segment
// that starts at this keyframe.
type Keyframe struct {
	Time   float64       `json:"time"`
	Value  PropertyValue `json:"value"`
	Easing Easing        `json:"easing"`
}

// Property is one animatable slot on a node. Evaluator selects how the
// current value is produced: a stored constant, keyframe interpolation, or
// an expression of time.
type Property struct {
	Evaluator string        `json:"evaluator"`
	Value     PropertyValue `json:"value"`
	Keyframes []Keyframe    `json:"keyframes,omitempty"`
	// Expression is the source text for the expression evaluator.
	Expression string `json:"expression,omitempty"`
}

// Constant returns a property that always yields v.
func Constant(v PropertyValue) *Property {
	return &Property{Evaluator: EvalConstant, Value: v}
}

// Keyframed returns a property animated over the given keyframes. The
// keyframes are sorted by time; Value holds the first keyframe's value as
// the static fallback.
func Keyframed(kfs ...Keyframe) *Property {
	p := &Property{Evaluator: EvalKeyframe, Keyframes: kfs}
	p.sortKeyframes()
	if len(p.Keyframes) > 0 {
		p.Value = p.Keyframes[0].Value
	}
	return p
}

// Expression returns a property computed from an expression of time.
func Expression(src string) *Property {
	return &Property{Evaluator: EvalExpression, Expression: src, Value: Number(0)}
}

// keyframeTimeEpsilon is the window within which an upsert replaces an
// existing keyframe instead of inserting a new one.
const keyframeTimeEpsilon = 1e-9

// UpsertKeyframe inserts kf keeping the list sorted ascending by time, or
// replaces an existing keyframe at the same time. Switches the property to
// the keyframe evaluator.
func (p *Property) UpsertKeyframe(kf Keyframe) {
	p.Evaluator = EvalKeyframe
	for i := range p.Keyframes {
		if math.Abs(p.Keyframes[i].Time-kf.Time) < keyframeTimeEpsilon {
			p.Keyframes[i] = kf
			return
		}
	}
	idx := sort.Search(len(p.Keyframes), func(i int) bool {
		return p.Keyframes[i].Time > kf.Time
	})
	p.Keyframes = append(p.Keyframes, Keyframe{})
	copy(p.Keyframes[idx+1:], p.Keyframes[idx:])
	p.Keyframes[idx] = kf
}

// RemoveKeyframe deletes the keyframe at time t (within epsilon) and reports
// whether one was removed. Removing the last keyframe leaves an empty
// keyframe list; evaluation then falls back to Value.
func (p *Property) RemoveKeyframe(t float64) bool {
	for i := range p.Keyframes {
		if math.Abs(p.Keyframes[i].Time-t) < keyframeTimeEpsilon {
			p.Keyframes = append(p.Keyframes[:i], p.Keyframes[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Property) sortKeyframes() {
	sort.SliceStable(p.Keyframes, func(i, j int) bool {
		return p.Keyframes[i].Time < p.Keyframes[j].Time
	})
}

// Clone deep-copies the property.
func (p *Property) Clone() *Property {
	if p == nil {
		return nil
	}
	out := &Property{
		Evaluator:  p.Evaluator,
		Value:      p.Value.Clone(),
		Expression: p.Expression,
	}
	if p.Keyframes != nil {
		out.Keyframes = make([]Keyframe, len(p.Keyframes))
		for i, kf := range p.Keyframes {
			out.Keyframes[i] = Keyframe{Time: kf.Time, Value: kf.Value.Clone(), Easing: kf.Easing}
		}
	}
	return out
}

// PropertyMap is an insertion-ordered name → *Property map. Iteration and
// JSON encoding follow insertion order, so saved files keep their property
// layout stable.
type PropertyMap struct {
	keys []string
	vals map[string]*Property
}

// NewPropertyMap returns an empty ordered property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{vals: make(map[string]*Property)}
}

// Set inserts or replaces a property. A new name appends to the order.
func (m *PropertyMap) Set(name string, p *Property) {
	if m.vals == nil {
		m.vals = make(map[string]*Property)
	}
	if _, ok := m.vals[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.vals[name] = p
}

// SetConstant is shorthand for Set(name, Constant(v)).
func (m *PropertyMap) SetConstant(name string, v PropertyValue) {
	m.Set(name, Constant(v))
}

// Get returns the property for name.
func (m *PropertyMap) Get(name string) (*Property, bool) {
	if m == nil {
		return nil, false
	}
	p, ok := m.vals[name]
	return p, ok
}

// ConstantValue returns the stored static value for name, or def when the
// property is absent.
func (m *PropertyMap) ConstantValue(name string, def PropertyValue) PropertyValue {
	if p, ok := m.Get(name); ok {
		return p.Value
	}
	return def
}

// Delete removes a property and reports whether it existed.
func (m *PropertyMap) Delete(name string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.vals[name]; !ok {
		return false
	}
	delete(m.vals, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the insertion-ordered property names. Callers must not
// mutate the slice.
func (m *PropertyMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of properties.
func (m *PropertyMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone deep-copies the map and every property in it.
func (m *PropertyMap) Clone() *PropertyMap {
	out := NewPropertyMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.vals[k].Clone())
	}
	return out
}

// MarshalJSON writes the properties as a JSON object in insertion order.
func (m *PropertyMap) MarshalJSON() ([]byte, error) {
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
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of properties preserving document order.
func (m *PropertyMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	fresh := NewPropertyMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("reel: invalid property name %v", tok)
		}
		var p Property
		if err := dec.Decode(&p); err != nil {
			return err
		}
		p.sortKeyframes()
		fresh.Set(name, &p)
	}
	*m = *fresh
	return nil
}
