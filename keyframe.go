package reel

import "math"

// InterpolateKeyframes samples a sorted keyframe list at time t.
//
// Before the first keyframe it returns the first value; at or after the
// last it returns the last. In between, the segment is the pair
// (last keyframe with Time <= t, the next one); the starting keyframe's
// easing maps normalized segment time to progress, and the two values are
// interpolated per kind. A zero-duration segment yields the starting value.
//
// An empty list returns (PropertyValue{}, false).
func InterpolateKeyframes(kfs []Keyframe, t float64) (PropertyValue, bool) {
	if len(kfs) == 0 {
		return PropertyValue{}, false
	}
	if t <= kfs[0].Time {
		return kfs[0].Value, true
	}
	last := kfs[len(kfs)-1]
	if t >= last.Time {
		return last.Value, true
	}

	// Last keyframe at or before t. The range checks above guarantee a
	// successor exists.
	idx := 0
	for i := len(kfs) - 1; i >= 0; i-- {
		if kfs[i].Time <= t {
			idx = i
			break
		}
	}
	from, to := kfs[idx], kfs[idx+1]

	duration := to.Time - from.Time
	if duration <= 0 {
		return from.Value, true
	}
	progress := from.Easing.Apply((t - from.Time) / duration)
	return lerpValue(from.Value, to.Value, progress), true
}

// lerpValue interpolates two property values at progress p. Mismatched or
// non-interpolable kinds snap to the start value.
func lerpValue(a, b PropertyValue, p float64) PropertyValue {
	if a.Kind != b.Kind {
		return a
	}
	switch a.Kind {
	case KindNumber:
		return Number(lerp(a.Num(), b.Num(), p))
	case KindInteger:
		return Integer(int64(math.Round(lerp(float64(a.Int()), float64(b.Int()), p))))
	case KindVec2:
		ax, ay := a.Vec2()
		bx, by := b.Vec2()
		return Vec2Value(lerp(ax, bx, p), lerp(ay, by, p))
	case KindVec3:
		ax, ay, az := a.Vec3()
		bx, by, bz := b.Vec3()
		return Vec3Value(lerp(ax, bx, p), lerp(ay, by, p), lerp(az, bz, p))
	case KindVec4:
		ax, ay, az, aw := a.Vec4()
		bx, by, bz, bw := b.Vec4()
		return Vec4Value(lerp(ax, bx, p), lerp(ay, by, p), lerp(az, bz, p), lerp(aw, bw, p))
	case KindColor:
		ca, cb := a.Color(), b.Color()
		return ColorValue(Color{
			R: lerpU8(ca.R, cb.R, p),
			G: lerpU8(ca.G, cb.G, p),
			B: lerpU8(ca.B, cb.B, p),
			A: lerpU8(ca.A, cb.A, p),
		})
	case KindArray:
		aa, ba := a.Array(), b.Array()
		if len(aa) != len(ba) {
			return a
		}
		items := make([]PropertyValue, len(aa))
		for i := range aa {
			items[i] = lerpValue(aa[i], ba[i], p)
		}
		return ArrayValue(items...)
	case KindMap:
		// Key-matched: keys present in both endpoints interpolate, keys
		// missing from the end keep the start value.
		am, bm := a.Map(), b.Map()
		out := NewValueMap()
		for _, k := range am.Keys() {
			av, _ := am.Get(k)
			if bv, ok := bm.Get(k); ok {
				out.Set(k, lerpValue(av, bv, p))
			} else {
				out.Set(k, av)
			}
		}
		return MapValue(out)
	}
	// Boolean and String hold the start value until the segment ends.
	return a
}

func lerp(a, b, p float64) float64 { return a + (b-a)*p }

// lerpU8 interpolates one color channel in u8 space and rounds. Progress
// outside [0,1] (overshooting easings) clamps at the channel bounds.
func lerpU8(a, b uint8, p float64) uint8 {
	f := lerp(float64(a), float64(b), p)
	return clampU8(f)
}
