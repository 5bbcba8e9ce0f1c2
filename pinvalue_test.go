package reel

import "testing"

func TestStyleChainPin(t *testing.T) {
	fill := &StyleConfig{Style: StyleFill}
	stroke := &StyleConfig{Style: StyleStroke, Width: 2}

	v := StyleChainPin([]*StyleConfig{fill, stroke})
	chain, ok := v.IntoStyleChain()
	if !ok || len(chain) != 2 {
		t.Fatalf("chain = %v, want both styles", chain)
	}
	if chain[0] != fill || chain[1] != stroke {
		t.Error("chain order lost")
	}

	if !StyleChainPin(nil).IsNone() {
		t.Error("empty chain should be None")
	}
}

func TestSingleStyleCoercesToChain(t *testing.T) {
	fill := &StyleConfig{Style: StyleFill}
	chain, ok := StylePin(fill).IntoStyleChain()
	if !ok || len(chain) != 1 || chain[0] != fill {
		t.Errorf("chain = %v, want one-element chain", chain)
	}
	if _, ok := ScalarPin(1).IntoStyleChain(); ok {
		t.Error("scalar should not coerce to a style chain")
	}
}

func TestNilPayloadsAreNone(t *testing.T) {
	if !ImagePin(nil).IsNone() {
		t.Error("nil image should be None")
	}
	if !ShapePin(nil).IsNone() {
		t.Error("nil shape should be None")
	}
	if !StylePin(nil).IsNone() {
		t.Error("nil style should be None")
	}
}

func TestPinFromPropertyCoversScalars(t *testing.T) {
	if v := pinFromProperty(Number(2.5)); v.AsScalar(0) != 2.5 {
		t.Errorf("number = %v, want 2.5", v)
	}
	if v := pinFromProperty(ColorValue(Color{1, 2, 3, 4})); v.AsColor(Color{}).G != 2 {
		t.Errorf("color = %v, want G=2", v)
	}
	if !pinFromProperty(ArrayValue(Number(1))).IsNone() {
		t.Error("array has no pin form, want None")
	}
}
