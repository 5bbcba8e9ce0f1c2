package reel

import (
	"errors"
	"testing"
)

func graphFixture(t *testing.T) (*Project, *TypeRegistry, *Clip, *GraphNode, *GraphNode) {
	t.Helper()
	p, _, root := testComposition()
	types := BuiltinTypes()

	clip := NewClip("footage", ClipImage, 0, 100)
	p.AddNode(clip)
	root.AddChild(clip.ID)

	blur, err := NewGraphNode(types, "effect.blur", "blur")
	if err != nil {
		t.Fatal(err)
	}
	p.AddNode(blur)

	tf, err := NewGraphNode(types, "compositing.transform", "place")
	if err != nil {
		t.Fatal(err)
	}
	p.AddNode(tf)
	return p, types, clip, blur, tf
}

func connect(p *Project, fromNode Node, fromPin string, toNode Node, toPin string) {
	p.Connections = append(p.Connections, NewConnection(
		PinID{NodeID: fromNode.NodeID(), PinName: fromPin},
		PinID{NodeID: toNode.NodeID(), PinName: toPin},
	))
}

func TestValidateConnectionRejectsSelf(t *testing.T) {
	p, types, _, blur, _ := graphFixture(t)
	err := ValidateConnection(p, types,
		PinID{NodeID: blur.ID, PinName: PinImageOut},
		PinID{NodeID: blur.ID, PinName: PinImageIn})
	if !errors.Is(err, ErrSelfConnection) {
		t.Errorf("err = %v, want ErrSelfConnection", err)
	}
}

func TestValidateConnectionRejectsMissingNode(t *testing.T) {
	p, types, clip, _, _ := graphFixture(t)
	err := ValidateConnection(p, types,
		PinID{NodeID: clip.ID, PinName: PinImageOut},
		PinID{NodeID: newTestID(), PinName: PinImageIn})
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestValidateConnectionRejectsOccupiedInput(t *testing.T) {
	p, types, clip, blur, tf := graphFixture(t)
	connect(p, clip, PinImageOut, blur, PinImageIn)
	err := ValidateConnection(p, types,
		PinID{NodeID: tf.ID, PinName: PinImageOut},
		PinID{NodeID: blur.ID, PinName: PinImageIn})
	if !errors.Is(err, ErrInputOccupied) {
		t.Errorf("err = %v, want ErrInputOccupied", err)
	}
}

func TestValidateConnectionRejectsTypeMismatch(t *testing.T) {
	p, types, clip, _, _ := graphFixture(t)
	fill, err := NewGraphNode(types, "style.fill", "fill")
	if err != nil {
		t.Fatal(err)
	}
	p.AddNode(fill)
	// image_out (Image) into shape_in (Shape).
	verr := ValidateConnection(p, types,
		PinID{NodeID: clip.ID, PinName: PinImageOut},
		PinID{NodeID: fill.ID, PinName: PinShapeIn})
	if !errors.Is(verr, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", verr)
	}
}

func TestValidateConnectionRejectsCycle(t *testing.T) {
	p, types, _, blur, tf := graphFixture(t)
	connect(p, blur, PinImageOut, tf, PinImageIn)
	err := ValidateConnection(p, types,
		PinID{NodeID: tf.ID, PinName: PinImageOut},
		PinID{NodeID: blur.ID, PinName: PinImageIn})
	if !errors.Is(err, ErrCycle) {
		t.Errorf("err = %v, want ErrCycle", err)
	}
}

func TestWouldCreateCycleTransitive(t *testing.T) {
	p, types, _, blur, tf := graphFixture(t)
	glow, err := NewGraphNode(types, "effect.glow", "glow")
	if err != nil {
		t.Fatal(err)
	}
	p.AddNode(glow)
	connect(p, blur, PinImageOut, glow, PinImageIn)
	connect(p, glow, PinImageOut, tf, PinImageIn)

	if WouldCreateCycle(p, blur.ID, tf.ID) {
		t.Error("blur -> tf is forward, not a cycle")
	}
	if !WouldCreateCycle(p, tf.ID, blur.ID) {
		t.Error("tf -> blur closes a transitive cycle")
	}
}

func TestTopologicalOrderProducersFirst(t *testing.T) {
	p, _, clip, blur, tf := graphFixture(t)
	connect(p, clip, PinImageOut, blur, PinImageIn)
	connect(p, blur, PinImageOut, tf, PinImageIn)

	order, err := TopologicalOrder(p)
	if err != nil {
		t.Fatal(err)
	}
	pos := make(map[string]int)
	for i, id := range order {
		pos[id.String()] = i
	}
	if pos[clip.ID.String()] > pos[blur.ID.String()] {
		t.Error("clip should precede blur")
	}
	if pos[blur.ID.String()] > pos[tf.ID.String()] {
		t.Error("blur should precede transform")
	}
}

func TestTopologicalOrderDetectsCycle(t *testing.T) {
	p, _, _, blur, tf := graphFixture(t)
	connect(p, blur, PinImageOut, tf, PinImageIn)
	connect(p, tf, PinImageOut, blur, PinImageIn)
	if _, err := TopologicalOrder(p); !errors.Is(err, ErrCycle) {
		t.Errorf("err = %v, want ErrCycle", err)
	}
}

func TestEffectChainListsInOrder(t *testing.T) {
	p, types, clip, blur, tf := graphFixture(t)
	glow, err := NewGraphNode(types, "effect.glow", "glow")
	if err != nil {
		t.Fatal(err)
	}
	p.AddNode(glow)
	connect(p, clip, PinImageOut, blur, PinImageIn)
	connect(p, blur, PinImageOut, glow, PinImageIn)
	connect(p, glow, PinImageOut, tf, PinImageIn)

	chain := EffectChain(p, types, clip.ID)
	if len(chain) != 2 {
		t.Fatalf("len = %d, want 2", len(chain))
	}
	if chain[0].TypeID != "effect.blur" || chain[1].TypeID != "effect.glow" {
		t.Errorf("chain = [%s, %s], want [effect.blur, effect.glow]",
			chain[0].TypeID, chain[1].TypeID)
	}
}

func TestShapeModifiersOnShapeChain(t *testing.T) {
	p, types, _, _, _ := graphFixture(t)
	text := NewClip("title", ClipText, 0, 100)
	p.AddNode(text)

	wave, _ := NewGraphNode(types, "effector.wave", "wave")
	plate, _ := NewGraphNode(types, "decorator.backplate", "plate")
	fill, _ := NewGraphNode(types, "style.fill", "fill")
	p.AddNode(wave)
	p.AddNode(plate)
	p.AddNode(fill)
	connect(p, text, PinShapeOut, wave, PinShapeIn)
	connect(p, wave, PinShapeOut, plate, PinShapeIn)
	connect(p, plate, PinShapeOut, fill, PinShapeIn)

	mods := ShapeModifiers(p, types, text.ID)
	if len(mods) != 2 {
		t.Fatalf("len = %d, want 2", len(mods))
	}
	styles := StyleNodes(p, types, text.ID)
	if len(styles) != 1 || styles[0].TypeID != "style.fill" {
		t.Errorf("styles = %v, want [style.fill]", styles)
	}
}
