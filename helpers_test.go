package reel

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

func newTestID() uuid.UUID { return uuid.New() }

// fakeRenderer is a headless renderer that tracks calls and passes layer
// dimensions through, so chain semantics are observable without a GPU.
type fakeRenderer struct {
	transforms []Transform
	composites []BlendMode
	rasterized []*StyleConfig
}

func (f *fakeRenderer) TransformLayer(img *Image, tf Transform) (*Image, error) {
	f.transforms = append(f.transforms, tf)
	return img, nil
}

func (f *fakeRenderer) RasterizeShape(shape *ShapeData, style *StyleConfig, w, h int) (*Image, error) {
	f.rasterized = append(f.rasterized, style)
	return NewImage(w, h), nil
}

func (f *fakeRenderer) RasterizeGroupedShapes(shapes []*ShapeData, style *StyleConfig, w, h int) (*Image, error) {
	f.rasterized = append(f.rasterized, style)
	return NewImage(w, h), nil
}

func (f *fakeRenderer) RasterizeShader(source string, params map[string]PinValue, w, h int) (*Image, error) {
	return NewImage(w, h), nil
}

func (f *fakeRenderer) Composite(dst, src *Image, blend BlendMode, opacity float64) (*Image, error) {
	f.composites = append(f.composites, blend)
	return dst, nil
}

// fakeSource returns fixed-size images keyed by path.
type fakeSource struct {
	loaded []string
	frames []int
}

func (f *fakeSource) LoadImage(path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("no such file")
	}
	f.loaded = append(f.loaded, path)
	return NewImage(64, 64), nil
}

func (f *fakeSource) LoadVideoFrame(path string, frame int) (*Image, error) {
	f.loaded = append(f.loaded, path)
	f.frames = append(f.frames, frame)
	return NewImage(64, 64), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine(r Renderer, src Source) *Engine {
	e, err := NewEngine(EngineConfig{
		Renderer: r,
		Source:   src,
		Log:      quietLogger(),
	})
	if err != nil {
		panic(err)
	}
	return e
}

// testComposition wires a minimal project: one composition with a root
// track, returned alongside the project.
func testComposition() (*Project, *Composition, *Track) {
	p := NewProject("test")
	root := NewTrack("root")
	p.AddNode(root)
	comp := &Composition{
		ID:          newTestID(),
		Name:        "main",
		Width:       1920,
		Height:      1080,
		FPS:         30,
		Duration:    10,
		RootTrackID: root.ID,
	}
	p.Compositions = append(p.Compositions, comp)
	return p, comp, root
}
