package etxt

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// handTable builds a metrics table for codes 32..126 with hand-picked glyphs; all other
// codes stay zero (empty, no advance).
func handTable(atlasSize image.Point, lineHeight float32, glyphs map[rune]GlyphMetrics) *MetricsTable {
	table := newMetricsTable(PrintableASCII, atlasSize, lineHeight)
	for code, glyph := range glyphs {
		table.entries[code] = glyph
	}
	return table
}

func glyphA() GlyphMetrics {
	return GlyphMetrics{
		Advance:    mgl32.Vec2{20, 32},
		Dimensions: mgl32.Vec2{16, 28},
		Bearing:    mgl32.Vec2{2, 30},
		TexOffset:  0.1,
	}
}

func vec2Near(a, b mgl32.Vec2) bool {
	return a.ApproxEqualThreshold(b, 1e-5)
}

func TestSingleGlyphQuad(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, map[rune]GlyphMetrics{'A': glyphA()})
	opts := DefaultLayoutOptions()
	opts.Origin = mgl32.Vec2{50, 100}

	mesh, err := BuildTextMesh([]string{"A"}, table, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != VerticesPerGlyph || mesh.Glyphs != 1 {
		t.Fatalf("%d vertices for %d glyphs", len(mesh.Vertices), mesh.Glyphs)
	}

	rightU := float32(0.1 + 16.0/500.0)
	bottomV := float32(28.0 / 40.0)
	topLeft := Vertex{mgl32.Vec2{52, 70}, mgl32.Vec2{0.1, 0}}
	topRight := Vertex{mgl32.Vec2{68, 70}, mgl32.Vec2{rightU, 0}}
	bottomLeft := Vertex{mgl32.Vec2{52, 98}, mgl32.Vec2{0.1, bottomV}}
	bottomRight := Vertex{mgl32.Vec2{68, 98}, mgl32.Vec2{rightU, bottomV}}
	want := []Vertex{topLeft, topRight, bottomLeft, topRight, bottomLeft, bottomRight}
	for i, vertex := range mesh.Vertices {
		if !vec2Near(vertex.Position, want[i].Position) || !vec2Near(vertex.TexCoord, want[i].TexCoord) {
			t.Errorf("vertex %d = %+v, want %+v", i, vertex, want[i])
		}
	}

	wantExtents := Extents{MinX: 52, MaxX: 68, MinY: 70, MaxY: 98}
	if mesh.Extents != wantExtents {
		t.Errorf("extents = %+v, want %+v", mesh.Extents, wantExtents)
	}
}

func TestVertexCountAndExtents(t *testing.T) {
	atlas, err := NewAtlasBuilder(&fakeRasterizer{}, PrintableASCII).Build()
	if err != nil {
		t.Fatal(err)
	}
	lines := []string{"Shall I compare thee", "", "  to a summer's day?"}
	mesh, err := BuildTextMesh(lines, atlas.Metrics, DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}

	runes := 0
	for _, line := range lines {
		runes += len([]rune(line))
	}
	if mesh.Glyphs != runes || len(mesh.Vertices) != VerticesPerGlyph*runes {
		t.Fatalf("%d glyphs, %d vertices for %d runes", mesh.Glyphs, len(mesh.Vertices), runes)
	}

	touched := Extents{}
	for _, vertex := range mesh.Vertices {
		if !mesh.Extents.Contains(vertex.Position) {
			t.Fatalf("vertex %v outside extents %+v", vertex.Position, mesh.Extents)
		}
		if vertex.Position.X() == mesh.Extents.MinX {
			touched.MinX = 1
		}
		if vertex.Position.X() == mesh.Extents.MaxX {
			touched.MaxX = 1
		}
		if vertex.Position.Y() == mesh.Extents.MinY {
			touched.MinY = 1
		}
		if vertex.Position.Y() == mesh.Extents.MaxY {
			touched.MaxY = 1
		}
	}
	if touched != (Extents{1, 1, 1, 1}) {
		t.Errorf("extents are not tight: %+v", touched)
	}
}

func twoLineTable() *MetricsTable {
	glyph := func(advanceY float32) GlyphMetrics {
		return GlyphMetrics{
			Advance:    mgl32.Vec2{10, advanceY},
			Dimensions: mgl32.Vec2{8, 12},
			Bearing:    mgl32.Vec2{1, 10},
		}
	}
	return handTable(image.Pt(100, 16), 24, map[rune]GlyphMetrics{
		'H': glyph(30),
		'i': glyph(40),
		'O': glyph(30),
		'k': glyph(30),
	})
}

func TestLineSpacingPolicies(t *testing.T) {
	table := twoLineTable()
	cases := []struct {
		policy  LineSpacingPolicy
		secondY float32 // pen y of the second line
		scaleY  float32
	}{
		{policy: LineSpacingLastGlyph, secondY: 40, scaleY: 1},
		{policy: LineSpacingLastGlyph, secondY: 80, scaleY: 2},
		{policy: LineSpacingFaceHeight, secondY: 24, scaleY: 1},
	}
	for _, c := range cases {
		t.Run(c.policy.String(), func(t *testing.T) {
			opts := LayoutOptions{Scale: mgl32.Vec2{1, c.scaleY}, LineSpacing: c.policy}
			mesh, err := BuildTextMesh([]string{"Hi", "Ok"}, table, opts)
			if err != nil {
				t.Fatal(err)
			}
			// first vertex of 'O' is its top-left corner
			top := mesh.Vertices[2*VerticesPerGlyph].Position.Y()
			want := c.secondY - 10*c.scaleY
			if top != want {
				t.Errorf("second line top = %v, want %v", top, want)
			}
		})
	}
}

func TestEmptyLineUsesFaceHeight(t *testing.T) {
	table := twoLineTable()
	mesh, err := BuildTextMesh([]string{"", "H"}, table, DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}
	if top := mesh.Vertices[0].Position.Y(); top != 24-10 {
		t.Errorf("'H' after an empty line starts at %v, want 14", top)
	}
}

func TestHorizontalAdvanceAndScale(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, map[rune]GlyphMetrics{'A': glyphA()})
	opts := LayoutOptions{Scale: mgl32.Vec2{2, 0.5}}
	mesh, err := BuildTextMesh([]string{"AA"}, table, opts)
	if err != nil {
		t.Fatal(err)
	}
	first := mesh.Vertices[0].Position
	second := mesh.Vertices[VerticesPerGlyph].Position
	if second.X()-first.X() != 40 {
		t.Errorf("pen advanced %v, want 2*20", second.X()-first.X())
	}
	if width := mesh.Vertices[1].Position.X() - first.X(); width != 32 {
		t.Errorf("quad width %v, want 2*16", width)
	}
	if height := mesh.Vertices[2].Position.Y() - first.Y(); height != 14 {
		t.Errorf("quad height %v, want 0.5*28", height)
	}
	if !vec2Near(mesh.Vertices[1].TexCoord, mgl32.Vec2{0.1 + 16.0/500.0, 0}) {
		t.Errorf("scale leaked into tex coords: %v", mesh.Vertices[1].TexCoord)
	}
}

func TestWhitespaceEmitsDegenerateQuads(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, map[rune]GlyphMetrics{
		'A': glyphA(),
		' ': {Advance: mgl32.Vec2{20, 32}},
	})
	mesh, err := BuildTextMesh([]string{"A A"}, table, DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != 3*VerticesPerGlyph {
		t.Fatalf("%d vertices", len(mesh.Vertices))
	}
	space := mesh.Vertices[VerticesPerGlyph : 2*VerticesPerGlyph]
	for _, vertex := range space[1:] {
		if vertex.Position != space[0].Position {
			t.Errorf("space quad is not degenerate: %v", space)
		}
	}
	if x := mesh.Vertices[2*VerticesPerGlyph].Position.X(); x != 42 {
		t.Errorf("second 'A' starts at %v, want 2*20+2", x)
	}
}

func TestOutOfRangeCharacter(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, map[rune]GlyphMetrics{'A': glyphA(), '?': glyphA()})

	_, err := BuildTextMesh([]string{"A", "AAé"}, table, DefaultLayoutOptions())
	if !errors.Is(err, ErrGlyphOutOfRange) {
		t.Fatalf("err = %v, want ErrGlyphOutOfRange", err)
	}
	if want := "line 2, column 3"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name %q", err, want)
	}

	opts := DefaultLayoutOptions()
	opts.Fallback = '?'
	substituted, err := BuildTextMesh([]string{"é\t"}, table, opts)
	if err != nil {
		t.Fatal(err)
	}
	expected, _ := BuildTextMesh([]string{"??"}, table, DefaultLayoutOptions())
	for i := range expected.Vertices {
		if substituted.Vertices[i] != expected.Vertices[i] {
			t.Fatalf("fallback vertex %d = %v, want %v", i, substituted.Vertices[i], expected.Vertices[i])
		}
	}

	opts.Fallback = 'é'
	if _, err = BuildTextMesh([]string{"A"}, table, opts); !errors.Is(err, ErrGlyphOutOfRange) {
		t.Errorf("fallback outside the range: err = %v", err)
	}
}

func TestBuildTextMeshRejectsBadTables(t *testing.T) {
	if _, err := BuildTextMesh([]string{"A"}, nil, DefaultLayoutOptions()); err == nil {
		t.Error("nil table accepted")
	}
	empty := newMetricsTable(PrintableASCII, image.Point{}, 0)
	if _, err := BuildTextMesh([]string{"A"}, empty, DefaultLayoutOptions()); err == nil {
		t.Error("table without atlas size accepted")
	}
}

func TestEmptyTextHasEmptyExtents(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, nil)
	mesh, err := BuildTextMesh(nil, table, DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != 0 || !mesh.Extents.Empty() {
		t.Errorf("mesh = %+v", mesh)
	}
	if !math.IsInf(float64(mesh.Extents.MinX), 1) {
		t.Errorf("min x = %v", mesh.Extents.MinX)
	}
}

func TestRebuildIsIndependent(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, map[rune]GlyphMetrics{'A': glyphA()})
	first, err := BuildTextMesh([]string{"AA"}, table, DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}
	second, err := BuildTextMesh([]string{"AA"}, table, DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}
	reference := second.Vertices[0]
	first.Vertices[0].Position = mgl32.Vec2{-1000, -1000}
	if second.Vertices[0] != reference {
		t.Error("meshes share vertex storage")
	}
}

func BenchmarkBuildTextMesh(b *testing.B) {
	atlas, err := NewAtlasBuilder(&fakeRasterizer{}, PrintableASCII).Build()
	if err != nil {
		b.Fatal(err)
	}
	lines := []string{
		"Shall I compare thee to a summer's day?",
		"Thou art more lovely and more temperate:",
		"Rough winds do shake the darling buds of May,",
		"And summer's lease hath all too short a date;",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = BuildTextMesh(lines, atlas.Metrics, DefaultLayoutOptions()); err != nil {
			b.Fatal(err)
		}
	}
}
