package etxt

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestWriteMeshGLTF(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, map[rune]GlyphMetrics{'A': glyphA()})
	mesh, err := BuildTextMesh([]string{"AA", "A"}, table, DefaultLayoutOptions())
	if err != nil {
		t.Fatal(err)
	}
	filename := filepath.Join(t.TempDir(), "text_mesh.glb")
	if err = WriteMeshGLTF(Normalize(mesh), filename); err != nil {
		t.Fatal(err)
	}

	doc, err := gltf.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 1 {
		t.Fatalf("document has %d meshes", len(doc.Meshes))
	}
	primitive := doc.Meshes[0].Primitives[0]
	for _, attribute := range []string{gltf.POSITION, gltf.TEXCOORD_0} {
		index, ok := primitive.Attributes[attribute]
		if !ok {
			t.Fatalf("missing %s attribute", attribute)
		}
		if count := int(doc.Accessors[index].Count); count != len(mesh.Vertices) {
			t.Errorf("%s has %d elements, want %d", attribute, count, len(mesh.Vertices))
		}
	}
	if len(doc.Scenes) == 0 || len(doc.Scenes[0].Nodes) != 1 {
		t.Error("mesh node not part of the default scene")
	}
}

func TestWriteMeshGLTFRejectsEmptyMesh(t *testing.T) {
	if err := WriteMeshGLTF(nil, filepath.Join(t.TempDir(), "empty.glb")); err == nil {
		t.Error("empty mesh was written")
	}
}
