package etxt

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// WriteMeshGLTF saves a triangle list as a glTF document so the layout can be inspected in
// any model viewer. Positions get z = 0.
func WriteMeshGLTF(vertices []Vertex, filename string) error {
	if len(vertices) == 0 {
		return errors.New("write mesh: no vertices")
	}
	positions := make([][3]float32, len(vertices))
	texCoords := make([][2]float32, len(vertices))
	for i, vertex := range vertices {
		positions[i] = [3]float32{vertex.Position.X(), vertex.Position.Y(), 0}
		texCoords[i] = [2]float32{vertex.TexCoord.X(), vertex.TexCoord.Y()}
	}

	doc := gltf.NewDocument()
	positionAccessor := modeler.WritePosition(doc, positions)
	texCoordAccessor := modeler.WriteTextureCoord(doc, texCoords)
	doc.Meshes = []*gltf.Mesh{{
		Name: "text",
		Primitives: []*gltf.Primitive{{
			Mode: gltf.PrimitiveTriangles,
			Attributes: map[string]uint32{
				gltf.POSITION:   positionAccessor,
				gltf.TEXCOORD_0: texCoordAccessor,
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "text", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.Save(doc, filename); err != nil {
		return errors.Wrapf(err, "could not save '%s'", filename)
	}
	return nil
}
