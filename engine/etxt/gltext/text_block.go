// Package gltext puts etxt atlases and meshes on the GPU.
package gltext

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/sonnet/engine/etxt"
	"github.com/memmaker/sonnet/engine/glapp"
	"github.com/memmaker/sonnet/engine/glhf"
	"github.com/memmaker/sonnet/engine/util"
	"github.com/pkg/errors"
)

// TexturePageAllocator packs the atlas straight into a single-channel GL texture.
func TexturePageAllocator(width, height int) (etxt.AtlasPage, error) {
	texture, err := glhf.NewAtlasTexture(width, height)
	if err != nil {
		return nil, err
	}
	return texture, nil
}

// TextBlock is a static block of text drawn from one atlas texture.
type TextBlock struct {
	shader       *glhf.Shader
	modelUniform int
	texture      *glhf.Texture
	metrics      *etxt.MetricsTable
	layout       etxt.LayoutOptions
	vertices     *glhf.VertexSlice[glhf.GlFloat]
	mesh         *etxt.Mesh
	normalized   []etxt.Vertex
	pos          mgl32.Vec3
	scale        float32
}

// NewTextBlock needs a shader whose vertex format is (position vec2, texCoord vec2) and
// whose uniform at modelUniform is a mat4.
func NewTextBlock(shader *glhf.Shader, modelUniform int, atlas *etxt.TextAtlas, layout etxt.LayoutOptions) (*TextBlock, error) {
	texture, ok := etxt.FindPage[*glhf.Texture](atlas.Page)
	if !ok {
		return nil, errors.New("text block: atlas was not packed into a GL texture")
	}
	return &TextBlock{
		shader:       shader,
		modelUniform: modelUniform,
		texture:      texture,
		metrics:      atlas.Metrics,
		layout:       layout,
		scale:        1,
	}, nil
}

// SetLines rebuilds the whole mesh. The previous vertex slice stays in use until the new one
// is completely uploaded.
func (t *TextBlock) SetLines(lines []string) error {
	mesh, err := etxt.BuildTextMesh(lines, t.metrics, t.layout)
	if err != nil {
		return err
	}
	normalized := etxt.Normalize(mesh)

	interleaved := etxt.Interleave(normalized)
	data := make([]glhf.GlFloat, len(interleaved))
	for i, f := range interleaved {
		data[i] = glhf.GlFloat(f)
	}

	vertexCount := len(normalized)
	vertices := glhf.MakeVertexSlice(t.shader, vertexCount, vertexCount)
	vertices.Begin()
	vertices.SetVertexData(data)
	vertices.End()
	glapp.CheckForGLError()

	t.mesh = mesh
	t.normalized = normalized
	t.vertices = vertices
	util.LogMeshInfo(fmt.Sprintf("[Mesh] %d lines, %d glyphs, %d vertices", len(lines), mesh.Glyphs, vertexCount))
	return nil
}

// Mesh is the pixel-space mesh of the last SetLines call.
func (t *TextBlock) Mesh() *etxt.Mesh {
	return t.mesh
}

// Vertices is the normalized vertex buffer of the last SetLines call.
func (t *TextBlock) Vertices() []etxt.Vertex {
	return t.normalized
}

func (t *TextBlock) SetPosition(pos mgl32.Vec3) {
	t.pos = pos
}

func (t *TextBlock) SetScale(scale float32) {
	t.scale = scale
}

func (t *TextBlock) GetTransformMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.pos.X(), t.pos.Y(), t.pos.Z()).Mul4(mgl32.Scale3D(t.scale, t.scale, 1))
}

// Draw expects the shader to be bound.
func (t *TextBlock) Draw() {
	if t.vertices == nil {
		return
	}
	t.shader.SetUniformAttr(t.modelUniform, t.GetTransformMatrix())

	t.texture.Begin()

	t.vertices.Begin()
	t.vertices.Draw()
	t.vertices.End()

	t.texture.End()
}
