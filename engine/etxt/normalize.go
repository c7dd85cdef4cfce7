package etxt

import "github.com/go-gl/mathgl/mgl32"

// Normalize maps every position of the mesh into [-1, 1] on both axes using the mesh
// extents. Texture coordinates are copied unchanged. An axis without extent (empty text,
// a lone space) collapses to 0 instead of dividing by zero.
func Normalize(mesh *Mesh) []Vertex {
	if mesh == nil {
		return nil
	}
	ext := mesh.Extents
	result := make([]Vertex, len(mesh.Vertices))
	for i, vertex := range mesh.Vertices {
		result[i] = Vertex{
			Position: mgl32.Vec2{
				normalizeFloat(vertex.Position.X(), ext.MinX, ext.MaxX),
				normalizeFloat(vertex.Position.Y(), ext.MinY, ext.MaxY),
			},
			TexCoord: vertex.TexCoord,
		}
	}
	return result
}

func normalizeFloat(num, min, max float32) float32 {
	if !(max > min) {
		return 0
	}
	return 2*((num-min)/(max-min)) - 1
}

// Interleave flattens vertices into the (x, y, u, v) layout of the text shader.
func Interleave(vertices []Vertex) []float32 {
	data := make([]float32, 0, len(vertices)*4)
	for _, v := range vertices {
		data = append(data, v.Position.X(), v.Position.Y(), v.TexCoord.X(), v.TexCoord.Y())
	}
	return data
}
