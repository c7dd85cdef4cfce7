package util

import "github.com/go-gl/mathgl/mgl32"

const minZoom = 0.1

// InputState is the mouse state of the render loop. The driver owns it and updates it from
// window callbacks; drawing reads Translation and Zoom once per frame.
type InputState struct {
	MouseX, MouseY         float64
	LastMouseX, LastMouseY float64
	Dragging               bool
	ScrollOffset           float64
	TranslateX, TranslateY float32
	QuitRequested          bool
}

// PressLeft anchors a drag at the cursor position.
func (s *InputState) PressLeft(x, y float64) {
	if !s.Dragging {
		s.LastMouseX = x
		s.LastMouseY = y
		s.Dragging = true
	}
	s.MouseX = x
	s.MouseY = y
}

func (s *InputState) ReleaseLeft(x, y float64) {
	s.MouseX = x
	s.MouseY = y
	s.Dragging = false
}

// MoveTo records the cursor and, while dragging, converts the pixel delta into clip-space
// translation for a window of width x height pixels. Window y grows downwards, clip y upwards.
func (s *InputState) MoveTo(x, y float64, width, height int) {
	s.MouseX = x
	s.MouseY = y
	if !s.Dragging || width <= 0 || height <= 0 {
		return
	}
	s.TranslateX += float32(2 * (x - s.LastMouseX) / float64(width))
	s.TranslateY -= float32(2 * (y - s.LastMouseY) / float64(height))
	s.LastMouseX = x
	s.LastMouseY = y
}

func (s *InputState) Scroll(yoff float64) {
	s.ScrollOffset += yoff / 10
}

// Zoom is the scale factor derived from the accumulated scroll offset.
func (s *InputState) Zoom() float32 {
	zoom := float32(1 + s.ScrollOffset)
	if zoom < minZoom {
		return minZoom
	}
	return zoom
}

func (s *InputState) Translation() mgl32.Vec3 {
	return mgl32.Vec3{s.TranslateX, s.TranslateY, 0}
}
