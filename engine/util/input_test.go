package util

import (
	"math"
	"testing"
)

func TestDragTranslatesInClipSpace(t *testing.T) {
	var state InputState
	state.PressLeft(100, 100)
	state.MoveTo(150, 75, 200, 100)

	if math.Abs(float64(state.TranslateX-0.5)) > 1e-6 {
		t.Errorf("TranslateX = %v, want 0.5", state.TranslateX)
	}
	// moving the cursor up moves the text up
	if math.Abs(float64(state.TranslateY-0.5)) > 1e-6 {
		t.Errorf("TranslateY = %v, want 0.5", state.TranslateY)
	}

	state.MoveTo(150, 75, 200, 100)
	if math.Abs(float64(state.TranslateX-0.5)) > 1e-6 {
		t.Errorf("no movement changed TranslateX to %v", state.TranslateX)
	}
}

func TestMoveWithoutDragOnlyTracksCursor(t *testing.T) {
	var state InputState
	state.MoveTo(10, 20, 200, 100)
	if state.TranslateX != 0 || state.TranslateY != 0 {
		t.Errorf("translation changed without drag: %v", state.Translation())
	}
	if state.MouseX != 10 || state.MouseY != 20 {
		t.Errorf("cursor = (%v, %v), want (10, 20)", state.MouseX, state.MouseY)
	}
}

func TestReleaseEndsDrag(t *testing.T) {
	var state InputState
	state.PressLeft(0, 0)
	state.ReleaseLeft(5, 5)
	state.MoveTo(100, 100, 200, 100)
	if state.Dragging || state.TranslateX != 0 {
		t.Errorf("drag continued after release: %+v", state)
	}

	// a new press re-anchors instead of jumping by the distance travelled meanwhile
	state.PressLeft(100, 100)
	state.MoveTo(100, 100, 200, 100)
	if state.TranslateX != 0 {
		t.Errorf("re-anchoring failed, TranslateX = %v", state.TranslateX)
	}
}

func TestZoomIsClamped(t *testing.T) {
	var state InputState
	if state.Zoom() != 1 {
		t.Fatalf("initial zoom = %v", state.Zoom())
	}
	state.Scroll(5)
	if math.Abs(float64(state.Zoom()-1.5)) > 1e-6 {
		t.Errorf("zoom after scrolling 5 = %v, want 1.5", state.Zoom())
	}
	state.Scroll(-100)
	if state.Zoom() != minZoom {
		t.Errorf("zoom = %v, want clamp at %v", state.Zoom(), minZoom)
	}
}
