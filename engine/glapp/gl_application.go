// Package glapp owns the window, the GL context and the render loop.
package glapp

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/sonnet/engine/glhf"
	"github.com/memmaker/sonnet/engine/util"
	"github.com/pkg/errors"
)

type GlApplication struct {
	Window             *glfw.Window
	TerminateFunc      func()
	UpdateFunc         func(elapsed float64)
	DrawFunc           func(elapsed float64)
	KeyHandler         func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	MousePosHandler    func(xpos float64, ypos float64)
	MouseButtonHandler func(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey)
	ScrollHandler      func(xoff float64, yoff float64)
	WindowWidth        int
	WindowHeight       int
	ticks              uint64
	FramesPerSecond    float64
	FPSRunningAvg      float64
	FPSMin             float64
	FPSMax             float64
	frameSeconds       int
	frameCount         int
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(key, scancode, action, mods)
	}
}

func (a *GlApplication) MousePosCallback(w *glfw.Window, xpos float64, ypos float64) {
	if a.MousePosHandler != nil {
		a.MousePosHandler(xpos, ypos)
	}
}

func (a *GlApplication) ScrollCallback(w *glfw.Window, xoff float64, yoff float64) {
	if a.ScrollHandler != nil {
		a.ScrollHandler(xoff, yoff)
	}
}

func (a *GlApplication) MouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if a.MouseButtonHandler != nil {
		a.MouseButtonHandler(button, action, mods)
	}
}

func (a *GlApplication) FramebufferSizeCallback(w *glfw.Window, width int, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// RegisterCallbacks routes the window events to the handler fields.
func (a *GlApplication) RegisterCallbacks() {
	a.Window.SetKeyCallback(a.KeyCallback)
	a.Window.SetCursorPosCallback(a.MousePosCallback)
	a.Window.SetMouseButtonCallback(a.MouseButtonCallback)
	a.Window.SetScrollCallback(a.ScrollCallback)
	a.Window.SetFramebufferSizeCallback(a.FramebufferSizeCallback)
}

func (a *GlApplication) Run() {
	defer a.TerminateFunc()
	previousTime := glfw.GetTime()
	startTime := previousTime
	a.FPSMin = math.MaxFloat64
	// Start Render Loop
	for !a.Window.ShouldClose() {
		glhf.Clear(0, 0, 0, 1)

		// Update
		time := glfw.GetTime()
		elapsed := time - previousTime
		previousTime = time
		a.UpdateFunc(elapsed)

		a.DrawFunc(elapsed)

		a.countFrame(time - startTime)
		if elapsed > 0 {
			a.updateFPS(elapsed)
		}

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

func (a *GlApplication) countFrame(sinceStart float64) {
	if sinceStart > float64(a.frameSeconds) {
		a.frameSeconds++
		util.LogSystemInfo(fmt.Sprintf("Frames: %d", a.frameCount))
		a.frameCount = 0
	} else {
		a.frameCount++
	}
}

func (a *GlApplication) updateFPS(elapsed float64) {
	a.FramesPerSecond = 1.0 / elapsed
	if a.ticks%60 == 0 {
		sixtyTicksAverage := a.FPSRunningAvg
		a.Window.SetTitle(fmt.Sprintf("FPS: %.0f (Avg: %.0f, Min: %.0f, Max: %.0f) / Elapsed: %.3f", a.FramesPerSecond, sixtyTicksAverage, a.FPSMin, a.FPSMax, elapsed*1000))
		a.FPSRunningAvg = 0 + a.FramesPerSecond*(1.0/60.0)
		a.FPSMin = math.MaxFloat64
		a.FPSMax = 0
	} else {
		a.FPSRunningAvg = a.FPSRunningAvg + a.FramesPerSecond*(1.0/60.0)
		if a.FramesPerSecond < a.FPSMin {
			a.FPSMin = a.FramesPerSecond
		}
		if a.FramesPerSecond > a.FPSMax {
			a.FPSMax = a.FramesPerSecond
		}
	}
}

// InitOpenGL opens a window with a GL 3.3 core context. Must run on the main thread.
func InitOpenGL(title string, width, height int, vsync bool) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "glfw init failed")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "failed to create GLFW window")
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err = glhf.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, err
	}

	util.LogGlInfo(fmt.Sprintf("OpenGL version %s", glhf.Version()))

	return win, func() {
		glfw.Terminate()
	}, nil
}
