package viewer

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/sonnet/engine/etxt"
	"github.com/memmaker/sonnet/engine/etxt/gltext"
	"github.com/memmaker/sonnet/engine/glapp"
	"github.com/memmaker/sonnet/engine/glhf"
	"github.com/memmaker/sonnet/engine/util"
	"github.com/pkg/errors"
)

var (
	//go:embed shader/text.vert
	textVertexShaderSource string

	//go:embed shader/text.frag
	textFragmentShaderSource string
)

const (
	uniformProjection = iota
	uniformModel
)

// SonnetViewer shows SonnetLines in a window; the text can be dragged and zoomed.
type SonnetViewer struct {
	*glapp.GlApplication
	settings   Settings
	input      util.InputState
	timer      *util.Timer
	textShader *glhf.Shader
	atlas      *etxt.TextAtlas
	text       *gltext.TextBlock
}

// NewSonnetViewer opens the window and builds atlas and text mesh on the main thread.
func NewSonnetViewer(settings Settings) (*SonnetViewer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	var (
		viewer *SonnetViewer
		err    error
	)
	mainthread.Call(func() {
		viewer, err = newSonnetViewer(settings)
	})
	return viewer, err
}

func newSonnetViewer(settings Settings) (*SonnetViewer, error) {
	window, terminateFunc, err := glapp.InitOpenGL(settings.Title, settings.Width, settings.Height, settings.VSync)
	if err != nil {
		return nil, err
	}
	glApp := &glapp.GlApplication{
		WindowWidth:   settings.Width,
		WindowHeight:  settings.Height,
		Window:        window,
		TerminateFunc: terminateFunc,
	}
	glApp.RegisterCallbacks()

	v := &SonnetViewer{
		GlApplication: glApp,
		settings:      settings,
		timer:         util.NewTimer(),
	}
	v.DrawFunc = v.Draw
	v.UpdateFunc = v.Update
	v.KeyHandler = v.handleKeyEvents
	v.MousePosHandler = v.handleMousePosEvents
	v.MouseButtonHandler = v.handleMouseButtonEvents
	v.ScrollHandler = v.handleScrollEvents

	if err = v.setupText(); err != nil {
		terminateFunc()
		return nil, err
	}
	util.LogSystemInfo("[Startup]\n" + v.timer.String())
	return v, nil
}

func (v *SonnetViewer) setupText() error {
	err := v.timer.Measure("shader", func() error {
		var shaderErr error
		v.textShader, shaderErr = loadTextShader()
		return shaderErr
	})
	if err != nil {
		return err
	}

	allocate := gltext.TexturePageAllocator
	if v.settings.DebugDumpDir != "" {
		allocate = etxt.MirrorAllocator(gltext.TexturePageAllocator, etxt.NewAlphaPage)
	}
	err = v.timer.Measure("atlas", func() error {
		var atlasErr error
		v.atlas, atlasErr = etxt.LoadFontAtlas(v.settings.FontPath, v.settings.PixelSize, v.settings.GlyphRange(),
			etxt.WithPageAllocator(allocate),
			etxt.WithBitmapCache(v.settings.CacheBitmaps),
		)
		return atlasErr
	})
	if err != nil {
		return errors.Wrap(err, "could not build font atlas")
	}
	glapp.CheckForGLError()

	layout, err := v.settings.LayoutOptions()
	if err != nil {
		return err
	}
	v.text, err = gltext.NewTextBlock(v.textShader, uniformModel, v.atlas, layout)
	if err != nil {
		return err
	}
	err = v.timer.Measure("mesh", func() error {
		return v.text.SetLines(SonnetLines)
	})
	if err != nil {
		return errors.Wrap(err, "could not lay out text")
	}

	if v.settings.DebugDumpDir != "" {
		return v.dumpDebugFiles()
	}
	return nil
}

func loadTextShader() (*glhf.Shader, error) {
	var (
		vertexFormat = glhf.AttrFormat{
			{Name: "position", Type: glhf.Vec2},
			{Name: "texCoord", Type: glhf.Vec2},
		}
		uniformFormat = glhf.AttrFormat{
			uniformProjection: glhf.Attr{Name: "projection", Type: glhf.Mat4},
			uniformModel:      glhf.Attr{Name: "model", Type: glhf.Mat4},
		}
	)
	shader, err := glhf.NewShader(vertexFormat, uniformFormat, textVertexShaderSource, textFragmentShaderSource)
	if err != nil {
		return nil, errors.Wrap(err, "could not load text shader")
	}

	shader.Begin()
	shader.SetUniformAttr(uniformProjection, glapp.FlipYProjection())
	shader.End()
	return shader, nil
}

func (v *SonnetViewer) dumpDebugFiles() error {
	dir := v.settings.DebugDumpDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "could not create debug dir '%s'", dir)
	}
	if page, ok := etxt.FindPage[*etxt.AlphaPage](v.atlas.Page); ok {
		atlasFile := filepath.Join(dir, "debug_atlas.png")
		if err := page.WritePNG(atlasFile); err != nil {
			return err
		}
		util.LogAtlasInfo("[Debug] wrote " + atlasFile)
	}
	meshFile := filepath.Join(dir, "text_mesh.glb")
	if err := etxt.WriteMeshGLTF(v.text.Vertices(), meshFile); err != nil {
		return err
	}
	util.LogMeshInfo("[Debug] wrote " + meshFile)
	return nil
}

func (v *SonnetViewer) Update(elapsed float64) {
	if v.input.QuitRequested {
		v.Window.SetShouldClose(true)
	}
	v.text.SetPosition(v.input.Translation())
	v.text.SetScale(v.input.Zoom())
}

func (v *SonnetViewer) Draw(elapsed float64) {
	v.textShader.Begin()
	v.text.Draw()
	v.textShader.End()
}

func (v *SonnetViewer) handleKeyEvents(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		v.input.QuitRequested = true
	}
}

func (v *SonnetViewer) handleMousePosEvents(xpos float64, ypos float64) {
	width, height := v.Window.GetSize()
	v.input.MoveTo(xpos, ypos, width, height)
}

func (v *SonnetViewer) handleMouseButtonEvents(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	x, y := v.Window.GetCursorPos()
	switch action {
	case glfw.Press:
		v.input.PressLeft(x, y)
		util.LogInputDebug(fmt.Sprintf("[Input] drag from (%.0f, %.0f)", x, y))
	case glfw.Release:
		v.input.ReleaseLeft(x, y)
		util.LogInputDebug(fmt.Sprintf("[Input] drag ended, translation %v", v.input.Translation()))
	}
}

func (v *SonnetViewer) handleScrollEvents(xoff float64, yoff float64) {
	v.input.Scroll(yoff)
	util.LogInputDebug(fmt.Sprintf("[Input] zoom %.2f", v.input.Zoom()))
}

// Run drives the render loop on the main thread until the window closes.
func (v *SonnetViewer) Run() {
	mainthread.Call(v.GlApplication.Run)
}
