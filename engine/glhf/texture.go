package glhf

import (
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// TextureFormat selects how many bytes per pixel a Texture stores.
type TextureFormat int

const (
	// FormatRGBA stores 4 bytes per pixel.
	FormatRGBA TextureFormat = iota
	// FormatRed stores a single coverage byte per pixel. Glyph atlases use this.
	FormatRed
)

func (f TextureFormat) channels() int {
	if f == FormatRed {
		return 1
	}
	return 4
}

func (f TextureFormat) glFormat() uint32 {
	if f == FormatRed {
		return gl.RED
	}
	return gl.RGBA
}

// Texture is an OpenGL texture.
type Texture struct {
	tex           binder
	width, height int
	format        TextureFormat
	smooth        bool
}

// NewTexture creates a new texture with the specified width and height with some initial
// pixel values. The pixels must match the format (one byte per component) or be nil, in
// which case the texture storage is allocated but left undefined.
func NewTexture(width, height int, format TextureFormat, smooth bool, pixels []uint8) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid texture size %dx%d", width, height)
	}
	if pixels != nil && len(pixels) != width*height*format.channels() {
		return nil, errors.Errorf("texture %dx%d: got %d bytes of pixel data", width, height, len(pixels))
	}
	tex := &Texture{
		tex: binder{
			restoreLoc: gl.TEXTURE_BINDING_2D,
			bindFunc: func(obj uint32) {
				gl.BindTexture(gl.TEXTURE_2D, obj)
			},
		},
		width:  width,
		height: height,
		format: format,
	}

	gl.GenTextures(1, &tex.tex.obj)

	tex.Begin()
	defer tex.End()

	if format == FormatRed {
		// single byte rows are not 4-byte aligned
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}

	data := gl.Ptr(nil)
	if pixels != nil {
		data = gl.Ptr(pixels)
	}
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		int32(format.glFormat()),
		int32(width),
		int32(height),
		0,
		format.glFormat(),
		gl.UNSIGNED_BYTE,
		data,
	)

	tex.SetSmooth(smooth)
	tex.SetWrapToClampEdge()
	runtime.SetFinalizer(tex, (*Texture).delete)

	return tex, nil
}

// NewAtlasTexture allocates an empty single-channel texture of exactly width x height pixels
// with clamp-to-edge wrapping and linear filtering. Glyph bitmaps are written into it
// afterwards with SetPixels.
func NewAtlasTexture(width, height int) (*Texture, error) {
	return NewTexture(width, height, FormatRed, true, nil)
}

func (t *Texture) delete() {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &t.tex.obj)
	})
}

// ID returns the OpenGL ID of this Texture.
func (t *Texture) ID() uint32 {
	return t.tex.obj
}

// Width returns the width of the Texture in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the Texture in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Format returns the pixel format of the Texture.
func (t *Texture) Format() TextureFormat {
	return t.format
}

// SetPixels sets the content of a sub-region of the Texture. Pixels must match the texture
// format, one byte per channel. Empty regions are ignored.
func (t *Texture) SetPixels(x, y, w, h int, pixels []uint8) {
	if w == 0 || h == 0 {
		return
	}
	if len(pixels) != w*h*t.format.channels() {
		panic("set pixels: wrong number of pixels")
	}
	t.Begin()
	defer t.End()
	if t.format == FormatRed {
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	}
	gl.TexSubImage2D(
		gl.TEXTURE_2D,
		0,
		int32(x),
		int32(y),
		int32(w),
		int32(h),
		t.format.glFormat(),
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
}

// SetSmooth sets whether the Texture should be drawn "smoothly" or "pixely".
//
// It affects how the Texture is drawn when zoomed. Smooth interpolates between the neighbour
// pixels, while pixely always chooses the nearest pixel.
func (t *Texture) SetSmooth(smooth bool) {
	t.smooth = smooth
	if smooth {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

// SetWrapToClampEdge stops sampling from bleeding across the atlas borders.
func (t *Texture) SetWrapToClampEdge() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Smooth returns whether the Texture is set to be drawn "smooth" or "pixely".
func (t *Texture) Smooth() bool {
	return t.smooth
}

// Begin binds the Texture. This is necessary before using the Texture.
func (t *Texture) Begin() {
	t.tex.bind()
}

// End unbinds the Texture and restores the previous one.
func (t *Texture) End() {
	t.tex.restore()
}
