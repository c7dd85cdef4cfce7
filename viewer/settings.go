package viewer

import (
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/sonnet/engine/etxt"
	"github.com/memmaker/sonnet/engine/util"
	"github.com/pkg/errors"
)

type Settings struct {
	Width  int
	Height int
	Title  string
	VSync  bool

	// FontPath empty selects the embedded Go Mono face.
	FontPath   string
	PixelSize  int
	GlyphStart int
	GlyphCount int

	OriginX, OriginY float32
	ScaleX, ScaleY   float32
	LineSpacing      string // "last-glyph" or "face-height"
	Fallback         string // single character, empty to fail on unknown characters

	CacheBitmaps bool
	// DebugDumpDir receives the atlas PNG and a glTF of the text mesh when set.
	DebugDumpDir string
}

func DefaultSettings() Settings {
	return Settings{
		Width:       1920,
		Height:      1050,
		Title:       "Sonnet",
		FontPath:    "/usr/share/fonts/TTF/Hack-Regular.ttf",
		PixelSize:   32,
		GlyphStart:  int(etxt.PrintableASCII.Start),
		GlyphCount:  etxt.PrintableASCII.Count,
		OriginX:     50,
		OriginY:     100,
		ScaleX:      1,
		ScaleY:      1,
		LineSpacing: etxt.LineSpacingLastGlyph.String(),
	}
}

// LoadSettings overlays the defaults with the fields present in filename. A missing file
// yields the defaults.
func LoadSettings(filename string) (Settings, error) {
	settings := DefaultSettings()
	found, err := util.LoadJsonFile(filename, &settings)
	if err != nil {
		return settings, err
	}
	if found {
		util.LogSystemInfo("[Settings] loaded " + filename)
	}
	if err = settings.Validate(); err != nil {
		return settings, errors.Wrapf(err, "invalid settings in '%s'", filename)
	}
	return settings, nil
}

func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", s.Width, s.Height)
	}
	if s.PixelSize <= 0 {
		return errors.Wrapf(etxt.ErrInvalidPixelSize, "%d", s.PixelSize)
	}
	if s.ScaleX <= 0 || s.ScaleY <= 0 {
		return errors.Errorf("text scale (%v, %v) must be positive", s.ScaleX, s.ScaleY)
	}
	if err := s.GlyphRange().Validate(); err != nil {
		return err
	}
	_, err := s.LayoutOptions()
	return err
}

func (s Settings) GlyphRange() etxt.GlyphRange {
	return etxt.GlyphRange{Start: rune(s.GlyphStart), Count: s.GlyphCount}
}

func (s Settings) LayoutOptions() (etxt.LayoutOptions, error) {
	policy, err := etxt.ParseLineSpacingPolicy(s.LineSpacing)
	if err != nil {
		return etxt.LayoutOptions{}, err
	}
	opts := etxt.LayoutOptions{
		Origin:      mgl32.Vec2{s.OriginX, s.OriginY},
		Scale:       mgl32.Vec2{s.ScaleX, s.ScaleY},
		LineSpacing: policy,
	}
	if s.Fallback != "" {
		fallback, size := utf8.DecodeRuneInString(s.Fallback)
		if size != len(s.Fallback) || !s.GlyphRange().Contains(fallback) {
			return etxt.LayoutOptions{}, errors.Wrapf(etxt.ErrGlyphOutOfRange, "fallback '%s'", s.Fallback)
		}
		opts.Fallback = fallback
	}
	return opts, nil
}
