package etxt

import (
	"image"
	"testing"

	"github.com/pkg/errors"
)

func TestGlyphRange(t *testing.T) {
	if PrintableASCII.End() != 127 {
		t.Errorf("printable ASCII ends at %d", PrintableASCII.End())
	}
	if !PrintableASCII.Contains(' ') || !PrintableASCII.Contains('~') {
		t.Error("space and tilde must be printable")
	}
	if PrintableASCII.Contains(127) || PrintableASCII.Contains('\n') {
		t.Error("control codes must not be printable")
	}
	if err := PrintableASCII.Validate(); err != nil {
		t.Error(err)
	}
	if err := (GlyphRange{Start: 0, Count: MaxGlyphCodes}).Validate(); err != nil {
		t.Errorf("full table rejected: %v", err)
	}
	if err := (GlyphRange{Start: 1, Count: MaxGlyphCodes}).Validate(); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("overflowing range: err = %v", err)
	}
	if s := PrintableASCII.String(); s != "[32, 127)" {
		t.Errorf("String() = %q", s)
	}
}

func TestMetricsLookup(t *testing.T) {
	table := handTable(image.Pt(500, 40), 32, map[rune]GlyphMetrics{'A': glyphA()})
	glyph, err := table.Lookup('A')
	if err != nil {
		t.Fatal(err)
	}
	if glyph != glyphA() {
		t.Errorf("Lookup('A') = %+v", glyph)
	}
	for _, code := range []rune{'\n', 127, 200, -3} {
		if _, err = table.Lookup(code); !errors.Is(err, ErrGlyphOutOfRange) {
			t.Errorf("Lookup(%d): err = %v", code, err)
		}
	}
}

func TestParseLineSpacingPolicy(t *testing.T) {
	for _, policy := range []LineSpacingPolicy{LineSpacingLastGlyph, LineSpacingFaceHeight} {
		parsed, err := ParseLineSpacingPolicy(policy.String())
		if err != nil || parsed != policy {
			t.Errorf("round trip of %v gave %v, %v", policy, parsed, err)
		}
	}
	if parsed, err := ParseLineSpacingPolicy(""); err != nil || parsed != LineSpacingLastGlyph {
		t.Errorf("empty name gave %v, %v", parsed, err)
	}
	if _, err := ParseLineSpacingPolicy("double"); err == nil {
		t.Error("unknown policy accepted")
	}
}
