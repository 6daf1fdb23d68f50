// Package fontsrc implements the Font Data Source: it enumerates the
// glyphs of an sfnt font (ttf/otf), exposing per glyph an identifying
// code and a symbolic name, and exports each glyph's outline into a
// standalone SVG file on request.
package fontsrc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/vintern/iconize/entity"
)

const sourceTypeId = "font"

// RuneRange is an inclusive range of codepoints to enumerate.
type RuneRange struct {
	Lo, Hi rune
}

// DefaultRuneRanges covers the private-use areas where icon fonts place
// their glyphs, plus supplementary plane 15 used by larger sets.
var DefaultRuneRanges = []RuneRange{
	{0x2000, 0x2BFF},
	{0xE000, 0xF8FF},
	{0xF0000, 0xFFFFD},
}

type SourceFactory struct {
}

func NewSourceFactory() entity.SourceFactory {
	return &SourceFactory{}
}

func (sf *SourceFactory) SourceId() string {
	return sourceTypeId
}

func (sf *SourceFactory) NewSource(ctx context.Context, c entity.Config) (entity.Source, error) {
	return NewSource(c, DefaultRuneRanges)
}

func (sf *SourceFactory) Close() error {
	return nil
}

type source struct {
	c      entity.Config
	font   *sfnt.Font
	ranges []RuneRange
}

// NewSource parses the font at c.Path. The rune ranges limit which
// codepoints are probed for glyphs.
func NewSource(c entity.Config, ranges []RuneRange) (*source, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read font file %s: %v", c.Path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse font file %s: %v", c.Path, err)
	}
	return &source{c: c, font: f, ranges: ranges}, nil
}

// ExtractTable returns one partial record per mapped glyph, holding the
// code (lowercase hex of the codepoint), the glyph's symbolic name and
// its glyph index. The notdef glyph (index 0) is never emitted.
func (s *source) ExtractTable(ctx context.Context) (entity.Table, error) {

	var buf sfnt.Buffer
	table := make(entity.Table)

	err := s.walkGlyphs(&buf, func(r rune, gi sfnt.GlyphIndex) error {
		name, err := s.font.GlyphName(&buf, gi)
		if err != nil {
			return fmt.Errorf("could not get glyph name for %U: %v", r, err)
		}
		code := codeFor(r)
		table[code] = entity.Record{
			entity.FieldCode:      string(code),
			entity.FieldGlyphName: name,
			entity.FieldGlyph:     int(gi),
		}
		return nil
	})
	return table, err
}

// ExportGlyphs renders each glyph's outline into dir/<n>.svg, with n a
// 1-based sequential index, and returns a table mapping each code to its
// svgfile path. Outline quality is whatever the font provides; there is
// no hinting or rendering involved.
func (s *source) ExportGlyphs(ctx context.Context, dir string) (entity.Table, error) {

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create svg export dir %s: %v", dir, err)
	}

	var buf sfnt.Buffer
	upem := int(s.font.UnitsPerEm())
	ppem := fixed.I(upem)

	metrics, err := s.font.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("could not get font metrics: %v", err)
	}
	ascent := fixedToFloat(metrics.Ascent)

	table := make(entity.Table)
	index := 0
	err = s.walkGlyphs(&buf, func(r rune, gi sfnt.GlyphIndex) error {
		segments, err := s.font.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil {
			return fmt.Errorf("could not load glyph %U: %v", r, err)
		}
		index++
		svgfile := filepath.Join(dir, fmt.Sprintf("%d.svg", index))
		data := svgDocument(pathData(segments, ascent), upem)
		if err := os.WriteFile(svgfile, []byte(data), 0644); err != nil {
			return fmt.Errorf("could not write %s: %v", svgfile, err)
		}
		table[codeFor(r)] = entity.Record{entity.FieldSvgFile: svgfile}
		return nil
	})
	return table, err
}

// walkGlyphs calls visit for every codepoint in the configured ranges
// that maps to a non-notdef glyph.
func (s *source) walkGlyphs(buf *sfnt.Buffer, visit func(rune, sfnt.GlyphIndex) error) error {
	for _, rr := range s.ranges {
		for r := rr.Lo; r <= rr.Hi; r++ {
			gi, err := s.font.GlyphIndex(buf, r)
			if err != nil || gi == 0 {
				continue
			}
			if err := visit(r, gi); err != nil {
				return err
			}
		}
	}
	return nil
}

func codeFor(r rune) entity.Code {
	return entity.Code(fmt.Sprintf("%x", r))
}

// pathData serializes glyph outline segments into an SVG path "d"
// string. Glyph coordinates have the baseline at y=0 with negative y
// above it, so y is shifted down by the ascent to land in the viewBox.
func pathData(segments sfnt.Segments, ascent float64) string {

	var b strings.Builder
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			fmt.Fprintf(&b, "M%s %s", coord(seg.Args[0].X), coordY(seg.Args[0].Y, ascent))
		case sfnt.SegmentOpLineTo:
			fmt.Fprintf(&b, "L%s %s", coord(seg.Args[0].X), coordY(seg.Args[0].Y, ascent))
		case sfnt.SegmentOpQuadTo:
			fmt.Fprintf(&b, "Q%s %s %s %s",
				coord(seg.Args[0].X), coordY(seg.Args[0].Y, ascent),
				coord(seg.Args[1].X), coordY(seg.Args[1].Y, ascent))
		case sfnt.SegmentOpCubeTo:
			fmt.Fprintf(&b, "C%s %s %s %s %s %s",
				coord(seg.Args[0].X), coordY(seg.Args[0].Y, ascent),
				coord(seg.Args[1].X), coordY(seg.Args[1].Y, ascent),
				coord(seg.Args[2].X), coordY(seg.Args[2].Y, ascent))
		}
	}
	if b.Len() > 0 {
		b.WriteString("Z")
	}
	return b.String()
}

func svgDocument(d string, upem int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, upem, upem)
	if d != "" {
		fmt.Fprintf(&b, `<path d="%s"/>`, d)
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func coord(v fixed.Int26_6) string {
	return trimFloat(fixedToFloat(v))
}

func coordY(v fixed.Int26_6, ascent float64) string {
	return trimFloat(fixedToFloat(v) + ascent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
