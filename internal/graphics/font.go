package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph describes a single character's placement and metrics within the atlas
type Glyph struct {
	// Pixel coordinates of the glyph in the atlas image (top-left origin)
	AtlasX float32
	AtlasY float32
	Width  float32
	Height float32
	// Offset from the pen position on the baseline
	BearingX float32
	BearingY float32
	Advance  int
}

// Atlas is a single-channel glyph sheet for the printable ASCII range
type Atlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	LineHeight int
}

const atlasWidth = 512

// DefaultFont returns the Go Mono TrueType font
func DefaultFont() []byte {
	return gomono.TTF
}

// BuildAtlas parses a TrueType/OpenType font and bakes the printable ASCII
// glyphs into an atlas at the given pixel size.
func BuildAtlas(fontData []byte, pixels int) (*Atlas, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(pixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	const padding = 1
	type placed struct {
		r     rune
		dr    image.Rectangle
		mask  image.Image
		maskp image.Point
		adv   fixed.Int26_6
	}

	// First pass: pack rows to size the atlas
	var glyphs []placed
	offsetX, offsetY, rowHeight := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, placed{r, dr, mask, maskp, advance})
		if dr.Dx() == 0 || dr.Dy() == 0 {
			continue
		}
		if offsetX+dr.Dx() > atlasWidth {
			offsetX = 0
			offsetY += rowHeight + padding
			rowHeight = 0
		}
		offsetX += dr.Dx() + padding
		rowHeight = max(rowHeight, dr.Dy())
	}
	height := nextPow2(offsetY + rowHeight)

	atlas := &Atlas{
		Image:      image.NewAlpha(image.Rect(0, 0, atlasWidth, height)),
		Glyphs:     make(map[rune]Glyph, len(glyphs)),
		LineHeight: face.Metrics().Height.Ceil(),
	}

	// Second pass: render each glyph and record metrics
	offsetX, offsetY, rowHeight = 0, 0, 0
	for _, g := range glyphs {
		gw, gh := g.dr.Dx(), g.dr.Dy()
		advance := int(math.Round(float64(g.adv) / 64.0))
		if gw == 0 || gh == 0 {
			// Space or non-drawable glyph; still record advance
			atlas.Glyphs[g.r] = Glyph{Advance: advance}
			continue
		}
		if offsetX+gw > atlasWidth {
			offsetX = 0
			offsetY += rowHeight + padding
			rowHeight = 0
		}

		dst := image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh)
		draw.Draw(atlas.Image, dst, g.mask, g.maskp, draw.Src)

		atlas.Glyphs[g.r] = Glyph{
			AtlasX:   float32(offsetX),
			AtlasY:   float32(offsetY),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  advance,
		}
		offsetX += gw + padding
		rowHeight = max(rowHeight, gh)
	}
	return atlas, nil
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Measure returns the width and tallest glyph height of text at the given scale
func (a *Atlas) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		width += float32(g.Advance) * scale
		height = max(height, g.Height*scale)
	}
	return width, height
}

// Vertices lays out text with its baseline starting at (x, y) in a top-left
// origin pixel space. Each glyph yields two triangles of (x, y, u, v).
// Runes missing from the atlas advance like a space.
func (a *Atlas) Vertices(text string, x, y, scale float32) []float32 {
	w := float32(a.Image.Rect.Dx())
	h := float32(a.Image.Rect.Dy())

	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		g, ok := a.Glyphs[r]
		if !ok {
			x += float32(a.Glyphs[' '].Advance) * scale
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			x0 := x + g.BearingX*scale
			y0 := y - g.BearingY*scale
			x1 := x0 + g.Width*scale
			y1 := y0 + g.Height*scale
			u0, v0 := g.AtlasX/w, g.AtlasY/h
			u1, v1 := (g.AtlasX+g.Width)/w, (g.AtlasY+g.Height)/h

			vertices = append(vertices,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += float32(g.Advance) * scale
	}
	return vertices
}
