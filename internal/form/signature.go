package form

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
	"inspection-report/internal/dataurl"
)

const (
	DefaultPadWidth  = 400
	DefaultPadHeight = 140

	strokeWidth = 2
	dotRadius   = 1.2
)

var strokeColor = color.RGBA{R: 0x1E, G: 0x40, B: 0xAF, A: 0xFF}

type Point struct {
	X, Y float32
}

// SignaturePad is a freehand capture surface. A stroke runs from Begin
// through any number of Move calls to End, which snapshots the canvas as a
// PNG data URL.
type SignaturePad struct {
	canvas   *image.RGBA
	drawing  bool
	last     Point
	artifact string
}

func NewSignaturePad(width, height int) *SignaturePad {
	return &SignaturePad{canvas: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (p *SignaturePad) Begin(at Point) {
	p.drawing = true
	p.last = at
	p.fill(circle(at, dotRadius))
}

func (p *SignaturePad) Move(to Point) {
	if !p.drawing {
		return
	}
	p.segment(p.last, to)
	p.last = to
}

// End finishes the stroke and returns the stored artifact.
func (p *SignaturePad) End() (string, error) {
	if !p.drawing {
		return p.artifact, nil
	}
	p.drawing = false

	var out bytes.Buffer
	if err := png.Encode(&out, p.canvas); err != nil {
		return "", fmt.Errorf("failed to encode signature: %w", err)
	}
	p.artifact = dataurl.Encode("image/png", out.Bytes())
	return p.artifact, nil
}

// Clear erases the canvas and the stored artifact.
func (p *SignaturePad) Clear() {
	draw.Draw(p.canvas, p.canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	p.drawing = false
	p.artifact = ""
}

func (p *SignaturePad) Artifact() string {
	return p.artifact
}

// ShowPlaceholder is true until something has been drawn.
func (p *SignaturePad) ShowPlaceholder() bool {
	return p.artifact == "" && !p.drawing
}

func (p *SignaturePad) canvasImage() image.Image {
	return p.canvas
}

// segment draws a round-capped line of strokeWidth.
func (p *SignaturePad) segment(a, b Point) {
	half := float32(strokeWidth) / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length > 0 {
		nx, ny := -dy/length*half, dx/length*half
		p.fill([]Point{
			{a.X + nx, a.Y + ny},
			{b.X + nx, b.Y + ny},
			{b.X - nx, b.Y - ny},
			{a.X - nx, a.Y - ny},
		})
	}
	p.fill(circle(a, half))
	p.fill(circle(b, half))
}

// fill rasterises one closed polygon onto the canvas. Shapes are drawn one at
// a time so overlapping outlines never cancel each other out.
func (p *SignaturePad) fill(poly []Point) {
	if len(poly) < 3 {
		return
	}
	b := p.canvas.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(poly[0].X, poly[0].Y)
	for _, pt := range poly[1:] {
		z.LineTo(pt.X, pt.Y)
	}
	z.ClosePath()
	z.Draw(p.canvas, b, image.NewUniform(strokeColor), image.Point{})
}

func circle(c Point, r float32) []Point {
	const n = 16
	pts := make([]Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / n
		pts[i] = Point{c.X + r*float32(math.Cos(a)), c.Y + r*float32(math.Sin(a))}
	}
	return pts
}

type SignatureMode string

const (
	ModeDraw  SignatureMode = "draw"
	ModeStamp SignatureMode = "stamp"
)

// Signer is one signature slot. Switching modes keeps both artifacts.
type Signer struct {
	mode  SignatureMode
	Pad   *SignaturePad
	stamp string
}

func NewSigner() *Signer {
	return &Signer{mode: ModeDraw, Pad: NewSignaturePad(DefaultPadWidth, DefaultPadHeight)}
}

func (s *Signer) Mode() SignatureMode {
	return s.mode
}

func (s *Signer) SetMode(m SignatureMode) error {
	if m != ModeDraw && m != ModeStamp {
		return fmt.Errorf("unknown signature mode %q", m)
	}
	s.mode = m
	return nil
}

// LoadStamp decodes an uploaded seal image and keeps it as the stamp.
func (s *Signer) LoadStamp(raw []byte) error {
	data, err := encodeStamp(raw)
	if err != nil {
		return err
	}
	s.stamp = data
	return nil
}

// SetStamp stores an already-encoded stamp data URL.
func (s *Signer) SetStamp(data string) {
	s.stamp = data
}

func (s *Signer) Stamp() string {
	return s.stamp
}

// Effective returns the artifact of the current mode, or "".
func (s *Signer) Effective() string {
	if s.mode == ModeStamp {
		return s.stamp
	}
	return s.Pad.Artifact()
}
