package scene

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Vvkmnn/vvkmnn.github.io/internal/geom"
	"github.com/Vvkmnn/vvkmnn.github.io/internal/particles"
)

// whiteImage feeds DrawTriangles. The center pixel is used as the source so
// sampling never bleeds past the texture edge.
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// viewTilt pitches the stage slightly so depth reads on screen.
const viewTilt = 0.25

func (w *World) Draw(screen *ebiten.Image) {
	w.drawBackground(screen)
	w.drawParticles(screen)
	w.drawFills(screen)
	w.drawStrands(screen)

	ebitenutil.DebugPrintAt(screen, w.writer.Line(), 12, 12)
	if w.hud {
		w.drawHUD(screen)
	}
}

// drawBackground paints the animated two-color gradient as horizontal
// scanlines with a slow vertical shimmer.
func (w *World) drawBackground(screen *ebiten.Image) {
	top, bottom := w.grad.Colors()
	t := w.uptime.Seconds()
	for y := 0; y < w.height; y++ {
		ratio := float64(y) / float64(w.height)
		ratio = clamp01(ratio + 0.04*math.Sin(t*0.5+ratio*math.Pi))
		c := top.BlendRgb(bottom, ratio)
		r, g, b := c.RGB255()
		ebitenutil.DrawLine(screen, 0, float64(y), float64(w.width), float64(y),
			color.RGBA{R: r, G: g, B: b, A: 255})
	}
}

func (w *World) drawParticles(screen *ebiten.Image) {
	alpha := w.parts.Opacity()
	if alpha <= 0 {
		return
	}
	lw := float32(w.parts.LinkWidth())
	if lw <= 0 {
		lw = 1
	}
	ps := w.parts.Particles()
	for _, l := range w.parts.Links() {
		a, b := ps[l.A], ps[l.B]
		la := alpha * l.Strength * 0.6
		c := color.RGBA{
			R: uint8(160 * la),
			G: uint8(180 * la),
			B: uint8(210 * la),
			A: uint8(255 * la),
		}
		vector.StrokeLine(screen, float32(a.Pos.X), float32(a.Pos.Y),
			float32(b.Pos.X), float32(b.Pos.Y), lw, c, false)
	}
	shape := w.parts.Shape()
	var vs []ebiten.Vertex
	var is []uint16
	for _, p := range ps {
		r, g, b := hsvToRgb(w.parts.Hue()+p.Hue, 0.5, 0.95)
		c := color.RGBA{
			R: uint8(float64(r) * alpha),
			G: uint8(float64(g) * alpha),
			B: uint8(float64(b) * alpha),
			A: uint8(255 * alpha),
		}
		x, y, size := float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size)
		switch shape {
		case particles.ShapeEdge:
			vector.DrawFilledRect(screen, x-size, y-size, 2*size, 2*size, c, false)
		case particles.ShapeTriangle:
			base := uint16(len(vs))
			vs = append(vs,
				dotVertex(x, y-size, c),
				dotVertex(x+0.866*size, y+size/2, c),
				dotVertex(x-0.866*size, y+size/2, c),
			)
			is = append(is, base, base+1, base+2)
		default:
			vector.DrawFilledCircle(screen, x, y, size, c, false)
		}
	}
	if len(is) > 0 {
		op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
		screen.DrawTriangles(vs, is, whiteSubImage, op)
	}
}

// dotVertex is a solid-color vertex sampling the white pixel.
func dotVertex(x, y float32, c color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   x,
		DstY:   y,
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	}
}

// drawFills shades the patches between neighbouring strands as triangle
// strips. Patch visibility trails the slower of its two strands, so fills
// never outrun the lines that bound them.
func (w *World) drawFills(screen *ebiten.Image) {
	fills := w.anim.FillCount()
	alpha := float32(clamp01(w.cfg.Ribbon.FillOpacity))
	if fills == 0 || alpha <= 0 {
		return
	}
	rot := w.anim.Rotation()

	var vs []ebiten.Vertex
	var is []uint16
	for j := 0; j < fills; j++ {
		ai, bi := w.anim.FillBounds(j)
		a := w.anim.StrandPositions(ai)
		b := w.anim.StrandPositions(bi)
		ca := w.strandColors[ai%len(w.strandColors)]
		cb := w.strandColors[bi%len(w.strandColors)]
		visible := w.anim.FillVisible(j)
		if visible > len(a) {
			visible = len(a)
		}
		for k := 0; k+1 < visible; k++ {
			a0, ok1 := w.project(a[k], rot)
			b0, ok2 := w.project(b[k], rot)
			a1, ok3 := w.project(a[k+1], rot)
			b1, ok4 := w.project(b[k+1], rot)
			if !ok1 || !ok2 || !ok3 || !ok4 {
				continue
			}
			base := uint16(len(vs))
			vs = append(vs,
				fillVertex(a0, ca, alpha),
				fillVertex(b0, cb, alpha),
				fillVertex(a1, ca, alpha),
				fillVertex(b1, cb, alpha),
			)
			is = append(is, base, base+1, base+2, base+1, base+3, base+2)
		}
	}
	if len(is) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}

func fillVertex(p geom.Vec2, c colorful.Color, alpha float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: alpha,
	}
}

func (w *World) drawStrands(screen *ebiten.Image) {
	rot := w.anim.Rotation()
	lw := float32(w.cfg.Ribbon.LineWidth)
	if lw <= 0 {
		lw = 1
	}
	for i := 0; i < w.anim.StrandCount(); i++ {
		pts := w.anim.StrandPositions(i)
		visible := w.anim.StrandVisible(i)
		if visible > len(pts) {
			visible = len(pts)
		}
		col := w.strandColor(i)
		prev, prevOK := w.project(pts[0], rot)
		for j := 1; j < visible; j++ {
			cur, curOK := w.project(pts[j], rot)
			if prevOK && curOK {
				vector.StrokeLine(screen, float32(prev.X), float32(prev.Y),
					float32(cur.X), float32(cur.Y), lw, col, true)
			}
			prev, prevOK = cur, curOK
		}
	}
}

// project rotates a stage point by the current group rotation and the fixed
// tilt, then maps it to screen space. ok is false behind the camera.
func (w *World) project(p geom.Vec3, rot float64) (geom.Vec2, bool) {
	return w.cam.Project(p.RotateY(rot).RotateX(viewTilt))
}

func (w *World) strandColor(i int) color.RGBA {
	c := w.strandColors[i%len(w.strandColors)]
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func (w *World) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("fps %5.1f", w.ring.fps(60)),
		fmt.Sprintf("phase %v  curve %v", w.anim.Phase(), w.anim.CurrentKind()),
		fmt.Sprintf("uptime %s  strands %d  palette %d",
			formatDuration(w.uptime), w.anim.StrandCount(), w.grad.PaletteIndex()),
	}
	y := w.height - 16*len(lines) - 8
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 12, y+16*i)
	}
}
