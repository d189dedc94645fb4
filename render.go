package tinsel

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Frame ---

// billboard is one screen-space particle quad, tone-mapped and ready for
// submission. Particles render additively, so billboard order is
// irrelevant; only cards need depth sorting.
type billboard struct {
	x, y    float64 // screen center
	size    float64 // screen pixels, quad edge
	r, g, b float32 // tone-mapped, premultiplied by alpha
	a       float32
}

// cardQuad is one photo card ready for drawing, in screen space.
type cardQuad struct {
	card  *PhotoCard
	x, y  float64
	size  float64 // screen pixels at scale 1×1
	depth float64
}

// Frame is one composed frame: everything the renderer needs, already
// projected. The composer owns and reuses it; Compose rebuilds it in place.
type Frame struct {
	billboards []billboard
	cards      []cardQuad
	dim        float64 // background de-emphasis, 0 (none) to 1 (black)
}

// snowColor and dustColor tint the ambient systems.
var (
	snowColor = Color{0.92, 0.95, 1.0, 0.8}
	dustColor = Color{1.0, 0.85, 0.5, 0.7}
)

const activeDimAmount = 0.45
const dimSmoothRate = 6.0

// Compose projects the current scene into c's reusable Frame: the particle
// field (rotated by the morph engine's accumulator and scaled by the
// breathing factor), snow, dust, and visible photo cards. Read-only over
// every entity; the morph tick has always completed before this runs, so a
// frame never sees a torn position buffer.
func (c *Composer) Compose() *Frame {
	f := &c.frame
	f.billboards = f.billboards[:0]
	f.cards = f.cards[:0]

	rotation := c.engine.Rotation()
	breathe := c.engine.BreathingScale()

	field := c.engine.Field()
	for i := 0; i < field.Count; i++ {
		world := field.CurrentAt(i).Scale(breathe).RotatedY(rotation)
		sx, sy, depth, ok := c.camera.Project(world)
		if !ok {
			continue
		}
		col := field.ColorAt(i)
		f.billboards = append(f.billboards, billboard{
			x: sx, y: sy,
			size: c.camera.ProjectedSize(field.Sizes[i], depth),
			r:    float32(toneMap(col.R)),
			g:    float32(toneMap(col.G)),
			b:    float32(toneMap(col.B)),
			a:    1,
		})
	}

	flakes := c.snow.Flakes()
	for i := range flakes {
		c.appendAmbient(f, flakes[i].Pos, flakes[i].Size, snowColor, 1)
	}
	motes := c.dust.Motes()
	for i := range motes {
		if a := motes[i].Alpha(); a > 0 {
			c.appendAmbient(f, motes[i].Pos, motes[i].Size, dustColor, a)
		}
	}

	for _, card := range c.cards.Cards() {
		if card.CurrentScale <= 0.001 {
			continue
		}
		sx, sy, depth, ok := c.cardScreenPos(card)
		if !ok {
			continue
		}
		f.cards = append(f.cards, cardQuad{
			card:  card,
			x:     sx,
			y:     sy,
			size:  c.camera.ProjectedSize(card.EffectiveScale(), depth),
			depth: depth,
		})
	}
	// Cards are opaque quads: painter order, far to near.
	sort.Slice(f.cards, func(i, j int) bool { return f.cards[i].depth > f.cards[j].depth })

	return f
}

func (c *Composer) appendAmbient(f *Frame, pos Vec3, size float64, col Color, alpha float64) {
	sx, sy, depth, ok := c.camera.Project(pos)
	if !ok {
		return
	}
	a := float32(col.A * alpha)
	f.billboards = append(f.billboards, billboard{
		x: sx, y: sy,
		size: c.camera.ProjectedSize(size, depth),
		r:    float32(col.R) * a,
		g:    float32(col.G) * a,
		b:    float32(col.B) * a,
		a:    a,
	})
}

// --- Renderer ---

// maxBatchQuads keeps each DrawTriangles call under the uint16 index limit.
const maxBatchQuads = 16000

// Renderer draws composed frames to an ebiten image. It is the only part of
// the engine that touches the GPU; everything upstream is plain math, so it
// can run headlessly.
type Renderer struct {
	dot      *ebiten.Image // 1x1 white pixel for solid billboards
	vertices []ebiten.Vertex
	indices  []uint16
	textures map[string]cardTexture
}

type cardTexture struct {
	src image.Image
	tex *ebiten.Image
}

// NewRenderer creates a renderer. GPU resources are allocated lazily on the
// first Draw.
func NewRenderer() *Renderer {
	return &Renderer{textures: make(map[string]cardTexture)}
}

// Draw updates the camera viewport, composes a frame, and draws it:
// additive particle billboards, then depth-sorted photo cards with the
// background dim sandwiched under the active card.
func (r *Renderer) Draw(screen *ebiten.Image, c *Composer) {
	if r.dot == nil {
		r.dot = ebiten.NewImage(1, 1)
		r.dot.Fill(color.White)
	}
	b := screen.Bounds()
	c.camera.SetViewport(b.Dx(), b.Dy())

	frame := c.Compose()
	r.drawBillboards(screen, frame.billboards)

	activeID := c.store.ActiveID()
	for _, q := range frame.cards {
		if q.card.ID == activeID {
			continue
		}
		r.drawCard(screen, q)
	}

	if frame.dim > 0.004 {
		r.drawDim(screen, frame.dim)
	}
	for _, q := range frame.cards {
		if q.card.ID == activeID {
			r.drawCard(screen, q)
		}
	}
}

// drawBillboards batches quads into DrawTriangles calls with additive
// blending. Additive compositing is order-independent, so billboards skip
// depth sorting entirely.
func (r *Renderer) drawBillboards(screen *ebiten.Image, bbs []billboard) {
	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	quads := 0
	flush := func() {
		if quads == 0 {
			return
		}
		screen.DrawTriangles(r.vertices, r.indices, r.dot, op)
		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
		quads = 0
	}

	for i := range bbs {
		bb := &bbs[i]
		half := float32(bb.size / 2)
		if half < 0.5 {
			half = 0.5
		}
		cx, cy := float32(bb.x), float32(bb.y)

		base := uint16(len(r.vertices))
		for k := 0; k < 4; k++ {
			dx := half
			dy := half
			if k == 0 || k == 3 {
				dx = -half
			}
			if k < 2 {
				dy = -half
			}
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX: cx + dx, DstY: cy + dy,
				SrcX: 0.5, SrcY: 0.5,
				ColorR: bb.r, ColorG: bb.g, ColorB: bb.b, ColorA: bb.a,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2, base, base+2, base+3)
		quads++
		if quads >= maxBatchQuads {
			flush()
		}
	}
	flush()
}

// drawCard draws one photo card quad, approximating 3D tilt with a squash
// and a slight roll. Cards without a loaded texture render as a dim
// placeholder panel.
func (r *Renderer) drawCard(screen *ebiten.Image, q cardQuad) {
	tiltX, tiltY := q.card.Tilt()

	img := r.cardImage(q.card)
	var w, h float64
	if img != nil {
		ib := img.Bounds()
		w, h = float64(ib.Dx()), float64(ib.Dy())
	} else {
		img = r.dot
		w, h = 1, 1
	}

	// Fit the longer image edge to the card size, preserving aspect.
	fit := q.size / math.Max(w, h)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(fit*math.Cos(tiltY), fit*math.Cos(tiltX))
	op.GeoM.Rotate((tiltY - tiltX) * 0.15)
	op.GeoM.Translate(q.x, q.y)
	op.Filter = ebiten.FilterLinear
	if q.card.Image == nil {
		op.ColorScale.Scale(0.25, 0.28, 0.34, 0.9)
	}
	screen.DrawImage(img, op)
}

// cardImage returns the GPU texture for a card, uploading the decoded image
// on first use and re-uploading if the card's image was replaced.
func (r *Renderer) cardImage(card *PhotoCard) *ebiten.Image {
	if card.Image == nil {
		return nil
	}
	if ct, ok := r.textures[card.ID]; ok && ct.src == card.Image {
		return ct.tex
	}
	tex := ebiten.NewImageFromImage(card.Image)
	r.textures[card.ID] = cardTexture{src: card.Image, tex: tex}
	return tex
}

// drawDim darkens everything drawn so far, de-emphasizing the background
// under the active card.
func (r *Renderer) drawDim(screen *ebiten.Image, amount float64) {
	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.Scale(0, 0, 0, float32(amount))
	screen.DrawImage(r.dot, op)
}
