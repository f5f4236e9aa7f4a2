//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"firegrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type heatFieldProvider interface {
	HeatMask() []float32
}

type oxygenFieldProvider interface {
	OxygenMask() []float32
}

type chunkRectProvider interface {
	ActiveChunkRects() [][4]int
}

// Overlay draws optional debugging visuals on top of the base simulation:
// a heat field, an oxygen field and the outlines of active chunks.
type Overlay struct {
	sim   core.Sim
	scale int

	showHeat   bool
	showOxygen bool
	showChunks bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay bound to the simulation view.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showOxygen = !o.showOxygen
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showChunks = !o.showChunks
	}
}

// Draw renders the enabled layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showHeat {
		if provider, ok := o.sim.(heatFieldProvider); ok {
			o.drawMask(screen, provider.HeatMask(), size, scale, color.RGBA{R: 255, G: 90, B: 30, A: 0})
		}
	}
	if o.showOxygen {
		if provider, ok := o.sim.(oxygenFieldProvider); ok {
			o.drawMask(screen, provider.OxygenMask(), size, scale, color.RGBA{R: 60, G: 140, B: 230, A: 0})
		}
	}
	if o.showChunks {
		if provider, ok := o.sim.(chunkRectProvider); ok {
			o.drawChunkRects(screen, provider.ActiveChunkRects(), scale)
		}
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, size core.Size, scale int, tint color.RGBA) {
	total := size.W * size.H
	if len(mask) != total || total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	const maxAlpha = 150.0
	for i := 0; i < total; i++ {
		base := i * 4
		intensity := float64(mask[i])
		if intensity <= 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		if intensity > 1 {
			intensity = 1
		}
		o.maskBuf[base+0] = tint.R
		o.maskBuf[base+1] = tint.G
		o.maskBuf[base+2] = tint.B
		o.maskBuf[base+3] = uint8(math.Round(maxAlpha * math.Sqrt(intensity)))
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawChunkRects(screen *ebiten.Image, rects [][4]int, scale int) {
	col := color.RGBA{R: 90, G: 220, B: 120, A: 180}
	for _, r := range rects {
		x := float64(r[0] * scale)
		y := float64(r[1] * scale)
		w := float64(r[2] * scale)
		h := float64(r[3] * scale)
		o.drawSegment(screen, x, y, w, 1, col)
		o.drawSegment(screen, x, y+h-1, w, 1, col)
		o.drawSegment(screen, x, y, 1, h, col)
		o.drawSegment(screen, x+w-1, y, 1, h, col)
	}
}

func (o *Overlay) drawSegment(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
