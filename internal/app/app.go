//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"firegrid/internal/fire"
	"firegrid/internal/render"
	"firegrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the fire engine to the ebiten.Game interface. Painting tools:
// left mouse ignites, right mouse pours water, and holding W or O while
// clicking places wood or oil instead. Number keys toggle debug overlays.
type Game struct {
	eng     *fire.Engine
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	palette  []color.RGBA
	scale    int
	hudWidth int

	paused   bool
	tickOnce bool
	seed     int64
	last     time.Time
}

// New constructs a Game for the provided engine.
func New(eng *fire.Engine, scale int, seed int64, hudWidth int) *Game {
	size := eng.Size()
	pal := fire.Palette()
	palette := make([]color.RGBA, len(pal))
	for i, c := range pal {
		palette[i] = color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	return &Game{
		eng:      eng,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(eng, scale),
		hud:      ui.NewHUD(eng, hudWidth),
		palette:  palette,
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
}

// Reset reinitializes the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.eng.Reset(seed)
	g.tickOnce = false
}

// Update handles input and advances the simulation by the elapsed wall time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.handlePainting()
	g.overlay.Update()
	g.hud.Update(g.eng.Size().W * g.scale)

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	elapsed := now.Sub(g.last)
	g.last = now

	switch {
	case !g.paused:
		g.eng.Advance(elapsed)
	case g.tickOnce:
		g.eng.Step()
		g.tickOnce = false
	}

	stats := g.eng.Stats()
	g.hud.SetStatus([]string{
		fmt.Sprintf("tick %d", stats.Tick),
		fmt.Sprintf("burning %d", stats.BurningCells),
		fmt.Sprintf("chunks %d/%d", stats.ActiveChunks, stats.AllocatedChunks),
		fmt.Sprintf("cost %d (%d steps)", stats.FrameCost, stats.StepsLastFrame),
		fmt.Sprintf("budget %d", stats.BudgetRemaining),
	})
	return nil
}

func (g *Game) handlePainting() {
	mx, my := ebiten.CursorPosition()
	x := mx / g.scale
	y := my / g.scale
	size := g.eng.Size()
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		switch {
		case ebiten.IsKeyPressed(ebiten.KeyW):
			g.eng.IgniteCircle(x, y, 3, fire.MatWood, 0)
		case ebiten.IsKeyPressed(ebiten.KeyO):
			g.eng.AddLiquidCircle(x, y, 3, fire.MatOil, 1)
		default:
			g.eng.IgniteCircle(x, y, 3, fire.MatNone, 500)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		g.eng.AddLiquidCircle(x, y, 4, fire.MatWater, 1)
	}
}

// Draw renders the current simulation state plus overlays and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.eng.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.eng.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size including the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.eng.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
