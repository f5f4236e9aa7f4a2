package fire

import "testing"

func TestDisplayEncoding(t *testing.T) {
	e := New(quietConfig(64, 64), nil)
	x, y := 16, 16
	wood := e.Materials().Get(MatWood)
	e.Grid().Apply(x, y, Patch().
		WithMaterial(MatWood).
		WithFuel(wood.FuelCapacity).
		WithDensity(wood.Density))
	e.IgniteCircle(x, y, 1, MatNone, 500)
	e.Step()

	v := e.Cells()[y*64+x]
	if v&displayMatMask != uint8(MatWood) {
		t.Fatalf("material nibble: got %#x", v)
	}
	if v&displayBurnBit == 0 {
		t.Fatalf("burn bit missing: got %#x", v)
	}
	if v&displayHotBit == 0 {
		t.Fatalf("hot bit missing: got %#x", v)
	}

	// Untouched space renders as cold unburnt air.
	if got := e.Cells()[0]; got != 0 {
		t.Fatalf("ambient cell: got %#x", got)
	}
}

func TestDisplayMasks(t *testing.T) {
	e := New(quietConfig(32, 32), nil)
	e.Grid().Apply(4, 4, Patch().WithTemp(520).WithOxygen(0.25))
	e.Step()

	heat := e.HeatMask()
	if len(heat) != 32*32 {
		t.Fatalf("heat mask size: %d", len(heat))
	}
	if h := heat[4*32+4]; h < 0.4 || h > 0.6 {
		t.Fatalf("heat mask value: %v", h)
	}
	oxy := e.OxygenMask()
	if o := oxy[4*32+4]; o < 0.2 || o > 0.4 {
		t.Fatalf("oxygen mask value: %v", o)
	}
	if o := oxy[0]; o != 1 {
		t.Fatalf("ambient oxygen: %v", o)
	}
}

func TestActiveChunkRectsClipToWorld(t *testing.T) {
	// 40x40 world spans a 2x2 chunk grid with 8-cell remainders.
	e := New(quietConfig(40, 40), nil)
	e.AddHeatCircle(36, 36, 2, 400)

	rects := e.ActiveChunkRects()
	if len(rects) == 0 {
		t.Fatal("no active rects")
	}
	for _, r := range rects {
		if r[0]+r[2] > 40 || r[1]+r[3] > 40 {
			t.Fatalf("rect not clipped: %v", r)
		}
	}
}

func TestPaletteCoversEveryDisplayState(t *testing.T) {
	pal := Palette()
	if len(pal) != displayStates {
		t.Fatalf("palette size: %d", len(pal))
	}
	for v, c := range pal {
		if c[3] != 255 {
			t.Fatalf("state %#x not opaque: %v", v, c)
		}
	}
	plain := pal[int(MatWood)]
	burning := pal[int(MatWood)|displayBurnBit]
	if plain == burning {
		t.Fatal("burning wood renders identically to plain wood")
	}
}
