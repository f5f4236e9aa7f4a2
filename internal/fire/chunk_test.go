package fire

import "testing"

func TestCellIndexIsColumnMajor(t *testing.T) {
	if cellIndex(0, 0) != 0 {
		t.Fatal("origin index")
	}
	// Vertical neighbors must be adjacent in memory.
	if cellIndex(3, 5)+1 != cellIndex(3, 6) {
		t.Fatal("column not contiguous")
	}
	if cellIndex(1, 0) != ChunkSize {
		t.Fatalf("column stride: got %d", cellIndex(1, 0))
	}

	seen := make([]bool, chunkCells)
	for lx := 0; lx < ChunkSize; lx++ {
		for ly := 0; ly < ChunkSize; ly++ {
			i := cellIndex(lx, ly)
			if i < 0 || i >= chunkCells || seen[i] {
				t.Fatalf("index collision at (%d,%d)", lx, ly)
			}
			seen[i] = true
		}
	}
}

func TestNewChunkStartsAmbient(t *testing.T) {
	c := newChunk(0, 0, 0.1, 20)
	for i := 0; i < chunkCells; i++ {
		cell := c.cell(i)
		if cell.Material != MatAir || cell.Temp != 20 || cell.Oxygen != 1 {
			t.Fatalf("cell %d: %+v", i, cell)
		}
		if cell.Burning || cell.Fuel != 0 || cell.Wetness != 0 {
			t.Fatalf("cell %d not empty: %+v", i, cell)
		}
	}
	if c.active {
		t.Fatal("fresh chunk should be dormant")
	}
}

func TestChunkCellRoundTrip(t *testing.T) {
	c := newChunk(0, 0, 0.1, 20)
	want := Cell{
		Material: MatOil,
		Temp:     310,
		Fuel:     42,
		Wetness:  0.5,
		Oxygen:   0.7,
		Density:  0.85,
		Burning:  true,
	}
	c.setCell(cellIndex(4, 9), want)
	if got := c.cell(cellIndex(4, 9)); got != want {
		t.Fatalf("round trip: got %+v", got)
	}
}

func TestChunkBufferSwap(t *testing.T) {
	c := newChunk(0, 0, 0.1, 20)
	i := cellIndex(2, 2)
	c.temp[i] = 300
	c.oxy[i] = 0.4

	c.seedBuffers()
	c.tempNext[i] = 305

	c.swapBuffers()
	if c.temp[i] != 305 {
		t.Fatalf("temp after swap: %v", c.temp[i])
	}
	if c.oxy[i] != 0.4 {
		t.Fatalf("oxygen lost in swap: %v", c.oxy[i])
	}
}
