package fire

import "testing"

func newTestGrid(w, h int) *Grid {
	return NewGrid(w, h, DefaultMaterials(), 20)
}

func TestGridLazyAllocation(t *testing.T) {
	g := newTestGrid(128, 128)
	if g.AllocatedChunks() != 0 {
		t.Fatalf("fresh grid allocated %d chunks", g.AllocatedChunks())
	}

	if _, ok := g.CellAt(5, 5); ok {
		t.Fatal("untouched cell should read as absent")
	}
	if g.AllocatedChunks() != 0 {
		t.Fatal("read allocated a chunk")
	}

	g.Apply(5, 5, Patch().WithMaterial(MatStone).WithDensity(2.6))
	if g.AllocatedChunks() != 1 {
		t.Fatalf("write allocated %d chunks", g.AllocatedChunks())
	}

	cell, ok := g.CellAt(5, 5)
	if !ok || cell.Material != MatStone {
		t.Fatalf("read back: ok=%v material=%d", ok, cell.Material)
	}
}

func TestGridUnallocatedReadsAmbient(t *testing.T) {
	g := newTestGrid(64, 64)
	cell := g.cellOrAmbient(10, 10)
	if cell.Material != MatAir || cell.Temp != 20 || cell.Oxygen != 1 {
		t.Fatalf("ambient cell: %+v", cell)
	}
	if g.AllocatedChunks() != 0 {
		t.Fatal("ambient read allocated a chunk")
	}
}

func TestGridOutOfBoundsIsSilent(t *testing.T) {
	g := newTestGrid(64, 64)

	if _, ok := g.CellAt(-1, 0); ok {
		t.Fatal("negative read reported ok")
	}
	if _, ok := g.CellAt(64, 63); ok {
		t.Fatal("past-edge read reported ok")
	}

	g.Apply(-1, -1, Patch().WithMaterial(MatWood))
	g.Apply(64, 64, Patch().WithTemp(500))
	g.AddHeat(-5, 5, 300)
	g.AddHeat(70, 5, 300)
	g.ActivateCircle(-100, -100, 10)
	g.ActivateCircle(1000, 1000, 10)

	if g.AllocatedChunks() != 0 {
		t.Fatalf("out-of-bounds ops allocated %d chunks", g.AllocatedChunks())
	}
}

func TestGridAddHeatSkipsTinyDeltas(t *testing.T) {
	g := newTestGrid(64, 64)

	g.AddHeat(8, 8, 0.001)
	if g.AllocatedChunks() != 0 {
		t.Fatal("negligible heat delta allocated a chunk")
	}

	g.AddHeat(8, 8, 50)
	if g.AllocatedChunks() != 1 {
		t.Fatal("heat write did not allocate")
	}
	cell, _ := g.CellAt(8, 8)
	if cell.Temp != 70 {
		t.Fatalf("temp after AddHeat: got %v", cell.Temp)
	}
}

func TestGridAddHeatClampsToMaterialMax(t *testing.T) {
	g := newTestGrid(64, 64)
	g.Apply(4, 4, Patch().WithMaterial(MatWater).WithDensity(1).WithWetness(1))

	g.AddHeat(4, 4, 10000)
	cell, _ := g.CellAt(4, 4)
	max := g.mats.Get(MatWater).MaxTemp
	if cell.Temp != max {
		t.Fatalf("water temp: got %v, want %v", cell.Temp, max)
	}
}

func TestGridNeighborsAtCorner(t *testing.T) {
	g := newTestGrid(64, 64)

	if n := len(g.Neighbors4(0, 0, nil)); n != 2 {
		t.Fatalf("corner has %d orthogonal neighbors", n)
	}
	if n := len(g.Neighbors8(0, 0, nil)); n != 3 {
		t.Fatalf("corner has %d neighbors", n)
	}
	if n := len(g.Neighbors4(32, 32, nil)); n != 4 {
		t.Fatalf("interior cell has %d orthogonal neighbors", n)
	}
	if n := len(g.Neighbors8(63, 63, nil)); n != 3 {
		t.Fatalf("far corner has %d neighbors", n)
	}
}

func TestGridActivateCircleMarksChunks(t *testing.T) {
	g := newTestGrid(128, 128)

	g.ActivateCircle(16, 16, 2)
	if g.AllocatedChunks() != 1 {
		t.Fatalf("allocated %d chunks", g.AllocatedChunks())
	}
	if n := len(g.ActiveChunks(nil)); n != 1 {
		t.Fatalf("active %d chunks", n)
	}

	// Straddling a chunk border activates both sides.
	g.ActivateCircle(32, 16, 2)
	if n := len(g.ActiveChunks(nil)); n != 2 {
		t.Fatalf("active after border circle: %d chunks", n)
	}
}

func TestGridApplyActivatesOnlyOnChange(t *testing.T) {
	g := newTestGrid(64, 64)

	// Writing ambient values into an untouched cell changes nothing and must
	// not wake the chunk.
	g.Apply(8, 8, Patch().WithTemp(20))
	if n := len(g.ActiveChunks(nil)); n != 0 {
		t.Fatalf("no-op write activated %d chunks", n)
	}

	g.Apply(8, 8, Patch().WithTemp(400))
	if n := len(g.ActiveChunks(nil)); n != 1 {
		t.Fatalf("hot write activated %d chunks", n)
	}
}
