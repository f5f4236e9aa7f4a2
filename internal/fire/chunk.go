package fire

const (
	// ChunkSize is the tile edge length in cells.
	ChunkSize = 32
	// chunkCells is the number of cells owned by one chunk.
	chunkCells = ChunkSize * ChunkSize
)

// chunk owns a 32x32 tile of cells in columnar (structure-of-arrays) storage.
// The layout is column-major, index = lx*ChunkSize + ly, so vertical scans in
// the fluid phase walk contiguous memory.
//
// temp/oxy have pre-allocated sibling buffers. The diffusion phase writes into
// the next buffers and the grid swaps them by reference at the phase boundary,
// so every neighbor read during a pass sees pre-phase values.
type chunk struct {
	cx, cy int

	mat      []uint8
	temp     []float32
	tempNext []float32
	fuel     []float32
	wet      []float32
	oxy      []float32
	oxyNext  []float32
	dens     []float32
	burning  []bool

	active     bool
	lastActive uint64

	// seeded marks that the next buffers hold a copy of the current tick's
	// state, so cross-chunk deposits know which side to write.
	seeded bool
}

func newChunk(cx, cy int, airDensity, ambient float32) *chunk {
	c := &chunk{
		cx:       cx,
		cy:       cy,
		mat:      make([]uint8, chunkCells),
		temp:     make([]float32, chunkCells),
		tempNext: make([]float32, chunkCells),
		fuel:     make([]float32, chunkCells),
		wet:      make([]float32, chunkCells),
		oxy:      make([]float32, chunkCells),
		oxyNext:  make([]float32, chunkCells),
		dens:     make([]float32, chunkCells),
		burning:  make([]bool, chunkCells),
	}
	for i := 0; i < chunkCells; i++ {
		c.temp[i] = ambient
		c.oxy[i] = 1
		c.dens[i] = airDensity
	}
	return c
}

// cellIndex maps chunk-local coordinates to the columnar slice index.
func cellIndex(lx, ly int) int { return lx*ChunkSize + ly }

func (c *chunk) cell(i int) Cell {
	return Cell{
		Material: MaterialID(c.mat[i]),
		Temp:     c.temp[i],
		Fuel:     c.fuel[i],
		Wetness:  c.wet[i],
		Oxygen:   c.oxy[i],
		Density:  c.dens[i],
		Burning:  c.burning[i],
	}
}

func (c *chunk) setCell(i int, cell Cell) {
	c.mat[i] = uint8(cell.Material)
	c.temp[i] = cell.Temp
	c.fuel[i] = cell.Fuel
	c.wet[i] = cell.Wetness
	c.oxy[i] = cell.Oxygen
	c.dens[i] = cell.Density
	c.burning[i] = cell.Burning
}

// swapBuffers promotes the diffusion next-buffers to current.
func (c *chunk) swapBuffers() {
	c.temp, c.tempNext = c.tempNext, c.temp
	c.oxy, c.oxyNext = c.oxyNext, c.oxy
}

// seedBuffers copies the current temperature and oxygen into the next buffers
// ahead of a diffusion pass.
func (c *chunk) seedBuffers() {
	copy(c.tempNext, c.temp)
	copy(c.oxyNext, c.oxy)
}
