package fire

// Cell is one location's physical state, copied out of the columnar chunk
// storage. Mutations go back in through CellPatch, never by writing a Cell.
type Cell struct {
	Material MaterialID
	Temp     float32
	Fuel     float32
	Wetness  float32
	Oxygen   float32
	Density  float32
	Burning  bool
}

// CellPatch is a partial cell update. Only the attributes set through the
// With* builders are merged into the target cell; everything else keeps its
// current value. The zero CellPatch merges nothing.
type CellPatch struct {
	material MaterialID
	temp     float32
	fuel     float32
	wetness  float32
	oxygen   float32
	density  float32
	burning  bool

	hasMaterial bool
	hasTemp     bool
	hasFuel     bool
	hasWetness  bool
	hasOxygen   bool
	hasDensity  bool
	hasBurning  bool
}

// Patch returns an empty cell patch.
func Patch() CellPatch { return CellPatch{} }

// WithMaterial sets the material attribute of the patch.
func (p CellPatch) WithMaterial(id MaterialID) CellPatch {
	p.material, p.hasMaterial = id, true
	return p
}

// WithTemp sets the temperature attribute of the patch.
func (p CellPatch) WithTemp(t float32) CellPatch {
	p.temp, p.hasTemp = t, true
	return p
}

// WithFuel sets the fuel attribute of the patch.
func (p CellPatch) WithFuel(f float32) CellPatch {
	p.fuel, p.hasFuel = f, true
	return p
}

// WithWetness sets the wetness attribute of the patch.
func (p CellPatch) WithWetness(w float32) CellPatch {
	p.wetness, p.hasWetness = w, true
	return p
}

// WithOxygen sets the oxygen attribute of the patch.
func (p CellPatch) WithOxygen(o float32) CellPatch {
	p.oxygen, p.hasOxygen = o, true
	return p
}

// WithDensity sets the density attribute of the patch.
func (p CellPatch) WithDensity(d float32) CellPatch {
	p.density, p.hasDensity = d, true
	return p
}

// WithBurning sets the burning flag of the patch.
func (p CellPatch) WithBurning(b bool) CellPatch {
	p.burning, p.hasBurning = b, true
	return p
}

// Empty reports whether the patch carries no attributes at all.
func (p CellPatch) Empty() bool {
	return !(p.hasMaterial || p.hasTemp || p.hasFuel || p.hasWetness ||
		p.hasOxygen || p.hasDensity || p.hasBurning)
}

// applyTo merges the provided attributes into the cell and clamps the result
// against the material definition.
func (p CellPatch) applyTo(c *Cell, mats *MaterialSet) {
	if p.hasMaterial {
		c.Material = p.material
		if int(c.Material) >= int(matCount) {
			c.Material = MatAir
		}
	}
	if p.hasTemp {
		c.Temp = p.temp
	}
	if p.hasFuel {
		c.Fuel = p.fuel
	}
	if p.hasWetness {
		c.Wetness = p.wetness
	}
	if p.hasOxygen {
		c.Oxygen = p.oxygen
	}
	if p.hasDensity {
		c.Density = p.density
	}
	if p.hasBurning {
		c.Burning = p.burning
	}

	m := mats.Get(c.Material)
	c.Temp = clamp32(c.Temp, 0, m.MaxTemp)
	c.Fuel = clamp32(c.Fuel, 0, m.FuelCapacity)
	c.Wetness = clamp32(c.Wetness, 0, 1)
	c.Oxygen = clamp32(c.Oxygen, 0, 1)
	if c.Density < 0 {
		c.Density = 0
	}
	if c.Fuel <= 0 {
		c.Burning = false
	}
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
