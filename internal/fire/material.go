package fire

// MaterialID identifies a material definition inside a MaterialSet.
type MaterialID uint8

const (
	MatAir MaterialID = iota
	MatStone
	MatWood
	MatCloth
	MatGrass
	MatChar
	MatAsh
	MatOil
	MatGasoline
	MatOilVapor
	MatWater
	MatSteam
	MatSmoke
	matCount
)

// MatNone is the "leave material unchanged" sentinel accepted by the circle
// operations on the engine.
const MatNone MaterialID = 0xff

// FlowClass partitions materials by how the fluid phase may move them.
type FlowClass uint8

const (
	FlowSolid FlowClass = iota
	FlowLiquid
	FlowGas
)

// Material is one immutable physical property profile shared by every cell of
// its kind.
type Material struct {
	Name string

	// Thermal model.
	Conductivity float32 // share of a temperature difference exchanged per second
	HeatCapacity float32 // resistance to temperature change, 1 = air
	MaxTemp      float32

	// Combustion model. IgnitionTemp == 0 or FuelCapacity == 0 means the
	// material never burns.
	IgnitionTemp  float32
	Flammability  float32
	BurnRate      float32 // fuel units per second at reference conditions
	FuelCapacity  float32
	SmokeYield    float32
	SteamYield    float32
	ExtinguishWet float32 // wetness at which burning stops

	// Fluid model.
	Buoyancy float32 // >0 rises when heated past the buoyancy threshold
	Density  float32
	Flow     FlowClass

	// Optional phase-transition row. When HasPhase is set, crossing PhaseTemp
	// in the direction given by PhaseAbove converts the cell to PhaseTo.
	HasPhase   bool
	PhaseTo    MaterialID
	PhaseTemp  float32
	PhaseAbove bool
}

// Combustible reports whether cells of this material can hold fuel and ignite.
func (m Material) Combustible() bool {
	return m.IgnitionTemp > 0 && m.FuelCapacity > 0
}

// MaterialSet is an immutable registry of material definitions plus the
// burn-product transform table. Build one with DefaultMaterials, optionally
// adjust it with Define, then hand it to the grid and engine constructors.
// It must not be modified afterwards.
type MaterialSet struct {
	defs   [matCount]Material
	burned [matCount]MaterialID
}

// Get resolves a material id. Unknown ids resolve to the Air definition, so
// lookups never fail.
func (s *MaterialSet) Get(id MaterialID) Material {
	if int(id) >= int(matCount) {
		return s.defs[MatAir]
	}
	return s.defs[id]
}

// BurnedForm returns the material a cell transforms into once its fuel is
// spent. Materials without a transform row collapse to Air.
func (s *MaterialSet) BurnedForm(id MaterialID) MaterialID {
	if int(id) >= int(matCount) {
		return MatAir
	}
	return s.burned[id]
}

// Define replaces one material definition. Intended for construction-time
// adjustments only; a set shared with a running engine must stay untouched.
func (s *MaterialSet) Define(id MaterialID, m Material) {
	if int(id) >= int(matCount) {
		return
	}
	s.defs[id] = m
}

// DefineBurnedForm replaces one row of the burn-product transform table.
func (s *MaterialSet) DefineBurnedForm(id, to MaterialID) {
	if int(id) >= int(matCount) || int(to) >= int(matCount) {
		return
	}
	s.burned[id] = to
}

// DefaultMaterials builds the standard material registry.
func DefaultMaterials() *MaterialSet {
	s := &MaterialSet{}

	s.defs[MatAir] = Material{
		Name:         "air",
		Conductivity: 0.40,
		HeatCapacity: 1,
		MaxTemp:      800,
		Density:      0.10,
		Flow:         FlowGas,
	}
	s.defs[MatStone] = Material{
		Name:         "stone",
		Conductivity: 0.15,
		HeatCapacity: 4,
		MaxTemp:      1200,
		Density:      2.5,
		Flow:         FlowSolid,
	}
	s.defs[MatWood] = Material{
		Name:          "wood",
		Conductivity:  0.08,
		HeatCapacity:  2,
		MaxTemp:       900,
		IgnitionTemp:  300,
		Flammability:  0.8,
		BurnRate:      2,
		FuelCapacity:  100,
		SmokeYield:    0.3,
		ExtinguishWet: 0.5,
		Density:       0.6,
		Flow:          FlowSolid,
	}
	s.defs[MatCloth] = Material{
		Name:          "cloth",
		Conductivity:  0.10,
		HeatCapacity:  1.2,
		MaxTemp:       800,
		IgnitionTemp:  240,
		Flammability:  0.9,
		BurnRate:      3.5,
		FuelCapacity:  40,
		SmokeYield:    0.35,
		ExtinguishWet: 0.35,
		Density:       0.3,
		Flow:          FlowSolid,
	}
	s.defs[MatGrass] = Material{
		Name:          "grass",
		Conductivity:  0.12,
		HeatCapacity:  1,
		MaxTemp:       750,
		IgnitionTemp:  260,
		Flammability:  0.85,
		BurnRate:      4,
		FuelCapacity:  25,
		SmokeYield:    0.2,
		ExtinguishWet: 0.3,
		Density:       0.25,
		Flow:          FlowSolid,
	}
	s.defs[MatChar] = Material{
		Name:          "char",
		Conductivity:  0.06,
		HeatCapacity:  2.5,
		MaxTemp:       1000,
		IgnitionTemp:  450,
		Flammability:  0.4,
		BurnRate:      0.6,
		FuelCapacity:  30,
		SmokeYield:    0.1,
		ExtinguishWet: 0.4,
		Density:       0.4,
		Flow:          FlowSolid,
	}
	s.defs[MatAsh] = Material{
		Name:         "ash",
		Conductivity: 0.05,
		HeatCapacity: 1.5,
		MaxTemp:      900,
		Density:      0.3,
		Flow:         FlowSolid,
	}
	s.defs[MatOil] = Material{
		Name:          "oil",
		Conductivity:  0.25,
		HeatCapacity:  1.8,
		MaxTemp:       600,
		IgnitionTemp:  280,
		Flammability:  0.95,
		BurnRate:      3,
		FuelCapacity:  80,
		SmokeYield:    0.5,
		ExtinguishWet: 0.6,
		Density:       0.85,
		Flow:          FlowLiquid,
		HasPhase:      true,
		PhaseTo:       MatOilVapor,
		PhaseTemp:     350,
		PhaseAbove:    true,
	}
	s.defs[MatGasoline] = Material{
		Name:          "gasoline",
		Conductivity:  0.25,
		HeatCapacity:  1.6,
		MaxTemp:       600,
		IgnitionTemp:  230,
		Flammability:  1,
		BurnRate:      5,
		FuelCapacity:  60,
		SmokeYield:    0.4,
		ExtinguishWet: 0.7,
		Density:       0.75,
		Flow:          FlowLiquid,
		HasPhase:      true,
		PhaseTo:       MatOilVapor,
		PhaseTemp:     320,
		PhaseAbove:    true,
	}
	s.defs[MatOilVapor] = Material{
		Name:          "oil vapor",
		Conductivity:  0.45,
		HeatCapacity:  1,
		MaxTemp:       800,
		IgnitionTemp:  220,
		Flammability:  1,
		BurnRate:      6,
		FuelCapacity:  20,
		SmokeYield:    0.3,
		ExtinguishWet: 0.8,
		Buoyancy:      0.8,
		Density:       0.07,
		Flow:          FlowGas,
		HasPhase:      true,
		PhaseTo:       MatOil,
		PhaseTemp:     180,
		PhaseAbove:    false,
	}
	s.defs[MatWater] = Material{
		Name:         "water",
		Conductivity: 0.60,
		HeatCapacity: 4,
		MaxTemp:      100,
		SteamYield:   1,
		Density:      1,
		Flow:         FlowLiquid,
		HasPhase:     true,
		PhaseTo:      MatSteam,
		PhaseTemp:    100,
		PhaseAbove:   true,
	}
	s.defs[MatSteam] = Material{
		Name:         "steam",
		Conductivity: 0.50,
		HeatCapacity: 2,
		MaxTemp:      500,
		Buoyancy:     1,
		Density:      0.06,
		Flow:         FlowGas,
		HasPhase:     true,
		PhaseTo:      MatWater,
		PhaseTemp:    70,
		PhaseAbove:   false,
	}
	s.defs[MatSmoke] = Material{
		Name:         "smoke",
		Conductivity: 0.40,
		HeatCapacity: 1,
		MaxTemp:      800,
		Buoyancy:     0.6,
		Density:      0.08,
		Flow:         FlowGas,
		HasPhase:     true,
		PhaseTo:      MatAir,
		PhaseTemp:    40,
		PhaseAbove:   false,
	}

	for i := range s.burned {
		s.burned[i] = MatAir
	}
	s.burned[MatWood] = MatChar
	s.burned[MatCloth] = MatChar
	s.burned[MatGrass] = MatAsh
	s.burned[MatChar] = MatAsh

	return s
}
