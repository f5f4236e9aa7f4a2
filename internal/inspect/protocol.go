package inspect

import "firegrid/internal/fire"

// Version is bumped on breaking protocol changes.
const Version = 1

// Command is a client request. Type selects the operation; the remaining
// fields are interpreted per type:
//
//	ignite   x, y, radius, material (optional), amount (temperature boost)
//	liquid   x, y, radius, material (water or oil), amount (intensity)
//	heat     x, y, radius, amount (degrees at the centre)
//	burning  x, y; replies with a burning report
//	damage   box; replies with a damage report
//	stats    replies with an engine stats snapshot
type Command struct {
	Type     string  `json:"type"`
	X        int     `json:"x,omitempty"`
	Y        int     `json:"y,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Material string  `json:"material,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Box      [4]int  `json:"box,omitempty"`

	reply chan<- []byte
}

// Frame is the periodic world broadcast. Cells is the display buffer, which
// JSON encodes as base64.
type Frame struct {
	Type  string `json:"type"`
	Tick  uint64 `json:"tick"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Cells []byte `json:"cells"`

	BurningCells int `json:"burning_cells"`
	ActiveChunks int `json:"active_chunks"`
}

// BurningReply answers a burning command.
type BurningReply struct {
	Type    string `json:"type"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Burning bool   `json:"burning"`
}

// DamageReply answers a damage command.
type DamageReply struct {
	Type         string  `json:"type"`
	BurningCells int     `json:"burning_cells"`
	AvgTemp      float32 `json:"avg_temp"`
	Damage       float64 `json:"damage"`
}

// StatsReply answers a stats command.
type StatsReply struct {
	Type  string     `json:"type"`
	Stats fire.Stats `json:"stats"`
}

// BootstrapResponse describes the world to a client before it subscribes.
type BootstrapResponse struct {
	ProtocolVersion int   `json:"protocol_version"`
	W               int   `json:"w"`
	H               int   `json:"h"`
	TickRate        int   `json:"tick_rate"`
	Seed            int64 `json:"seed"`
}

var materialNames = map[string]fire.MaterialID{
	"wood":     fire.MatWood,
	"cloth":    fire.MatCloth,
	"grass":    fire.MatGrass,
	"oil":      fire.MatOil,
	"gasoline": fire.MatGasoline,
	"water":    fire.MatWater,
	"stone":    fire.MatStone,
}

func materialByName(name string) (fire.MaterialID, bool) {
	id, ok := materialNames[name]
	return id, ok
}
