package core

import "testing"

type stubSim struct{}

func (stubSim) Name() string   { return "stub" }
func (stubSim) Size() Size     { return Size{W: 1, H: 1} }
func (stubSim) Reset(int64)    {}
func (stubSim) Step()          {}
func (stubSim) Cells() []uint8 { return []uint8{0} }

func TestRegisterIgnoresInvalidEntries(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) Sim { return stubSim{} })
	Register("nilfactory", nil)
	if len(Sims()) != before {
		t.Fatalf("invalid registrations changed the registry: %d -> %d", before, len(Sims()))
	}
}

func TestRegisterAndLookup(t *testing.T) {
	Register("stub-test", func(map[string]string) Sim { return stubSim{} })
	f, ok := Sims()["stub-test"]
	if !ok {
		t.Fatal("registered factory missing")
	}
	if s := f(nil); s.Name() != "stub" {
		t.Fatalf("factory built %q", s.Name())
	}
}
