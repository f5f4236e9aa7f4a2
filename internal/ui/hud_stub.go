//go:build !ebiten

package ui

import "firegrid/internal/core"

// HUD is a no-op placeholder used when the ebiten build tag is absent.
type HUD struct{}

// NewHUD constructs a stub HUD.
func NewHUD(core.Sim, int) *HUD { return &HUD{} }

// SetStatus is a no-op in headless builds.
func (h *HUD) SetStatus([]string) {}

// Update is a no-op in headless builds.
func (h *HUD) Update(int) {}

// Draw is a no-op placeholder.
func (h *HUD) Draw(any, int, int) {}
