package grid

import (
	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

// Next advances a cell's paint state one step along the edit cycle
// empty -> available -> tentative -> empty. A cell somehow showing the
// legacy busy state re-enters the cycle at available.
func Next(s domain.AvailabilityStatus) domain.AvailabilityStatus {
	switch s {
	case domain.StatusEmpty, domain.StatusBusy:
		return domain.StatusAvailable
	case domain.StatusAvailable:
		return domain.StatusTentative
	default:
		return domain.StatusEmpty
	}
}

// PointerDown starts a drag on the cell at k and paints it immediately.
// The drag's target state is the first cell's own state advanced once;
// every cell entered before release is overwritten with that same
// target. Events on disabled or unknown cells, or outside edit mode,
// are no-ops. A click without movement is simply a drag of length one.
func (g *Grid) PointerDown(k slot.Key) bool {
	if g.cfg.Mode != ModeEdit {
		return false
	}
	cell, ok := g.cells[k]
	if !ok || !cell.Enabled {
		return false
	}
	g.dragging = true
	g.paint = Next(cell.Status)
	return g.applyPaint(cell)
}

// PointerEnter paints the newly entered cell while a drag is active.
func (g *Grid) PointerEnter(k slot.Key) bool {
	if !g.dragging {
		return false
	}
	cell, ok := g.cells[k]
	if !ok || !cell.Enabled {
		return false
	}
	return g.applyPaint(cell)
}

// PointerDownAt and PointerMoveAt are the coordinate-based variants used
// by touch input, where move events must be hit-tested to the cell under
// the finger.
func (g *Grid) PointerDownAt(x, y float64) bool {
	k, ok := g.HitTest(x, y)
	if !ok {
		return false
	}
	return g.PointerDown(k)
}

func (g *Grid) PointerMoveAt(x, y float64) bool {
	if !g.dragging {
		return false
	}
	k, ok := g.HitTest(x, y)
	if !ok {
		return false
	}
	return g.PointerEnter(k)
}

// PointerUp ends the drag. Callers must deliver it from a global release
// listener: the gesture ends on release wherever the pointer is, even
// outside the grid bounds.
func (g *Grid) PointerUp() {
	g.dragging = false
	g.paint = domain.StatusEmpty
}

// PointerCancel ends the drag exactly like PointerUp.
func (g *Grid) PointerCancel() {
	g.PointerUp()
}

func (g *Grid) Dragging() bool { return g.dragging }

// applyPaint sets the cell to the drag target, at most once per cell per
// drag, and notifies the owner synchronously.
func (g *Grid) applyPaint(cell *Cell) bool {
	if cell.Status == g.paint {
		return false
	}
	cell.Status = g.paint
	if g.cfg.OnSlotChange != nil {
		g.cfg.OnSlotChange(cell.Key.Date, cell.Key.Time, g.paint)
	}
	return true
}
