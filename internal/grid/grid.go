// Package grid implements the interactive availability surface: an M×N
// matrix of (time row × date column) cells painted by drag gestures in
// edit mode, or rendered read-only as a heatmap of aggregated counts.
//
// The package is deliberately host-agnostic: it consumes a
// platform-neutral pointer event stream and exposes cell state for a
// renderer to draw, so the whole interaction model is unit-testable
// without an input device.
package grid

import (
	"fmt"
	"slices"
	"time"

	"github.com/digennarot/dndScheduler/internal/domain"
	"github.com/digennarot/dndScheduler/internal/slot"
)

type Mode string

const (
	ModeEdit    Mode = "edit"
	ModeHeatmap Mode = "heatmap"
)

// MaxHeatLevel caps heatmap intensity; counts above it all render at the
// hottest level.
const MaxHeatLevel = 5

// HeatLevel buckets an attendance count into a 0..5 intensity class.
func HeatLevel(count int) int {
	if count <= 0 {
		return 0
	}
	return min(count, MaxHeatLevel)
}

// HeatmapEntry is the aggregated payload of one cell in heatmap mode.
type HeatmapEntry struct {
	Count  int
	Voters []string
}

// Metrics describe the cell geometry used to resolve pointer
// coordinates to cells. Touch-move events do not target the element
// under the finger, so painting on touch devices depends on this
// hit-testing.
type Metrics struct {
	LabelWidth   float64 // time label column
	HeaderHeight float64 // date header row
	CellWidth    float64
	CellHeight   float64
}

var DefaultMetrics = Metrics{LabelWidth: 60, HeaderHeight: 36, CellWidth: 88, CellHeight: 32}

type Config struct {
	Dates     []string            // ordered candidate dates, YYYY-MM-DD
	TimeSlots map[string][]string // per-date HH:MM slots
	Mode      Mode
	Heatmap   map[slot.Key]HeatmapEntry
	Metrics   Metrics

	// OnSlotChange is invoked synchronously on every applied paint
	// transition. The caller owns the availability data; the grid only
	// keeps its rendered visual state.
	OnSlotChange func(date, timeOfDay string, status domain.AvailabilityStatus)
}

// Cell is one interactive intersection of the grid.
type Cell struct {
	Key     slot.Key
	Row     int
	Col     int
	Enabled bool // false when this date does not offer this time row

	// edit mode
	Status domain.AvailabilityStatus

	// heatmap mode
	Heat   int
	Count  int
	Voters []string
}

type Grid struct {
	cfg   Config
	rows  []string // sorted union of every date's time slots
	cells map[slot.Key]*Cell
	byPos [][]*Cell // [row][col]

	dragging bool
	paint    domain.AvailabilityStatus
}

// New validates the configuration and builds the cell layout. A poll
// with zero dates, or a date configured with zero time slots, is a
// configuration error: the caller must surface it instead of presenting
// an empty grid.
func New(cfg Config) (*Grid, error) {
	if len(cfg.Dates) == 0 {
		return nil, fmt.Errorf("grid: no candidate dates configured")
	}
	for _, d := range cfg.Dates {
		if _, err := time.Parse(slot.DateLayout, d); err != nil {
			return nil, fmt.Errorf("grid: invalid date %q", d)
		}
		if len(cfg.TimeSlots[d]) == 0 {
			return nil, fmt.Errorf("grid: date %s has no time slots", d)
		}
		for _, t := range cfg.TimeSlots[d] {
			if _, err := time.Parse(slot.TimeLayout, t); err != nil {
				return nil, fmt.Errorf("grid: invalid time %q on %s", t, d)
			}
		}
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeEdit
	}
	if cfg.Metrics == (Metrics{}) {
		cfg.Metrics = DefaultMetrics
	}

	g := &Grid{cfg: cfg}
	g.rebuild()
	return g, nil
}

// rebuild renders the layout from scratch. Cells are positioned by
// (date, time), not raw index: with per-day preferences the time axis is
// the union of all per-day sets, and a (date, time) pair outside that
// date's own set becomes a disabled, never-clickable cell.
func (g *Grid) rebuild() {
	union := make([]string, 0)
	for _, d := range g.cfg.Dates {
		for _, t := range g.cfg.TimeSlots[d] {
			if !slices.Contains(union, t) {
				union = append(union, t)
			}
		}
	}
	slices.Sort(union)
	g.rows = union

	g.cells = make(map[slot.Key]*Cell, len(union)*len(g.cfg.Dates))
	g.byPos = make([][]*Cell, len(union))
	for row, t := range union {
		g.byPos[row] = make([]*Cell, len(g.cfg.Dates))
		for col, d := range g.cfg.Dates {
			cell := &Cell{
				Key:     slot.Key{Date: d, Time: t},
				Row:     row,
				Col:     col,
				Enabled: slices.Contains(g.cfg.TimeSlots[d], t),
			}
			if g.cfg.Mode == ModeHeatmap {
				if entry, ok := g.cfg.Heatmap[cell.Key]; ok {
					cell.Heat = HeatLevel(entry.Count)
					cell.Count = entry.Count
					cell.Voters = entry.Voters
				}
			}
			g.cells[cell.Key] = cell
			g.byPos[row][col] = cell
		}
	}
}

func (g *Grid) Mode() Mode      { return g.cfg.Mode }
func (g *Grid) Rows() []string  { return slices.Clone(g.rows) }
func (g *Grid) Dates() []string { return slices.Clone(g.cfg.Dates) }

// SetMode switches between edit and heatmap and re-renders the grid from
// scratch. Edit-mode visuals are reconstructed from the store, which is
// the source of truth; whatever the surface showed before is discarded.
// Any in-flight drag is cancelled by the re-render.
func (g *Grid) SetMode(mode Mode, st *Store) {
	g.cfg.Mode = mode
	g.dragging = false
	g.paint = domain.StatusEmpty
	g.rebuild()
	if mode == ModeEdit && st != nil {
		g.RefreshFromStore(st)
	}
}

// SetHeatmap replaces the aggregated data and re-renders. Heatmap data
// is authoritative only in heatmap mode and is never merged into the
// edit-mode store.
func (g *Grid) SetHeatmap(data map[slot.Key]HeatmapEntry) {
	g.cfg.Heatmap = data
	if g.cfg.Mode == ModeHeatmap {
		g.rebuild()
	}
}

// RefreshFromStore repaints every cell's visual state from the store in
// one pass. Bulk store operations call this so the surface never shows a
// partially applied state.
func (g *Grid) RefreshFromStore(st *Store) {
	for _, cell := range g.cells {
		if cell.Enabled {
			cell.Status = st.Get(cell.Key)
		}
	}
}

func (g *Grid) Cell(k slot.Key) (*Cell, bool) {
	c, ok := g.cells[k]
	return c, ok
}

func (g *Grid) CellAt(row, col int) (*Cell, bool) {
	if row < 0 || row >= len(g.byPos) || col < 0 || col >= len(g.cfg.Dates) {
		return nil, false
	}
	return g.byPos[row][col], true
}

// EnabledKeys lists every paintable slot in date-major order, the input
// for the store's bulk actions.
func (g *Grid) EnabledKeys() []slot.Key {
	keys := make([]slot.Key, 0, len(g.cells))
	for _, d := range g.cfg.Dates {
		for _, t := range g.cfg.TimeSlots[d] {
			keys = append(keys, slot.Key{Date: d, Time: t})
		}
	}
	return keys
}

// HitTest resolves pointer coordinates to the underlying cell. Points
// over the header row, the label column or outside the grid resolve to
// nothing, which callers treat as a no-op rather than a fault.
func (g *Grid) HitTest(x, y float64) (slot.Key, bool) {
	m := g.cfg.Metrics
	if x < m.LabelWidth || y < m.HeaderHeight {
		return slot.Key{}, false
	}
	col := int((x - m.LabelWidth) / m.CellWidth)
	row := int((y - m.HeaderHeight) / m.CellHeight)
	cell, ok := g.CellAt(row, col)
	if !ok {
		return slot.Key{}, false
	}
	return cell.Key, true
}

// Tooltip is the inspection payload of a heatmap cell, positioned just
// off the pointer.
type Tooltip struct {
	X      float64
	Y      float64
	Count  int
	Voters []string
}

// Inspect returns the voter tooltip for the heatmap cell under the
// pointer. Cells without votes, disabled cells and edit mode expose
// nothing.
func (g *Grid) Inspect(x, y float64) (Tooltip, bool) {
	if g.cfg.Mode != ModeHeatmap {
		return Tooltip{}, false
	}
	k, ok := g.HitTest(x, y)
	if !ok {
		return Tooltip{}, false
	}
	cell := g.cells[k]
	if !cell.Enabled || cell.Count == 0 {
		return Tooltip{}, false
	}
	return Tooltip{X: x + 10, Y: y + 10, Count: cell.Count, Voters: cell.Voters}, true
}
