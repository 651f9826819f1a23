package group

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/iwvelando/artillery-calculator/pkg/constants"
	"github.com/iwvelando/artillery-calculator/pkg/geometry"
)

var (
	// ErrOutOfBounds is returned for a position outside the grid.
	ErrOutOfBounds = errors.New("position outside the grid")

	// ErrCellOccupied is returned when a cell already holds a unit.
	ErrCellOccupied = errors.New("grid cell already occupied")

	// ErrUnitNotFound is returned for an unknown unit ID.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrCentralUnitRemoval is returned when removing the central unit.
	ErrCentralUnitRemoval = errors.New("central unit cannot be removed")
)

// Layout is the placement of a battery on the grid. The first unit placed
// becomes the central unit. A Layout is not safe for concurrent use.
type Layout struct {
	width  int
	height int
	units  []Unit
}

// NewLayout returns an empty layout on the default grid.
func NewLayout() *Layout {
	return NewLayoutWithSize(constants.GridSizeX, constants.GridSizeY)
}

// NewLayoutWithSize returns an empty layout on a width x height grid.
func NewLayoutWithSize(width, height int) *Layout {
	return &Layout{width: width, height: height}
}

// Units returns a copy of the placed units in placement order.
func (l *Layout) Units() []Unit {
	return append([]Unit(nil), l.units...)
}

// Len returns the number of placed units.
func (l *Layout) Len() int {
	return len(l.units)
}

func (l *Layout) snap(x, y float64) (float64, float64, error) {
	cx, cy := math.Round(x), math.Round(y)
	if cx < 0 || cx > float64(l.width) || cy < 0 || cy > float64(l.height) {
		return 0, 0, fmt.Errorf("%w: (%v, %v) on %dx%d grid", ErrOutOfBounds, x, y, l.width, l.height)
	}
	return cx, cy, nil
}

func (l *Layout) index(id string) int {
	for i := range l.units {
		if l.units[i].ID == id {
			return i
		}
	}
	return -1
}

// At returns the unit occupying the cell containing (x, y).
func (l *Layout) At(x, y float64) (Unit, bool) {
	cx, cy := math.Round(x), math.Round(y)
	for _, u := range l.units {
		if u.GridX == cx && u.GridY == cy {
			return u, true
		}
	}
	return Unit{}, false
}

// Place puts a new unit on the cell nearest to (x, y).
func (l *Layout) Place(x, y float64) (Unit, error) {
	cx, cy, err := l.snap(x, y)
	if err != nil {
		return Unit{}, err
	}
	if _, taken := l.At(cx, cy); taken {
		return Unit{}, fmt.Errorf("%w: (%v, %v)", ErrCellOccupied, cx, cy)
	}
	u := Unit{
		ID:        uuid.NewString(),
		GridX:     cx,
		GridY:     cy,
		IsCentral: len(l.units) == 0,
	}
	l.units = append(l.units, u)
	return u, nil
}

// Add places a unit with a caller-chosen ID. It is used to rebuild a layout
// from stored positions; the central flag is taken from the unit.
func (l *Layout) Add(u Unit) error {
	cx, cy, err := l.snap(u.GridX, u.GridY)
	if err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if l.index(u.ID) >= 0 {
		return fmt.Errorf("duplicate unit id %q", u.ID)
	}
	if _, taken := l.At(cx, cy); taken {
		return fmt.Errorf("%w: (%v, %v)", ErrCellOccupied, cx, cy)
	}
	if u.IsCentral {
		if _, err := FindCentral(l.units); err == nil {
			return fmt.Errorf("%w: adding %q", ErrMultipleCentralUnits, u.ID)
		}
	}
	u.GridX, u.GridY = cx, cy
	u.Correction = Correction{}
	l.units = append(l.units, u)
	return nil
}

// Move relocates a unit to the cell nearest to (x, y).
func (l *Layout) Move(id string, x, y float64) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnitNotFound, id)
	}
	cx, cy, err := l.snap(x, y)
	if err != nil {
		return err
	}
	if other, taken := l.At(cx, cy); taken && other.ID != id {
		return fmt.Errorf("%w: (%v, %v)", ErrCellOccupied, cx, cy)
	}
	l.units[i].GridX, l.units[i].GridY = cx, cy
	return nil
}

// Remove deletes a non-central unit.
func (l *Layout) Remove(id string) error {
	i := l.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnitNotFound, id)
	}
	if l.units[i].IsCentral {
		return ErrCentralUnitRemoval
	}
	l.units = append(l.units[:i], l.units[i+1:]...)
	return nil
}

// Number returns the display number of a unit: the central unit is 1 and the
// others follow in placement order.
func (l *Layout) Number(id string) (int, error) {
	n := constants.CentralUnitNumber
	for _, u := range l.units {
		if u.IsCentral {
			if u.ID == id {
				return constants.CentralUnitNumber, nil
			}
			continue
		}
		n++
		if u.ID == id {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnitNotFound, id)
}

// Distance returns the grid distance between two units in whole meters.
func (l *Layout) Distance(a, b string) (float64, error) {
	i, j := l.index(a), l.index(b)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnitNotFound, a)
	}
	if j < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnitNotFound, b)
	}
	d := geometry.Sub(
		geometry.CartesianPoint{X: l.units[i].GridX, Y: l.units[i].GridY},
		geometry.CartesianPoint{X: l.units[j].GridX, Y: l.units[j].GridY},
	)
	return math.Round(math.Hypot(d.X, d.Y) * constants.CellSize), nil
}

// Corrections computes the correction of every placed unit and stores it on
// the units.
func (l *Layout) Corrections(central CentralSolution) ([]UnitCorrection, error) {
	results, err := Corrections(central, l.units)
	if err != nil {
		return nil, err
	}
	for i := range results {
		l.units[i].Correction = results[i].Correction
	}
	return results, nil
}
