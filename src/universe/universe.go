package universe

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

//RandomSource yields independent uniform draws in [0,1)
//*rand.Rand from math/rand satisfies it
type RandomSource interface {
	Float64() float64
}

//Coord is a (row, col) position inside the universe
type Coord struct {
	Row uint32
	Col uint32
}

//Universe is a fixed-size toroidal grid of cells stored one bit per cell
//It has no internal locking: the owner must serialize every call (see Simulation)
type Universe struct {
	width  uint32
	height uint32
	cells  *bitset.BitSet
}

//New creates the universe with width x height cells
//every cell is alive with probability 0.5 drawn from rnd, a nil rnd leaves all cells dead
func New(width uint32, height uint32, rnd RandomSource) *Universe {
	u := &Universe{
		width:  width,
		height: height,
		cells:  bitset.New(uint(width) * uint(height)),
	}
	if rnd != nil {
		u.Randomize(rnd)
	}
	return u
}

//Randomize reseeds every cell in place, row-major, one draw per cell
func (u *Universe) Randomize(rnd RandomSource) {
	for i := uint(0); i < u.size(); i++ {
		u.cells.SetTo(i, rnd.Float64() < 0.5)
	}
}

func (u *Universe) Width() uint32 {
	return u.width
}

func (u *Universe) Height() uint32 {
	return u.height
}

//SetWidth replaces the width and kills every cell
func (u *Universe) SetWidth(width uint32) {
	u.width = width
	u.SetCellsDeadAll()
}

//SetHeight replaces the height and kills every cell
func (u *Universe) SetHeight(height uint32) {
	u.height = height
	u.SetCellsDeadAll()
}

//Index returns the flattened row-major index of the cell
//panics if the coordinate is outside the grid
func (u *Universe) Index(row uint32, col uint32) uint {
	u.mustContain(row, col)
	return u.index(row, col)
}

//LiveNeighborCount counts the live cells among the 8 neighbours of (row, col)
//the grid wraps on both axes, so on degenerate sizes the same cell can be counted more than once
//panics if the coordinate is outside the grid
func (u *Universe) LiveNeighborCount(row uint32, col uint32) uint8 {
	u.mustContain(row, col)
	return u.liveNeighborCount(row, col)
}

func (u *Universe) liveNeighborCount(row uint32, col uint32) uint8 {
	north := row - 1
	if row == 0 {
		north = u.height - 1
	}
	south := row + 1
	if row == u.height-1 {
		south = 0
	}
	west := col - 1
	if col == 0 {
		west = u.width - 1
	}
	east := col + 1
	if col == u.width-1 {
		east = 0
	}

	var count uint8
	for _, n := range [8][2]uint32{
		{north, west}, {north, col}, {north, east},
		{row, west}, {row, east},
		{south, west}, {south, col}, {south, east},
	} {
		if u.cells.Test(u.index(n[0], n[1])) {
			count++
		}
	}
	return count
}

//Cell reports whether the cell at (row, col) is alive
func (u *Universe) Cell(row uint32, col uint32) bool {
	return u.cells.Test(u.Index(row, col))
}

func (u *Universe) SetCell(row uint32, col uint32, alive bool) {
	u.cells.SetTo(u.Index(row, col), alive)
}

func (u *Universe) SetCellAlive(row uint32, col uint32) {
	u.SetCell(row, col, true)
}

func (u *Universe) SetCellDead(row uint32, col uint32) {
	u.SetCell(row, col, false)
}

func (u *Universe) ToggleCell(row uint32, col uint32) {
	u.cells.Flip(u.Index(row, col))
}

//SetCells writes the same state to every coordinate in list order, duplicates are not merged
func (u *Universe) SetCells(coords []Coord, alive bool) {
	for _, c := range coords {
		u.SetCell(c.Row, c.Col, alive)
	}
}

func (u *Universe) SetCellsAlive(coords []Coord) {
	u.SetCells(coords, true)
}

func (u *Universe) SetCellsDead(coords []Coord) {
	u.SetCells(coords, false)
}

//SetCellsAll reallocates the storage for the current dimensions filled with one state
func (u *Universe) SetCellsAll(alive bool) {
	size := u.size()
	cells := bitset.New(size)
	if alive {
		cells.FlipRange(0, size)
	}
	u.cells = cells
}

func (u *Universe) SetCellsAliveAll() {
	u.SetCellsAll(true)
}

func (u *Universe) SetCellsDeadAll() {
	u.SetCellsAll(false)
}

//Tick advances the universe by one generation
//all reads go to the current generation, all writes to the next one, which then replaces the current one at once
func (u *Universe) Tick() {
	next := u.cells.Clone()
	for row := uint32(0); row < u.height; row++ {
		for col := uint32(0); col < u.width; col++ {
			idx := u.index(row, col)
			next.SetTo(idx, nextState(u.cells.Test(idx), u.liveNeighborCount(row, col)))
		}
	}
	u.cells = next
}

//Cells returns the read-only view of the current generation
func (u *Universe) Cells() CellView {
	return CellView{bits: u.cells, width: u.width, height: u.height}
}

//LiveCells returns the number of live cells
func (u *Universe) LiveCells() uint {
	return u.cells.Count()
}

//Render draws the grid with one glyph per cell, one line per row
func (u *Universe) Render() string {
	return u.Cells().Render()
}

func (u *Universe) String() string {
	return u.Render()
}

func (u *Universe) size() uint {
	return uint(u.width) * uint(u.height)
}

func (u *Universe) index(row uint32, col uint32) uint {
	return uint(row)*uint(u.width) + uint(col)
}

func (u *Universe) mustContain(row uint32, col uint32) {
	if row >= u.height || col >= u.width {
		panic(fmt.Sprintf("universe: cell (%d, %d) is outside the %dx%d grid", row, col, u.width, u.height))
	}
}
