package universe

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

const (
	AliveGlyph = '◼'
	DeadGlyph  = '◻'
)

//CellView is a read-only view of a generation
//it shares the storage with the universe, a Tick never changes a view taken before it
type CellView struct {
	bits   *bitset.BitSet
	width  uint32
	height uint32
}

func (v CellView) Width() uint32 {
	return v.width
}

func (v CellView) Height() uint32 {
	return v.height
}

//Len returns the number of cells (bits) in the view
func (v CellView) Len() uint {
	return uint(v.width) * uint(v.height)
}

//Alive reports the state of the cell at flattened index idx
func (v CellView) Alive(idx uint) bool {
	if v.bits == nil {
		return false
	}
	return v.bits.Test(idx)
}

//At reports the state of the cell at (row, col), false outside the grid
func (v CellView) At(row uint32, col uint32) bool {
	if row >= v.height || col >= v.width {
		return false
	}
	return v.Alive(uint(row)*uint(v.width) + uint(col))
}

func (v CellView) LiveCount() uint {
	if v.bits == nil {
		return 0
	}
	return v.bits.Count()
}

//Words returns a copy of the packed cells, bit i of the view is bit i%64 of word i/64
func (v CellView) Words() []uint64 {
	if v.bits == nil {
		return nil
	}
	return append([]uint64(nil), v.bits.Words()...)
}

//Equal reports whether both views have the same dimensions and cells
func (v CellView) Equal(o CellView) bool {
	if v.width != o.width || v.height != o.height {
		return false
	}
	if v.bits == nil || o.bits == nil {
		return v.LiveCount() == 0 && o.LiveCount() == 0
	}
	return v.bits.Equal(o.bits)
}

//clone detaches the view from the universe storage
func (v CellView) clone() CellView {
	if v.bits != nil {
		v.bits = v.bits.Clone()
	}
	return v
}

//Render draws height lines of width glyphs, each line ends with a newline
func (v CellView) Render() string {
	var b strings.Builder
	b.Grow(int(v.Len())*3 + int(v.height))
	for row := uint32(0); row < v.height; row++ {
		for col := uint32(0); col < v.width; col++ {
			if v.At(row, col) {
				b.WriteRune(AliveGlyph)
			} else {
				b.WriteRune(DeadGlyph)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
