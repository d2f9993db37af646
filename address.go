package kummu

import "fmt"

// VirtAddr is a one byte virtual address, most significant pair first:
// directory index, middle directory index, table index, offset.
type VirtAddr uint8

// Levels is the number of translation levels walked before the offset.
const Levels = 3

// leafLevel is the level whose entries point at data frames.
const leafLevel = Levels - 1

const (
	indexBits = 2
	indexMask = 1<<indexBits - 1
)

// Index returns the entry index used at the given translation level.
func (va VirtAddr) Index(level int) int {
	shift := uint(indexBits * (Levels - level))
	return int(va>>shift) & indexMask
}

func (va VirtAddr) Offset() int { return int(va) & indexMask }

// PageBase masks off the offset.
func (va VirtAddr) PageBase() VirtAddr { return va &^ indexMask }

// Range is the span of virtual addresses backed by one leaf page.
type Range struct {
	First VirtAddr
	Last  VirtAddr
}

// RangeOf returns the 4-aligned range containing va.
func RangeOf(va VirtAddr) Range {
	first := va.PageBase()
	return Range{First: first, Last: first + PageSize - 1}
}

func (r Range) Contains(va VirtAddr) bool {
	return r.First <= va && va <= r.Last
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.First, r.Last)
}
