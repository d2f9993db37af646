package kummu

// PageSize is both the number of entries in a page-table page and the
// number of bytes in a frame.
const PageSize = 4

type Page [PageSize]byte

// FrameNum indexes the frame table; frame 0 is never handed out.
type FrameNum uint8

// SlotNum indexes the swap table; slot 0 is never handed out.
type SlotNum uint8

// PhysAddr is a byte offset into the physical memory region.
type PhysAddr uint16

type PageType uint8

const (
	TypeUnused PageType = iota
	TypeDirectory
	TypeMiddleDirectory
	TypeTable
	// leaf data page
	TypeFrame
)

// levelTypes is the type of the page allocated when the entry at a given
// level is found unmapped.
var levelTypes = [Levels]PageType{TypeMiddleDirectory, TypeTable, TypeFrame}

func (t PageType) String() string {
	switch t {
	case TypeUnused:
		return "unused"
	case TypeDirectory:
		return "directory"
	case TypeMiddleDirectory:
		return "middle-directory"
	case TypeTable:
		return "table"
	case TypeFrame:
		return "frame"
	}
	return "unknown"
}

func (f FrameNum) Addr() PhysAddr { return PhysAddr(f) * PageSize }
