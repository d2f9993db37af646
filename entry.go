package kummu

import "fmt"

// Entry is one byte of a page-table page.
//
//	present:  [ frame:6 | 0 | 1 ]
//	swapped:  [ slot:7      | 0 ]
//	unmapped: 0
type Entry uint8

const (
	EntryPresent Entry = 1 << iota

	frameShift = 2
	slotShift  = 1

	MaxFrames = 1 << (8 - frameShift)
	MaxSlots  = 1 << (8 - slotShift)
)

func setFlag(e, flag Entry) Entry   { return e | flag }
func clearFlag(e, flag Entry) Entry { return e &^ flag }
func hasFlag(e, flag Entry) bool    { return e&flag != 0 }

// PresentEntry maps an entry to a resident frame.
func PresentEntry(f FrameNum) Entry {
	return setFlag(Entry(f)<<frameShift, EntryPresent)
}

// SwappedEntry records that the target lives in swap slot s.
func SwappedEntry(s SlotNum) Entry {
	return clearFlag(Entry(s)<<slotShift, EntryPresent)
}

func (e Entry) Present() bool  { return hasFlag(e, EntryPresent) }
func (e Entry) Swapped() bool  { return !e.Present() && e != 0 }
func (e Entry) Unmapped() bool { return e == 0 }

// Frame is only meaningful when e.Present().
func (e Entry) Frame() FrameNum { return FrameNum(e >> frameShift) }

// Slot is only meaningful when e.Swapped().
func (e Entry) Slot() SlotNum { return SlotNum(e >> slotShift) }

func (e Entry) String() string {
	switch {
	case e.Present():
		return fmt.Sprintf("present(frame=%d)", e.Frame())
	case e.Swapped():
		return fmt.Sprintf("swapped(slot=%d)", e.Slot())
	default:
		return "unmapped"
	}
}
