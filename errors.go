package kummu

import "github.com/pkg/errors"

var (
	ErrInvalidSize        = errors.New("size must be a multiple of the page size")
	ErrOutOfMemory        = errors.New("no free frame and no resident page to evict")
	ErrSwapFull           = errors.New("no free swap slot")
	ErrSwappedTable       = errors.New("page table level is swapped out")
	ErrSwapSlotMissing    = errors.New("swapped entry has no matching swap slot")
	ErrProcessNotAdmitted = errors.New("process not admitted")
	ErrNotPresent         = errors.New("page not present")
	ErrSwapCorrupt        = errors.New("swap image corrupt")
	ErrClosed             = errors.New("mmu closed")
	ErrInconsistent       = errors.New("inconsistent mmu state")
)

// IsExhausted reports whether err was caused by running out of frames or
// swap slots. Such failures leave the simulator usable.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrSwapFull)
}
