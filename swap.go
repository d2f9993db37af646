package kummu

import "github.com/pkg/errors"

type swapSlot struct {
	num    SlotNum
	parent FrameNum
	index  int
	pid    PID
	rng    Range
	free   bool

	// image is filled in on detached copies returned by find.
	image Page
}

// Slots are grouped into fixed-size segments. A segment is the unit written
// to the swap device and the unit the codec compresses; single 4-byte
// pages are too small for any compressor to shrink.
const (
	segmentSlots = 32
	segmentSize  = segmentSlots * PageSize
)

// segmentsFor returns how many segments hold n slots.
func segmentsFor(n int) int {
	return (n + segmentSlots - 1) / segmentSlots
}

func segmentOf(s SlotNum) (seg, off int) {
	return int(s) / segmentSlots, int(s) % segmentSlots * PageSize
}

// swapTable tracks which swap slots hold evicted leaf pages. Slot 0 is a
// sentinel and is never free.
type swapTable struct {
	slots      []swapSlot
	dev        SwapDevice
	compress   Compressor
	decompress DeCompressor
}

func newSwapTable(n int, dev SwapDevice, c Compressor, d DeCompressor) *swapTable {
	t := &swapTable{
		slots:      make([]swapSlot, n),
		dev:        dev,
		compress:   c,
		decompress: d,
	}
	for i := 1; i < n; i++ {
		t.slots[i] = swapSlot{num: SlotNum(i), free: true}
	}
	return t
}

func (t *swapTable) findFree() (SlotNum, bool) {
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].free {
			return SlotNum(i), true
		}
	}
	return 0, false
}

// find looks up the occupied slot holding va for pid. The slot is released
// and a detached copy carrying the page image is returned, so the caller
// may hand the slot to another eviction before swapping the copy in.
func (t *swapTable) find(pid PID, va VirtAddr) (swapSlot, error) {
	for i := 1; i < len(t.slots); i++ {
		s := &t.slots[i]
		if s.free || s.pid != pid || !s.rng.Contains(va) {
			continue
		}
		seg, err := t.readSegment(s.num)
		if err != nil {
			return swapSlot{}, err
		}
		_, off := segmentOf(s.num)
		cp := *s
		copy(cp.image[:], seg[off:off+PageSize])
		cp.free = false
		s.free = true
		return cp, nil
	}
	return swapSlot{}, errors.Wrapf(ErrSwapSlotMissing, "pid %d va %d", pid, va)
}

// restore re-occupies a slot released by find.
func (t *swapTable) restore(s swapSlot) {
	t.slots[s.num].free = false
}

// store writes a leaf's image into slot n and records its owner.
func (t *swapTable) store(n SlotNum, l leaf, img Page) error {
	seg, err := t.readSegment(n)
	if err != nil {
		return err
	}
	i, off := segmentOf(n)
	copy(seg[off:off+PageSize], img[:])
	if err := t.dev.WriteSegment(i, encodeImage(seg, t.compress)); err != nil {
		return errors.Wrapf(err, "write swap slot %d", n)
	}
	t.slots[n] = swapSlot{
		num:    n,
		parent: l.parent,
		index:  l.index,
		pid:    l.pid,
		rng:    l.rng,
		free:   false,
	}
	return nil
}

// readSegment returns the decoded segment holding slot n. Segments never
// written read as zeroes.
func (t *swapTable) readSegment(n SlotNum) ([]byte, error) {
	i, _ := segmentOf(n)
	data, err := t.dev.ReadSegment(i)
	if err != nil {
		return nil, errors.Wrapf(err, "read swap slot %d", n)
	}
	if data == nil {
		return make([]byte, segmentSize), nil
	}
	raw, err := decodeImage(data, t.decompress)
	if err != nil {
		return nil, errors.Wrapf(err, "decode swap slot %d", n)
	}
	if len(raw) != segmentSize {
		return nil, errors.Wrapf(ErrSwapCorrupt, "segment %d holds %d bytes", i, len(raw))
	}
	return raw, nil
}

func (t *swapTable) len() int { return len(t.slots) }

func (t *swapTable) countFree() (n int) {
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].free {
			n++
		}
	}
	return
}
