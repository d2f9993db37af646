package kummu

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Fault services a page fault of pid at va: every level of the walk from
// the page directory down to the data frame is made present, allocating or
// swapping in pages as needed.
func (m *MMU) Fault(pid PID, va VirtAddr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	defer m.verify()

	m.stats.faults++
	f, err := m.walk(pid, va)
	if err != nil {
		m.logFailure(pid, va, err)
		return err
	}
	m.log.WithFields(log.Fields{"pid": pid, "va": va, "frame": f}).Debug("page fault serviced")
	return nil
}

// Map makes sure the translation path for va exists without counting a
// fault. Used to seed page tables ahead of accesses.
func (m *MMU) Map(pid PID, va VirtAddr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	defer m.verify()

	if _, err := m.walk(pid, va); err != nil {
		m.logFailure(pid, va, err)
		return err
	}
	return nil
}

// Translate resolves va the way the hardware would, without allocating.
// ErrNotPresent means a fault is required.
func (m *MMU) Translate(pid PID, va VirtAddr) (PhysAddr, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	return m.translate(pid, va)
}

// Read returns the byte at va, faulting the page in if needed.
func (m *MMU) Read(pid PID, va VirtAddr) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	defer m.verify()

	pa, err := m.access(pid, va)
	if err != nil {
		return 0, err
	}
	return m.mem[pa], nil
}

// Write stores b at va, faulting the page in if needed.
func (m *MMU) Write(pid PID, va VirtAddr, b byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	defer m.verify()

	pa, err := m.access(pid, va)
	if err != nil {
		return err
	}
	m.mem[pa] = b
	return nil
}

func (m *MMU) access(pid PID, va VirtAddr) (PhysAddr, error) {
	pa, err := m.translate(pid, va)
	if !errors.Is(err, ErrNotPresent) {
		return pa, err
	}
	m.stats.faults++
	f, err := m.walk(pid, va)
	if err != nil {
		m.logFailure(pid, va, err)
		return 0, err
	}
	return f.Addr() + PhysAddr(va.Offset()), nil
}

func (m *MMU) translate(pid PID, va VirtAddr) (PhysAddr, error) {
	cur, ok := m.procs[pid]
	if !ok {
		return 0, errors.Wrapf(ErrProcessNotAdmitted, "pid %d", pid)
	}
	for level := 0; level < Levels; level++ {
		e := m.entry(cur, va.Index(level))
		if !e.Present() {
			return 0, errors.Wrapf(ErrNotPresent, "pid %d va %d level %d is %s", pid, va, level, e)
		}
		cur = e.Frame()
	}
	return cur.Addr() + PhysAddr(va.Offset()), nil
}

// walk follows directory, middle directory and table entries for va and
// returns the data frame. Unmapped entries get a new page; a swapped entry
// is only legal at the leaf level, where the page is swapped back in.
func (m *MMU) walk(pid PID, va VirtAddr) (FrameNum, error) {
	cur, ok := m.procs[pid]
	if !ok {
		return 0, errors.Wrapf(ErrProcessNotAdmitted, "pid %d", pid)
	}
	for level := 0; level < Levels; level++ {
		index := va.Index(level)
		e := m.entry(cur, index)
		switch {
		case e.Present():
			cur = e.Frame()

		case e.Swapped():
			if level != leafLevel {
				return 0, errors.Wrapf(ErrSwappedTable, "pid %d va %d level %d", pid, va, level)
			}
			f, err := m.swapInPage(pid, va, cur, index, e.Slot())
			if err != nil {
				return 0, err
			}
			cur = f

		default:
			f, err := m.addPage(levelTypes[level])
			if err != nil {
				return 0, errors.Wrapf(err, "pid %d va %d level %d", pid, va, level)
			}
			m.setEntry(cur, index, PresentEntry(f))
			if level == leafLevel {
				m.leaves.enqueue(leaf{
					frame:  f,
					parent: cur,
					index:  index,
					pid:    pid,
					rng:    RangeOf(va),
				})
			}
			cur = f
		}
	}
	return cur, nil
}

// swapInPage brings the leaf for va back from slot want, which the entry
// at parent[index] names.
func (m *MMU) swapInPage(pid PID, va VirtAddr, parent FrameNum, index int, want SlotNum) (FrameNum, error) {
	slot, err := m.swap.find(pid, va)
	if err != nil {
		return 0, err
	}
	if slot.num != want || slot.parent != parent || slot.index != index {
		m.swap.restore(slot)
		return 0, errors.Wrapf(ErrSwapSlotMissing,
			"pid %d va %d: entry names slot %d, lookup found slot %d", pid, va, want, slot.num)
	}
	f, err := m.addPage(TypeFrame)
	if err != nil {
		m.swap.restore(slot)
		return 0, errors.Wrapf(err, "swap in pid %d va %d", pid, va)
	}
	m.swapIn(slot, f)
	return f, nil
}

func (m *MMU) logFailure(pid PID, va VirtAddr, err error) {
	entry := m.log.WithFields(log.Fields{"pid": pid, "va": va}).WithError(err)
	switch {
	case IsExhausted(err):
		entry.Warn("page fault failed: out of memory")
	case errors.Is(err, ErrProcessNotAdmitted):
		entry.Warn("page fault for unknown process")
	default:
		entry.Error("page fault failed")
	}
}
