package kummu

import "github.com/pkg/errors"

// Check verifies the invariants tying the frame table, the swap table,
// the resident-leaf queue and the page tables together.
func (m *MMU) Check() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.check()
}

func (m *MMU) check() error {
	fail := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInconsistent, format, args...)
	}

	if m.frames.len() > 0 {
		if fi := m.frames.get(0); fi.free || fi.typ != TypeUnused {
			return fail("sentinel frame 0 is %s free=%v", fi.typ, fi.free)
		}
	}
	if m.swap.len() > 0 && m.swap.slots[0].free {
		return fail("sentinel slot 0 is free")
	}

	type owner struct {
		pid   PID
		first VirtAddr
	}
	present := make(map[owner]bool)
	queued := make(map[FrameNum]bool)
	for _, l := range m.leaves.nodes {
		if l.frame == 0 || int(l.frame) >= m.frames.len() {
			return fail("queued frame %d out of range", l.frame)
		}
		if queued[l.frame] {
			return fail("frame %d queued twice", l.frame)
		}
		queued[l.frame] = true
		if fi := m.frames.get(l.frame); fi.free || fi.typ != TypeFrame {
			return fail("queued frame %d is %s free=%v", l.frame, fi.typ, fi.free)
		}
		if l.rng != RangeOf(l.rng.First) {
			return fail("frame %d backs unaligned range %s", l.frame, l.rng)
		}
		if e := m.entry(l.parent, l.index); e != PresentEntry(l.frame) {
			return fail("frame %d parent %d[%d] is %s", l.frame, l.parent, l.index, e)
		}
		present[owner{l.pid, l.rng.First}] = true
	}
	for i := 1; i < m.frames.len(); i++ {
		fi := m.frames.get(FrameNum(i))
		if !fi.free && fi.typ == TypeFrame && !queued[FrameNum(i)] {
			return fail("data frame %d is not queued", i)
		}
	}

	swapped := make(map[owner]bool)
	for i := 1; i < m.swap.len(); i++ {
		s := m.swap.slots[i]
		if s.free {
			continue
		}
		o := owner{s.pid, s.rng.First}
		if present[o] {
			return fail("pid %d range %s is both resident and in slot %d", s.pid, s.rng, s.num)
		}
		if swapped[o] {
			return fail("pid %d range %s is in two slots", s.pid, s.rng)
		}
		swapped[o] = true
		if s.rng != RangeOf(s.rng.First) {
			return fail("slot %d backs unaligned range %s", s.num, s.rng)
		}
		if e := m.entry(s.parent, s.index); e != SwappedEntry(s.num) {
			return fail("slot %d parent %d[%d] is %s", s.num, s.parent, s.index, e)
		}
	}

	for pid, dir := range m.procs {
		if fi := m.frames.get(dir); fi.free || fi.typ != TypeDirectory {
			return fail("pid %d directory frame %d is %s free=%v", pid, dir, fi.typ, fi.free)
		}
	}
	return nil
}
