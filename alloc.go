package kummu

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// addPage returns a zeroed frame of type typ. When no frame is free it
// evicts the oldest resident leaf to swap. Nothing is changed on failure.
func (m *MMU) addPage(typ PageType) (FrameNum, error) {
	if f, ok := m.frames.findFree(typ); ok {
		m.zero(f)
		return f, nil
	}
	victim, ok := m.leaves.dequeue()
	if !ok {
		return 0, errors.Wrapf(ErrOutOfMemory, "allocate %s page", typ)
	}
	slot, ok := m.swap.findFree()
	if !ok {
		m.leaves.pushFront(victim)
		return 0, errors.Wrapf(ErrSwapFull, "evict frame %d for %s page", victim.frame, typ)
	}
	if err := m.swapOut(victim, slot); err != nil {
		m.leaves.pushFront(victim)
		return 0, err
	}
	m.frames.retype(victim.frame, typ)
	return victim.frame, nil
}

// swapOut moves a resident leaf into slot s and leaves its frame zeroed.
func (m *MMU) swapOut(victim leaf, s SlotNum) error {
	var img Page
	copy(img[:], m.page(victim.frame))
	if err := m.swap.store(s, victim, img); err != nil {
		return err
	}
	m.zero(victim.frame)
	m.setEntry(victim.parent, victim.index, SwappedEntry(s))
	m.stats.swapOuts++
	m.log.WithFields(log.Fields{
		"pid":   victim.pid,
		"range": victim.rng,
		"frame": victim.frame,
		"slot":  s,
	}).Debug("swap out")
	return nil
}

// swapIn loads a detached slot copy into frame f and makes it resident.
func (m *MMU) swapIn(s swapSlot, f FrameNum) {
	copy(m.page(f), s.image[:])
	m.leaves.enqueue(leaf{
		frame:  f,
		parent: s.parent,
		index:  s.index,
		pid:    s.pid,
		rng:    s.rng,
	})
	m.setEntry(s.parent, s.index, PresentEntry(f))
	m.stats.swapIns++
	m.log.WithFields(log.Fields{
		"pid":   s.pid,
		"range": s.rng,
		"frame": f,
		"slot":  s.num,
	}).Debug("swap in")
}
