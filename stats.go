package kummu

type counters struct {
	faults     uint64
	swapIns    uint64
	swapOuts   uint64
	admissions uint64
}

// Stats is a point-in-time snapshot of the simulator.
type Stats struct {
	Faults     uint64
	SwapIns    uint64
	SwapOuts   uint64
	Admissions uint64

	Frames       int // usable frames, sentinel excluded
	FreeFrames   int
	FramesByType map[PageType]int

	ResidentLeaves int

	Slots     int // usable slots, sentinel excluded
	FreeSlots int

	Processes int
}

func (m *MMU) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		Faults:         m.stats.faults,
		SwapIns:        m.stats.swapIns,
		SwapOuts:       m.stats.swapOuts,
		Admissions:     m.stats.admissions,
		FreeFrames:     m.frames.countFree(),
		FramesByType:   make(map[PageType]int),
		ResidentLeaves: m.leaves.len(),
		FreeSlots:      m.swap.countFree(),
		Processes:      len(m.procs),
	}
	if n := m.frames.len(); n > 0 {
		s.Frames = n - 1
	}
	if n := m.swap.len(); n > 0 {
		s.Slots = n - 1
	}
	for i := 1; i < m.frames.len(); i++ {
		if fi := m.frames.get(FrameNum(i)); !fi.free {
			s.FramesByType[fi.typ]++
		}
	}
	return s
}
