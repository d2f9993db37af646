package kummu

type frameInfo struct {
	typ  PageType
	free bool
}

// frameTable is the sole record of which physical frames are free.
// Frame 0 is a sentinel and is never free.
type frameTable struct {
	frames []frameInfo
}

func newFrameTable(n int) *frameTable {
	t := &frameTable{frames: make([]frameInfo, n)}
	for i := 1; i < n; i++ {
		t.frames[i] = frameInfo{typ: TypeUnused, free: true}
	}
	return t
}

// findFree claims the lowest-numbered free frame for typ.
func (t *frameTable) findFree(typ PageType) (FrameNum, bool) {
	for i := 1; i < len(t.frames); i++ {
		if t.frames[i].free {
			t.frames[i] = frameInfo{typ: typ, free: false}
			return FrameNum(i), true
		}
	}
	return 0, false
}

func (t *frameTable) retype(f FrameNum, typ PageType) {
	t.frames[f].typ = typ
}

func (t *frameTable) get(f FrameNum) frameInfo { return t.frames[f] }

func (t *frameTable) len() int { return len(t.frames) }

func (t *frameTable) countFree() (n int) {
	for i := 1; i < len(t.frames); i++ {
		if t.frames[i].free {
			n++
		}
	}
	return
}
