package kummu

// leaf describes a resident data frame and where it is linked from.
type leaf struct {
	frame  FrameNum
	parent FrameNum // table page holding the entry
	index  int      // entry index inside parent
	pid    PID
	rng    Range
}

// leafQueue is the FIFO of resident data frames. Only its members are
// eviction candidates; directory and table pages never enter it.
type leafQueue struct {
	nodes []leaf
}

func (q *leafQueue) enqueue(l leaf) {
	q.nodes = append(q.nodes, l)
}

// dequeue removes the longest-resident leaf.
func (q *leafQueue) dequeue() (leaf, bool) {
	if len(q.nodes) == 0 {
		return leaf{}, false
	}
	l := q.nodes[0]
	q.nodes[0] = leaf{}
	q.nodes = q.nodes[1:]
	return l, true
}

// pushFront puts back a leaf taken by dequeue when the eviction that
// needed it could not go ahead.
func (q *leafQueue) pushFront(l leaf) {
	q.nodes = append(q.nodes, leaf{})
	copy(q.nodes[1:], q.nodes)
	q.nodes[0] = l
}

func (q *leafQueue) len() int { return len(q.nodes) }
