package kummu

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestLeafQueueFIFO(t *testing.T) {
	assert := assertion.New(t)
	var q leafQueue

	_, ok := q.dequeue()
	assert.False(ok)

	for f := FrameNum(1); f <= 3; f++ {
		q.enqueue(leaf{frame: f, rng: RangeOf(VirtAddr(f) * PageSize)})
	}
	assert.Equal(3, q.len())

	l, ok := q.dequeue()
	assert.True(ok)
	assert.Equal(FrameNum(1), l.frame)

	q.pushFront(l)
	assert.Equal(3, q.len())

	for f := FrameNum(1); f <= 3; f++ {
		l, ok := q.dequeue()
		assert.True(ok)
		assert.Equal(f, l.frame)
	}
	_, ok = q.dequeue()
	assert.False(ok)
	assert.Equal(0, q.len())
}

func TestLeafQueuePushFrontEmpty(t *testing.T) {
	assert := assertion.New(t)
	var q leafQueue
	q.pushFront(leaf{frame: 7})
	q.enqueue(leaf{frame: 8})
	l, _ := q.dequeue()
	assert.Equal(FrameNum(7), l.frame)
	l, _ = q.dequeue()
	assert.Equal(FrameNum(8), l.frame)
}
