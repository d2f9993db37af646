package kummu

import (
	"testing"

	"github.com/pkg/errors"
	assertion "github.com/stretchr/testify/assert"
)

func TestSwapTable(t *testing.T) {
	assert := assertion.New(t)
	st := newSwapTable(3, newMemDevice(segmentsFor(3)), SnappyCompress, SnappyDeCompress)
	assert.Equal(2, st.countFree())
	assert.False(st.slots[0].free)

	s, ok := st.findFree()
	assert.True(ok)
	assert.Equal(SlotNum(1), s)

	owner := leaf{frame: 5, parent: 3, index: 2, pid: 7, rng: RangeOf(9)}
	assert.NoError(st.store(s, owner, Page{1, 2, 3, 4}))
	assert.Equal(1, st.countFree())

	s, ok = st.findFree()
	assert.True(ok)
	assert.Equal(SlotNum(2), s)

	_, err := st.find(8, 9)
	assert.True(errors.Is(err, ErrSwapSlotMissing))
	_, err = st.find(7, 12)
	assert.True(errors.Is(err, ErrSwapSlotMissing))

	cp, err := st.find(7, 11)
	assert.NoError(err)
	assert.Equal(SlotNum(1), cp.num)
	assert.Equal(FrameNum(3), cp.parent)
	assert.Equal(2, cp.index)
	assert.Equal(Range{First: 8, Last: 11}, cp.rng)
	assert.Equal(Page{1, 2, 3, 4}, cp.image)
	assert.True(st.slots[1].free)

	// a released slot never matches again
	_, err = st.find(7, 9)
	assert.True(errors.Is(err, ErrSwapSlotMissing))

	st.restore(cp)
	assert.False(st.slots[1].free)
	cp, err = st.find(7, 8)
	assert.NoError(err)
	assert.Equal(SlotNum(1), cp.num)
}

func TestSwapTableNoSlots(t *testing.T) {
	assert := assertion.New(t)
	for _, n := range []int{0, 1} {
		st := newSwapTable(n, newMemDevice(segmentsFor(n)), nil, nil)
		_, ok := st.findFree()
		assert.False(ok)
	}
}

func TestMemDevice(t *testing.T) {
	assert := assertion.New(t)
	d := newMemDevice(2)
	data, err := d.ReadSegment(1)
	assert.NoError(err)
	assert.Nil(data)
	_, err = d.ReadSegment(2)
	assert.Error(err)
	assert.Error(d.WriteSegment(2, []byte{1}))
	assert.NoError(d.WriteSegment(1, []byte{1, 2}))
	data, err = d.ReadSegment(1)
	assert.NoError(err)
	assert.Equal([]byte{1, 2}, data)
	assert.NoError(d.Close())
}

func TestSegmentLayout(t *testing.T) {
	assert := assertion.New(t)
	assert.Equal(0, segmentsFor(0))
	assert.Equal(1, segmentsFor(1))
	assert.Equal(1, segmentsFor(segmentSlots))
	assert.Equal(MaxSlots/segmentSlots, segmentsFor(MaxSlots))

	seg, off := segmentOf(1)
	assert.Equal(0, seg)
	assert.Equal(PageSize, off)
	seg, off = segmentOf(segmentSlots + 2)
	assert.Equal(1, seg)
	assert.Equal(2*PageSize, off)
}

func TestSwapSegmentsCompressed(t *testing.T) {
	assert := assertion.New(t)
	for _, alg := range []CompressAlgorithm{CompSnappy, CompLz4} {
		c, d, err := alg.codec()
		assert.NoError(err)
		dev := newMemDevice(segmentsFor(MaxSlots))
		st := newSwapTable(MaxSlots, dev, c, d)

		// slot 33 lands in the second segment
		for _, n := range []SlotNum{1, 2, segmentSlots + 1} {
			owner := leaf{frame: 4, parent: 3, index: int(n) % PageSize, pid: 1, rng: RangeOf(VirtAddr(n) * PageSize)}
			assert.NoError(st.store(n, owner, Page{byte(n), 0xee, 0xee, byte(n)}), alg.String())
		}
		for i := 0; i < 2; i++ {
			data, err := dev.ReadSegment(i)
			assert.NoError(err)
			assert.Equal(byte(imageCompressed), data[0], "%s segment %d", alg, i)
			assert.True(len(data) < segmentSize, "%s segment %d is %d bytes", alg, i, len(data))
		}
		data, err := dev.ReadSegment(2)
		assert.NoError(err)
		assert.Nil(data)

		for _, n := range []SlotNum{1, 2, segmentSlots + 1} {
			cp, err := st.find(1, VirtAddr(n)*PageSize)
			assert.NoError(err, alg.String())
			assert.Equal(n, cp.num)
			assert.Equal(Page{byte(n), 0xee, 0xee, byte(n)}, cp.image, alg.String())
		}
	}
}

func TestSwapSegmentCorrupt(t *testing.T) {
	assert := assertion.New(t)
	dev := newMemDevice(1)
	st := newSwapTable(4, dev, nil, nil)
	assert.NoError(st.store(1, leaf{pid: 1, rng: RangeOf(0)}, Page{1, 2, 3, 4}))

	data, _ := dev.ReadSegment(0)
	data[7] ^= 0xff
	_, err := st.find(1, 0)
	assert.True(errors.Is(err, ErrSwapCorrupt))
	assert.False(st.slots[1].free)
}
