package kummu

import (
	"testing"

	assertion "github.com/stretchr/testify/assert"
)

func TestFrameTableLowestFirst(t *testing.T) {
	assert := assertion.New(t)
	ft := newFrameTable(4)
	assert.Equal(3, ft.countFree())
	assert.False(ft.get(0).free)

	for want := FrameNum(1); want <= 3; want++ {
		f, ok := ft.findFree(TypeTable)
		assert.True(ok)
		assert.Equal(want, f)
		assert.Equal(TypeTable, ft.get(f).typ)
		assert.False(ft.get(f).free)
	}
	_, ok := ft.findFree(TypeFrame)
	assert.False(ok)
	assert.Equal(0, ft.countFree())
	assert.Equal(TypeUnused, ft.get(0).typ)

	ft.retype(2, TypeFrame)
	assert.Equal(TypeFrame, ft.get(2).typ)
}

func TestFrameTableEmpty(t *testing.T) {
	assert := assertion.New(t)
	for _, n := range []int{0, 1} {
		ft := newFrameTable(n)
		_, ok := ft.findFree(TypeDirectory)
		assert.False(ok)
		assert.Equal(0, ft.countFree())
	}
}
