package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

func TestAllocZeroed(t *testing.T) {
	a := New()
	p := Alloc[point](a)
	require.NotNil(t, p)
	assert.Equal(t, point{}, *p)
	p.X = 7
	assert.Equal(t, int32(7), p.X)
}

func TestAllocDistinctAddresses(t *testing.T) {
	a := New()
	p1 := Alloc[point](a)
	p2 := Alloc[point](a)
	assert.NotSame(t, p1, p2)
	p1.X = 1
	p2.X = 2
	assert.Equal(t, int32(1), p1.X)
	assert.Equal(t, int32(2), p2.X)
}

func TestAllocSliceIsWritable(t *testing.T) {
	a := New()
	s := AllocSlice[int](a, 4)
	require.Len(t, s, 4)
	for i := range s {
		s[i] = i * i
	}
	assert.Equal(t, []int{0, 1, 4, 9}, s)
}

func TestGrowAcrossBlocks(t *testing.T) {
	a := New()
	const n = 100000
	ptrs := make([]*point, n)
	for i := range ptrs {
		ptrs[i] = Alloc[point](a)
		ptrs[i].X = int32(i)
	}
	for i, p := range ptrs {
		assert.Equal(t, int32(i), p.X)
	}
	assert.Greater(t, a.Bytes(), blockLen*8)
}

func TestReset(t *testing.T) {
	a := New()
	Alloc[point](a)
	Alloc[point](a)
	assert.Equal(t, 2, a.NodeCount())
	a.Reset()
	assert.Equal(t, 0, a.NodeCount())
}
