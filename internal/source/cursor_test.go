package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeekNextByte(t *testing.T) {
	c := New([]byte("ab"))
	b, ok := c.PeekByte()
	require.True(t, ok)
	assert.Equal(t, byte('a'), b)
	assert.Equal(t, byte('a'), c.NextByteUnchecked())
	assert.Equal(t, byte('b'), c.NextByteUnchecked())
	_, ok = c.PeekByte()
	assert.False(t, ok)
}

func TestNextCharASCII(t *testing.T) {
	c := New([]byte("x"))
	r, size := c.NextChar()
	assert.Equal(t, 'x', r)
	assert.Equal(t, 1, size)
	assert.True(t, c.AtEnd())
}

func TestNextCharMultiByte(t *testing.T) {
	c := New([]byte("£"))
	r, size := c.NextChar()
	assert.Equal(t, '£', r)
	assert.Equal(t, 2, size)
	assert.True(t, c.AtEnd())
}

func TestPositionRoundtrip(t *testing.T) {
	c := New([]byte("hello world"))
	p0 := c.Position()
	c.NextByteUnchecked()
	c.NextByteUnchecked()
	mid := c.Position()
	c.NextByteUnchecked()
	c.SetPosition(mid)
	assert.Equal(t, "he", c.StrFrom(p0))
}

func TestCanReadBatch(t *testing.T) {
	short := New(make([]byte, BatchSize-1))
	assert.False(t, short.CanReadBatch())
	exact := New(make([]byte, BatchSize))
	assert.True(t, exact.CanReadBatch())
}

func TestSkipASCIIRunAllASCII(t *testing.T) {
	src := []byte("abcdefghijklmnopqrstuvwxyzabcdefghij_REST")
	c := New(src)
	isIdent := func(b byte) bool {
		return b == '_' || (b >= 'a' && b <= 'z')
	}
	c.SkipASCIIRun(isIdent)
	assert.Equal(t, len("abcdefghijklmnopqrstuvwxyzabcdefghij_"), c.Position().Offset())
	rest := c.StrFromTo(c.Position(), Position{offset: len(src)})
	assert.Equal(t, "REST", rest)
}

func TestSkipASCIIRunStopsAtNonASCII(t *testing.T) {
	// 32 ASCII 'a's then a non-ASCII byte inside the next batch window.
	src := append([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"), []byte("£")...)
	c := New(src)
	c.SkipASCIIRun(func(b byte) bool { return true })
	assert.Equal(t, 32, c.Position().Offset())
}

func TestSkipASCIIRunStopsAtPredicateFailure(t *testing.T) {
	src := []byte("aaa.bbb")
	c := New(src)
	c.SkipASCIIRun(func(b byte) bool { return b != '.' })
	assert.Equal(t, 3, c.Position().Offset())
}

func TestPeekByteAtBounds(t *testing.T) {
	c := New([]byte("ab"))
	b, ok := c.PeekByteAt(1)
	require.True(t, ok)
	assert.Equal(t, byte('b'), b)
	_, ok = c.PeekByteAt(5)
	assert.False(t, ok)
	_, ok = c.PeekByteAt(-1)
	assert.False(t, ok)
}
