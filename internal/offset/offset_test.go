package offset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPureASCIIHasNoTable(t *testing.T) {
	tbl := Build([]byte("hello world"))
	assert.Nil(t, tbl)
	assert.True(t, Empty(tbl))
}

// TestBuildMixedPlaneString builds the table for a source mixing ASCII, a
// BMP character, and an astral character: "_£_🤨_" (bytes 5F C2 A3 5F F0 9F
// A4 A8 5F) must produce exactly the entries (0,0), (2,1), (5,3).
func TestBuildMixedPlaneString(t *testing.T) {
	src := []byte("_£_🤨_")
	tbl := Build(src)
	require.NotNil(t, tbl)
	assert.Equal(t, []Translation{
		{UTF8Offset: 0, UTF16Difference: 0},
		{UTF8Offset: 2, UTF16Difference: 1},
		{UTF8Offset: 5, UTF16Difference: 3},
	}, tbl.Entries())
}

// TestConverterMixedPlaneString converts every character-boundary UTF-8 offset
// in "_£_🤨_" to UTF-16. Boundaries 8 and 9 land on UTF-16 offsets 5 and 6:
// 1+1+1+2 = 5 units consumed by "_£_🤨" (🤨 is outside the BMP and costs a
// surrogate pair), then +1 for the trailing "_". See DESIGN.md for the
// counting notes.
func TestConverterMixedPlaneString(t *testing.T) {
	src := []byte("_£_🤨_")
	tbl := Build(src)
	conv := NewConverter(tbl)

	cases := []struct {
		utf8  uint32
		utf16 uint32
	}{
		{0, 0},
		{1, 1},
		{3, 2},
		{4, 3},
		{8, 5},
		{9, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.utf16, conv.ToUTF16(tc.utf8), "utf8 offset %d", tc.utf8)
	}
}

func TestConverterPureASCIIIsIdentity(t *testing.T) {
	conv := NewConverter(Build([]byte("plain ascii text")))
	assert.Equal(t, uint32(5), conv.ToUTF16(5))
}

func TestConverterOutOfOrderQueries(t *testing.T) {
	src := []byte("_£_🤨_")
	conv := NewConverter(Build(src))
	// Exercise the slow path by querying backward after priming idx forward.
	assert.Equal(t, uint32(3), conv.ToUTF16(4))
	assert.Equal(t, uint32(1), conv.ToUTF16(1))
	assert.Equal(t, uint32(2), conv.ToUTF16(3))
}

func TestConverterLongTableForcesBinarySearch(t *testing.T) {
	// Build a source with far more than linearProbeLimit non-ASCII runs so a
	// query jumping many entries ahead must fall back to binary search.
	src := make([]byte, 0, 3*64)
	for i := 0; i < 64; i++ {
		src = append(src, []byte("£")...)
	}
	tbl := Build(src)
	require.NotNil(t, tbl)
	require.Greater(t, len(tbl.Entries()), linearProbeLimit*2)

	conv := NewConverter(tbl)
	// Query the very last boundary directly, without warming up idx.
	last := uint32(len(src))
	got := conv.ToUTF16(last)
	assert.Equal(t, uint32(64), got)
}
