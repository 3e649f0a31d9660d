package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/diagnostic"
	"github.com/oxhq/jscore/internal/token"
)

func fixWith(span token.Span, text string, unsafe bool) RuleDiagnostic {
	f := &diagnostic.Fix{Unsafe: unsafe}
	f.AddEdit(span, text)
	d := diagnostic.New(diagnostic.SeverityWarning, "t", "m", span)
	d.Fix = f
	return RuleDiagnostic{Diagnostic: d}
}

func TestOverlapPredicate(t *testing.T) {
	a := token.Span{Start: 0, End: 4}
	b := token.Span{Start: 4, End: 8}
	c := token.Span{Start: 2, End: 6}
	assert.False(t, diagnostic.Overlaps(a, b), "touching spans do not overlap")
	assert.True(t, diagnostic.Overlaps(a, c))
	assert.True(t, diagnostic.Overlaps(c, b))
}

func TestSelectFixesDropsOverlaps(t *testing.T) {
	diags := []RuleDiagnostic{
		fixWith(token.Span{Start: 10, End: 20}, "x", false),
		fixWith(token.Span{Start: 15, End: 25}, "y", false), // overlaps first: dropped
		fixWith(token.Span{Start: 20, End: 30}, "z", false), // touches first: kept
	}
	accepted := SelectFixes(diags)
	require.Len(t, accepted, 2)
	assert.Equal(t, "x", accepted[0].Edits[0].Text)
	assert.Equal(t, "z", accepted[1].Edits[0].Text)
}

func TestSelectFixesPrefersSafeAtSameStart(t *testing.T) {
	diags := []RuleDiagnostic{
		fixWith(token.Span{Start: 5, End: 9}, "unsafe", true),
		fixWith(token.Span{Start: 5, End: 8}, "safe", false),
	}
	accepted := SelectFixes(diags)
	require.Len(t, accepted, 1)
	assert.Equal(t, "safe", accepted[0].Edits[0].Text)
}

func TestApplyFixesRightToLeft(t *testing.T) {
	src := []byte("aaa bbb ccc")
	diags := []RuleDiagnostic{
		fixWith(token.Span{Start: 0, End: 3}, "AAA", false),
		fixWith(token.Span{Start: 8, End: 11}, "CCCC", false),
	}
	out := ApplyFixes(src, SelectFixes(diags))
	assert.Equal(t, "AAA bbb CCCC", string(out))
}

func TestApplyFixesDeletion(t *testing.T) {
	src := []byte("keep;drop;keep2;")
	diags := []RuleDiagnostic{
		fixWith(token.Span{Start: 5, End: 10}, "", false),
	}
	out := ApplyFixes(src, SelectFixes(diags))
	assert.Equal(t, "keep;keep2;", string(out))
}
