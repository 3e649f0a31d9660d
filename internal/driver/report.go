package driver

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/width"

	"github.com/oxhq/jscore/internal/diagnostic"
	"github.com/oxhq/jscore/internal/offset"
	"github.com/oxhq/jscore/internal/token"
)

// Reporter renders diagnostics and the end-of-run summary. Colors engage
// only on a real terminal; redirected output stays plain.
type Reporter struct {
	out   io.Writer
	color bool

	errColor  *color.Color
	warnColor *color.Color
	infoColor *color.Color
	dimColor  *color.Color
}

// NewReporter builds a reporter for out. Color is auto-detected when out
// is os.Stdout/os.Stderr.
func NewReporter(out io.Writer) *Reporter {
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	r := &Reporter{
		out:       out,
		color:     useColor,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		infoColor: color.New(color.FgCyan),
		dimColor:  color.New(color.Faint),
	}
	if !useColor {
		r.errColor.DisableColor()
		r.warnColor.DisableColor()
		r.infoColor.DisableColor()
		r.dimColor.DisableColor()
	}
	return r
}

// position converts a byte offset to 1-based line and UTF-16 column. The
// column unit matches what editors and the LSP expect, which is why the
// offset table is consulted rather than counting bytes.
func position(src []byte, tbl *offset.Table, off uint32) (line, col int) {
	line = 1
	lineStart := uint32(0)
	for i := uint32(0); i < off && int(i) < len(src); i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	conv := offset.NewConverter(tbl)
	col = int(conv.ToUTF16(off)-conv.ToUTF16(lineStart)) + 1
	return line, col
}

// File reports one file's diagnostics, already sorted by the bag.
func (r *Reporter) File(path string, src []byte, diags []diagnostic.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	tbl := offset.Build(src)
	for _, d := range diags {
		span := d.Primary()
		line, col := position(src, tbl, span.Start)

		var sev string
		switch d.Severity {
		case diagnostic.SeverityError:
			sev = r.errColor.Sprint("error")
		case diagnostic.SeverityWarning:
			sev = r.warnColor.Sprint("warning")
		default:
			sev = r.infoColor.Sprint("info")
		}
		code := ""
		if d.Code != "" {
			code = r.dimColor.Sprintf(" [%s]", d.Code)
		}
		fmt.Fprintf(r.out, "%s:%d:%d: %s: %s%s\n", path, line, col, sev, d.Message, code)
		for _, label := range d.Labels[1:] {
			l2, c2 := position(src, tbl, label.Span.Start)
			fmt.Fprintf(r.out, "  %s\n", r.dimColor.Sprintf("%s:%d:%d: %s", path, l2, c2, label.Note))
		}
		if d.Help != "" {
			fmt.Fprintf(r.out, "  %s\n", r.dimColor.Sprint("help: "+d.Help))
		}
		r.snippet(src, span)
	}
}

// snippet prints the offending line with a caret run under the span.
func (r *Reporter) snippet(src []byte, span token.Span) {
	if int(span.Start) >= len(src) {
		return
	}
	lineStart := int(span.Start)
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := int(span.Start)
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}
	fmt.Fprintf(r.out, "  | %s\n", src[lineStart:lineEnd])

	// The caret aligns in display columns, not bytes: multi-byte and
	// East-Asian-wide characters before the span shift it.
	caretStart := displayWidth(string(src[lineStart:span.Start]))
	spanEnd := int(span.End)
	if spanEnd > lineEnd {
		spanEnd = lineEnd
	}
	caretLen := displayWidth(string(src[span.Start:spanEnd]))
	if caretLen < 1 {
		caretLen = 1
	}
	fmt.Fprintf(r.out, "  | %*s%s\n", caretStart, "", r.errColor.Sprint(repeat('^', caretLen)))
}

// displayWidth estimates terminal columns: wide and fullwidth runes
// occupy two cells, the rest one.
func displayWidth(s string) int {
	cols := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cols += 2
		default:
			cols++
		}
	}
	return cols
}

func repeat(b byte, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}
	return string(buf)
}

// Summary prints the end-of-run stats line: files, bytes processed,
// duration, and diagnostic counts, plus the per-plugin rule tally when
// rules ran.
func (r *Reporter) Summary(results []FileResult, bytesProcessed int64, elapsed time.Duration, byPlugin map[string][]string) {
	files := len(results)
	var errs, warns int
	for _, res := range results {
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case diagnostic.SeverityError:
				errs++
			case diagnostic.SeverityWarning:
				warns++
			}
		}
	}
	fmt.Fprintf(r.out, "Checked %d file(s), %s in %s: ",
		files, humanize.Bytes(uint64(bytesProcessed)), elapsed.Round(time.Millisecond))
	if errs == 0 && warns == 0 {
		fmt.Fprintln(r.out, "no issues found.")
	} else {
		fmt.Fprintf(r.out, "%s, %s.\n",
			r.errColor.Sprintf("%d error(s)", errs),
			r.warnColor.Sprintf("%d warning(s)", warns))
	}

	if len(byPlugin) > 0 {
		tags := make([]string, 0, len(byPlugin))
		for tag := range byPlugin {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			fmt.Fprintf(r.out, "  %s\n", r.dimColor.Sprintf("%s: %d rule(s)", tag, len(byPlugin[tag])))
		}
	}
}
