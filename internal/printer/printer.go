package printer

import "strings"

// Options are the output knobs, mirroring the configuration file's
// formatting section.
type Options struct {
	PrintWidth int
	TabWidth   int
	UseTabs    bool
	LineEnding string // "\n", "\r\n", or "\r"

	// Style options, consumed by codegen (InsertFinalNewline is applied by
	// Print itself).
	SingleQuote            bool
	JSXSingleQuote         bool
	Semi                   bool
	BracketSpacing         bool
	BracketSameLine        bool
	ArrowParensAlways      bool
	TrailingComma          string // "all", "es5", "none"
	QuoteProps             string // "as-needed", "consistent", "preserve"
	SingleAttributePerLine bool
	InsertFinalNewline     bool
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{
		PrintWidth:         80,
		TabWidth:           2,
		LineEnding:         "\n",
		Semi:               true,
		BracketSpacing:     true,
		ArrowParensAlways:  true,
		TrailingComma:      "all",
		QuoteProps:         "as-needed",
		InsertFinalNewline: true,
	}
}

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type frame struct {
	indent int // in spaces
	mode   mode
	doc    Doc
}

// Print renders the IR to text. The walk keeps an explicit stack of
// (indent, mode, doc) frames; each group is measured flat against the
// remaining width and broken only if it does not fit.
func Print(d Doc, opts Options) string {
	propagateBreaks(d)

	var sb strings.Builder
	var suffixes []frame
	pos := 0 // column on the current line

	newline := opts.LineEnding
	if newline == "" {
		newline = "\n"
	}

	stack := []frame{{indent: 0, mode: modeBreak, doc: d}}
	pop := func() frame {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f
	}
	push := func(f frame) { stack = append(stack, f) }

	emitNewline := func(indentTo int) {
		sb.WriteString(newline)
		if opts.UseTabs {
			tabs := indentTo / opts.TabWidth
			rem := indentTo % opts.TabWidth
			sb.WriteString(strings.Repeat("\t", tabs))
			sb.WriteString(strings.Repeat(" ", rem))
		} else {
			sb.WriteString(strings.Repeat(" ", indentTo))
		}
		pos = indentTo
	}

	for len(stack) > 0 {
		f := pop()
		switch t := f.doc.(type) {
		case Text:
			sb.WriteString(string(t))
			pos += len(t)

		case Concat:
			for i := len(t) - 1; i >= 0; i-- {
				push(frame{indent: f.indent, mode: f.mode, doc: t[i]})
			}

		case Label:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				push(frame{indent: f.indent, mode: f.mode, doc: t.Docs[i]})
			}

		case Line:
			if f.mode == modeFlat && t.Kind != LineHard {
				if t.Kind == LineSpace {
					sb.WriteByte(' ')
					pos++
				}
				break
			}
			// Flush pending line suffixes before the real newline.
			if len(suffixes) > 0 {
				push(f) // retry the line after the suffixes
				for i := len(suffixes) - 1; i >= 0; i-- {
					push(suffixes[i])
				}
				suffixes = nil
				break
			}
			emitNewline(f.indent)

		case *Group:
			m := modeFlat
			if t.Break {
				m = modeBreak
			} else if !fits(t.Docs, opts.PrintWidth-pos) {
				m = modeBreak
			}
			for i := len(t.Docs) - 1; i >= 0; i-- {
				push(frame{indent: f.indent, mode: m, doc: t.Docs[i]})
			}

		case Indent:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				push(frame{indent: f.indent + opts.TabWidth, mode: f.mode, doc: t.Docs[i]})
			}

		case Align:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				push(frame{indent: f.indent + t.N, mode: f.mode, doc: t.Docs[i]})
			}

		case Dedent:
			ind := f.indent - opts.TabWidth
			if ind < 0 {
				ind = 0
			}
			for i := len(t.Docs) - 1; i >= 0; i-- {
				push(frame{indent: ind, mode: f.mode, doc: t.Docs[i]})
			}

		case Fill:
			// Greedy packing: print content items flat while they fit,
			// breaking at separators otherwise.
			rest := t.Docs
			for len(rest) > 0 {
				item := rest[0]
				if fits([]Doc{item}, opts.PrintWidth-pos) {
					push(frame{indent: f.indent, mode: modeFlat, doc: item})
				} else {
					push(frame{indent: f.indent, mode: modeBreak, doc: item})
				}
				if len(rest) > 1 {
					sep := rest[1]
					content := rest[2:]
					// Break the separator if the next content would not fit
					// after a flat separator.
					flatOK := len(content) > 0 && fits([]Doc{sep, content[0]}, opts.PrintWidth-pos)
					var frames []frame
					if flatOK {
						frames = append(frames, frame{indent: f.indent, mode: modeFlat, doc: sep})
					} else {
						frames = append(frames, frame{indent: f.indent, mode: modeBreak, doc: sep})
					}
					// Re-queue the remainder as a Fill so packing continues
					// with updated positions.
					if len(content) > 0 {
						frames = append(frames, frame{indent: f.indent, mode: f.mode, doc: Fill{Docs: content}})
					}
					for i := len(frames) - 1; i >= 0; i-- {
						push(frames[i])
					}
				}
				break
			}

		case IfBreak:
			var chosen Doc
			if f.mode == modeBreak {
				chosen = t.Broken
			} else {
				chosen = t.Flat
			}
			if chosen != nil {
				push(frame{indent: f.indent, mode: f.mode, doc: chosen})
			}

		case LineSuffix:
			for _, c := range t.Docs {
				suffixes = append(suffixes, frame{indent: f.indent, mode: f.mode, doc: c})
			}

		case LineSuffixBoundary:
			if len(suffixes) > 0 {
				push(frame{indent: f.indent, mode: f.mode, doc: Line{Kind: LineHard}})
			}

		case BreakParent:
			// handled by propagation; emits nothing
		}
	}

	// Any suffixes left at EOF flush at the end.
	for _, sf := range suffixes {
		if txt, ok := sf.doc.(Text); ok {
			sb.WriteString(string(txt))
		}
	}

	out := sb.String()
	if opts.InsertFinalNewline && out != "" && !strings.HasSuffix(out, newline) {
		out += newline
	}
	return out
}

// fits measures whether docs print flat within width. The scan is bounded:
// it stops as soon as the remaining width goes negative, so measurement
// cost is O(width), not O(subtree).
func fits(docs []Doc, width int) bool {
	if width < 0 {
		return false
	}
	type mframe struct {
		doc  Doc
		mode mode
	}
	stack := make([]mframe, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		stack = append(stack, mframe{doc: docs[i], mode: modeFlat})
	}
	rem := width
	for len(stack) > 0 && rem >= 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t := f.doc.(type) {
		case Text:
			rem -= len(t)
		case Concat:
			for i := len(t) - 1; i >= 0; i-- {
				stack = append(stack, mframe{doc: t[i], mode: f.mode})
			}
		case Label:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				stack = append(stack, mframe{doc: t.Docs[i], mode: f.mode})
			}
		case Line:
			switch t.Kind {
			case LineHard:
				// A hard line ends the current line: everything after it
				// cannot overflow this one.
				return true
			case LineSpace:
				rem--
			}
		case *Group:
			m := modeFlat
			if t.Break {
				// A group already known to break ends the line too.
				return true
			}
			for i := len(t.Docs) - 1; i >= 0; i-- {
				stack = append(stack, mframe{doc: t.Docs[i], mode: m})
			}
		case Indent:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				stack = append(stack, mframe{doc: t.Docs[i], mode: f.mode})
			}
		case Align:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				stack = append(stack, mframe{doc: t.Docs[i], mode: f.mode})
			}
		case Dedent:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				stack = append(stack, mframe{doc: t.Docs[i], mode: f.mode})
			}
		case Fill:
			for i := len(t.Docs) - 1; i >= 0; i-- {
				stack = append(stack, mframe{doc: t.Docs[i], mode: f.mode})
			}
		case IfBreak:
			if t.Flat != nil {
				stack = append(stack, mframe{doc: t.Flat, mode: f.mode})
			}
		case LineSuffix, LineSuffixBoundary, BreakParent:
			// zero width here
		}
	}
	return rem >= 0
}
