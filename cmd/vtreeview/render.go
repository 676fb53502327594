package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// children lists the entries of a sequence or mapping container. It
// returns nil for anything else, marking v as a leaf.
func children(b *builder.Builder, v value.V) []entry {
	switch b.TypeOf(v) {
	case value.KindSequence:
		items := b.SequenceItems(v)
		out := make([]entry, len(items))

		for i, it := range items {
			out[i] = entry{label: strconv.Itoa(i), val: it}
		}

		return out

	case value.KindMapping:
		pairs := b.MappingPairs(v)
		out := make([]entry, 0, len(pairs)/2)

		for i := 0; i < len(pairs); i += 2 {
			out = append(out, entry{label: scalarPreview(b, pairs[i]), val: pairs[i+1]})
		}

		return out

	default:
		return nil
	}
}

// scalarPreview renders a leaf value.V for display. Containers get a
// count summary rather than their full contents.
func scalarPreview(b *builder.Builder, v value.V) string {
	switch b.TypeOf(v) {
	case value.KindInvalid:
		return "<invalid>"
	case value.KindNull:
		return "null"
	case value.KindBool:
		return strconv.FormatBool(value.UnpackBool(v))
	case value.KindInt:
		return strconv.FormatInt(b.Int64(v), 10)
	case value.KindFloat:
		return strconv.FormatFloat(b.Float64(v), 'g', -1, 64)
	case value.KindString:
		return strconv.Quote(b.Str(v))
	case value.KindSequence:
		n := len(b.SequenceItems(v))

		return fmt.Sprintf("[%d item%s]", n, plural(n))
	case value.KindMapping:
		n := len(b.MappingPairs(v)) / 2

		return fmt.Sprintf("{%d key%s}", n, plural(n))
	case value.KindAlias:
		return "<alias>"
	default:
		return "<unknown>"
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}

// View renders the breadcrumb, the current frame's entries with the
// cursor marked, and a help footer.
func (m *model) View() tea.View {
	var out strings.Builder

	fmt.Fprintf(&out, "vtree: %d level%s deep (%d entries)\n\n",
		len(m.stack), plural(len(m.stack)), len(m.cur.entries))

	if len(m.cur.entries) == 0 {
		fmt.Fprintf(&out, "  %s\n", scalarPreview(m.b, m.cur.container))
	}

	visible := m.visibleRows()
	m.scrollToCursor(visible)

	end := m.cur.offset + visible
	if end > len(m.cur.entries) {
		end = len(m.cur.entries)
	}

	for i := m.cur.offset; i < end; i++ {
		e := m.cur.entries[i]

		marker := "  "
		if i == m.cur.cursor {
			marker = "> "
		}

		fmt.Fprintf(&out, "%s%s: %s\n", marker, e.label, valueSummary(m.b, e.val))
	}

	out.WriteString("\n↑/↓ move  →/enter open  ←/backspace back  q quit\n")

	v := tea.NewView(out.String())
	v.AltScreen = true

	return v
}

// valueSummary renders an entry's value for its row. It is scalarPreview
// unchanged: containers show as a one-line count summary rather than a
// recursive dump, and strings keep their quoting.
func valueSummary(b *builder.Builder, v value.V) string {
	return scalarPreview(b, v)
}

func (m *model) visibleRows() int {
	// Reserve space for the breadcrumb, blank line, and footer.
	const chrome = 4

	rows := m.height - chrome
	if rows < 1 {
		rows = 10
	}

	return rows
}

func (m *model) scrollToCursor(visible int) {
	if m.cur.cursor < m.cur.offset {
		m.cur.offset = m.cur.cursor
	}

	if m.cur.cursor >= m.cur.offset+visible {
		m.cur.offset = m.cur.cursor - visible + 1
	}

	if m.cur.offset < 0 {
		m.cur.offset = 0
	}
}
