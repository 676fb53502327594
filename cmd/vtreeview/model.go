package main

import (
	tea "charm.land/bubbletea/v2"

	"github.com/macropower/vtree/builder"
	"github.com/macropower/vtree/value"
)

// entry is one row of a sequence or mapping as shown to the user: a label
// (an index or a rendered key) paired with the child value it leads to.
type entry struct {
	label string
	val   value.V
}

// frame is one level of the navigation stack: the container being browsed,
// its entries, and where the cursor and scroll offset were left when the
// user descended further.
type frame struct {
	container value.V
	entries   []entry
	cursor    int
	offset    int
}

// model is the bubbletea model for the tree browser. stack holds every
// ancestor frame above the one currently displayed; descending pushes,
// going back pops.
type model struct {
	b      *builder.Builder
	root   value.V
	stack  []frame
	cur    frame
	width  int
	height int
}

func newModel(b *builder.Builder, root value.V) *model {
	m := &model{b: b, root: root}
	m.cur = frame{container: root, entries: children(b, root)}

	return m
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "right", "l", "enter":
			m.descend()

		case "left", "h", "backspace":
			m.ascend()

		case "g", "home":
			m.cur.cursor = 0
			m.cur.offset = 0

		case "G", "end":
			if len(m.cur.entries) > 0 {
				m.cur.cursor = len(m.cur.entries) - 1
			}
		}
	}

	return m, nil
}

func (m *model) moveCursor(delta int) {
	if len(m.cur.entries) == 0 {
		return
	}

	m.cur.cursor += delta

	if m.cur.cursor < 0 {
		m.cur.cursor = 0
	}

	if m.cur.cursor >= len(m.cur.entries) {
		m.cur.cursor = len(m.cur.entries) - 1
	}
}

// descend opens the currently selected entry, if it is itself a sequence or
// mapping. Scalars and aliases with no resolvable value have nothing below
// them, so descend is a no-op there.
func (m *model) descend() {
	if m.cur.cursor < 0 || m.cur.cursor >= len(m.cur.entries) {
		return
	}

	selected := m.cur.entries[m.cur.cursor].val

	kind := m.b.TypeOf(selected)
	if kind != value.KindSequence && kind != value.KindMapping {
		return
	}

	m.stack = append(m.stack, m.cur)
	m.cur = frame{container: selected, entries: children(m.b, selected)}
}

func (m *model) ascend() {
	if len(m.stack) == 0 {
		return
	}

	m.cur = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
}
