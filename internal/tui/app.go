// Package tui is the interactive terminal front end over the admin screens.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sivaram/calc-admin/internal/screen"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modePick
)

// doneMsg reports that a background action finished. The screens hold the
// resulting state, so the message only carries the error.
type doneMsg struct{ err error }

type mountedMsg struct{}

type Model struct {
	ctx     context.Context
	screens []screen.Screen
	active  int
	cursor  int
	child   int

	mode   mode
	editID string
	inputs []textinput.Model
	focus  int
	picks  []screen.Row
	pick   int

	spinner spinner.Model
	pending int
	width   int
	styles  Styles
}

func New(ctx context.Context, screens ...screen.Screen) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Primary)

	return Model{
		ctx:     ctx,
		screens: screens,
		child:   -1,
		spinner: sp,
		styles:  DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	for _, s := range m.screens {
		s := s
		cmds = append(cmds, func() tea.Msg {
			s.Mount(m.ctx)
			return mountedMsg{}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) run(fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{err: fn(ctx)}
	}
}

func (m Model) current() screen.Screen { return m.screens[m.active] }

func (m Model) rows() []screen.Row { return m.current().Page().Rows }

func (m Model) selectedRow() (screen.Row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return screen.Row{}, false
	}
	return rows[m.cursor], true
}

func (m Model) selectedChild() (screen.Row, screen.Row, bool) {
	row, ok := m.selectedRow()
	if !ok || m.child < 0 || m.child >= len(row.Children) {
		return screen.Row{}, screen.Row{}, false
	}
	return row, row.Children[m.child], true
}

// clamp keeps the cursors inside the current rows after a refetch.
func (m *Model) clamp() {
	rows := m.rows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if row, ok := m.selectedRow(); !ok || m.child >= len(row.Children) {
		m.child = len(row.Children) - 1
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case doneMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.clamp()
		return m, nil

	case mountedMsg:
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modePick:
			return m.updatePick(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.current()
	linker, canLink := s.(screen.Linker)

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right":
		m.active = (m.active + 1) % len(m.screens)
		m.cursor, m.child = 0, -1
	case "shift+tab", "left":
		m.active = (m.active + len(m.screens) - 1) % len(m.screens)
		m.cursor, m.child = 0, -1
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.child = -1
		}
	case "down", "j":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
			m.child = -1
		}
	case "]":
		if row, ok := m.selectedRow(); ok && m.child < len(row.Children)-1 {
			m.child++
		}
	case "[":
		if m.child >= 0 {
			m.child--
		}
	case "r":
		return m, m.run(func(ctx context.Context) error { return s.Refresh(ctx) })
	case "n":
		m.openForm("", screen.Form{})
	case "e":
		if row, ok := m.selectedRow(); ok {
			if form, ok := s.Edit(row.Key); ok {
				m.openForm(row.Key, form)
			}
		}
	case "d":
		if row, ok := m.selectedRow(); ok {
			return m, m.run(func(ctx context.Context) error { return s.Delete(ctx, row.Key) })
		}
	case "a":
		if row, ok := m.selectedRow(); ok && canLink {
			m.picks = linker.Candidates(row.Key)
			m.pick = 0
			m.mode = modePick
		}
	case "x":
		if row, child, ok := m.selectedChild(); ok && canLink {
			return m, m.run(func(ctx context.Context) error { return linker.Unlink(ctx, row.Key, child.Ref) })
		}
	case "K", "J":
		if row, child, ok := m.selectedChild(); ok && canLink {
			delta := 1
			if msg.String() == "K" {
				delta = -1
			}
			if next := m.child + delta; next >= 0 && next < len(row.Children) {
				m.child = next
			}
			return m, m.run(func(ctx context.Context) error { return linker.Move(ctx, row.Key, child.Ref, delta) })
		}
	}
	return m, nil
}

func (m *Model) openForm(id string, form screen.Form) {
	name := textinput.New()
	name.Placeholder = "Name"
	name.SetValue(form.Name)
	name.Focus()
	m.inputs = []textinput.Model{name}

	if _, ok := m.current().(*screen.Nodes); ok {
		data := textinput.New()
		data.Placeholder = "Node data"
		data.SetValue(form.Data)
		m.inputs = append(m.inputs, data)
	}
	m.editID = id
	m.focus = 0
	m.mode = modeForm
}

func (m Model) form() screen.Form {
	f := screen.Form{Name: strings.TrimSpace(m.inputs[0].Value())}
	if len(m.inputs) > 1 {
		f.Data = m.inputs[1].Value()
	}
	return f
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "tab", "down", "up", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		return m, m.inputs[m.focus].Focus()
	case "enter":
		form := m.form()
		if form.Name == "" {
			return m, nil
		}
		s, id := m.current(), m.editID
		m.mode = modeBrowse
		if id == "" {
			return m, m.run(func(ctx context.Context) error { return s.Create(ctx, form) })
		}
		return m, m.run(func(ctx context.Context) error { return s.Update(ctx, id, form) })
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
	case "up", "k":
		if m.pick > 0 {
			m.pick--
		}
	case "down", "j":
		if m.pick < len(m.picks)-1 {
			m.pick++
		}
	case "enter":
		m.mode = modeBrowse
		row, ok := m.selectedRow()
		if !ok || len(m.picks) == 0 {
			return m, nil
		}
		linker := m.current().(screen.Linker)
		childID := m.picks[m.pick].Key
		return m, m.run(func(ctx context.Context) error { return linker.Link(ctx, row.Key, childID) })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	tabs := make([]string, len(m.screens))
	for i, s := range m.screens {
		if i == m.active {
			tabs[i] = m.styles.ActiveTab.Render(s.Title())
		} else {
			tabs[i] = m.styles.Tab.Render(s.Title())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	page := m.current().Page()
	if page.Banner != "" {
		b.WriteString(m.styles.Banner.Render(page.Banner))
		b.WriteString("\n\n")
	}

	switch {
	case page.Loading:
		b.WriteString(m.spinner.View() + " Loading...\n")
	case page.Rows == nil && page.Banner != "":
	case len(page.Rows) == 0:
		b.WriteString(m.styles.Detail.Render("  Nothing here yet. Press n to create one.") + "\n")
	default:
		m.renderRows(&b, page.Rows)
	}

	switch m.mode {
	case modeForm:
		b.WriteString("\n" + m.renderForm() + "\n")
	case modePick:
		b.WriteString("\n" + m.renderPick() + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render(m.help()))
	if m.pending > 0 {
		b.WriteString(" " + m.spinner.View())
	}
	return b.String()
}

func (m Model) renderRows(b *strings.Builder, rows []screen.Row) {
	for i, row := range rows {
		line := row.Title
		if row.Detail != "" {
			line += "  " + m.styles.Detail.Render(row.Detail)
		}
		if i == m.cursor && m.child < 0 {
			b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString(m.styles.Row.Render(line) + "\n")
		}
		for j, c := range row.Children {
			label := fmt.Sprintf("%d. %s", j+1, c.Title)
			if i == m.cursor && j == m.child {
				b.WriteString(m.styles.Child.Render(m.styles.Selected.Render("> "+label)) + "\n")
			} else {
				b.WriteString(m.styles.Child.Render(label) + "\n")
			}
		}
	}
}

func (m Model) renderForm() string {
	title := "Create"
	if m.editID != "" {
		title = "Edit"
	}
	lines := []string{m.styles.Selected.Render(title)}
	for _, in := range m.inputs {
		lines = append(lines, in.View())
	}
	return m.styles.Dialog.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPick() string {
	noun := "item"
	if l, ok := m.current().(screen.Linker); ok {
		noun = l.ChildNoun()
	}
	lines := []string{m.styles.Selected.Render("Add " + noun)}
	if len(m.picks) == 0 {
		lines = append(lines, m.styles.Detail.Render("No unlinked "+noun+"s"))
	}
	for i, p := range m.picks {
		if i == m.pick {
			lines = append(lines, m.styles.Selected.Render("> "+p.Title))
		} else {
			lines = append(lines, "  "+p.Title)
		}
	}
	return m.styles.Dialog.Render(strings.Join(lines, "\n"))
}

func (m Model) help() string {
	switch m.mode {
	case modeForm:
		return "enter save • tab next field • esc cancel"
	case modePick:
		return "↑/↓ choose • enter add • esc cancel"
	}
	h := "tab switch • ↑/↓ select • n new • e edit • d delete • r refresh • q quit"
	if _, ok := m.current().(screen.Linker); ok {
		h += " • a add • [/] member • x remove • J/K move"
	}
	return h
}
