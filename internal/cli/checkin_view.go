package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ── key bindings ─────────────────────────────────────────────────────────────

type checkInKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Skip    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultCheckInKeys() checkInKeyMap {
	return checkInKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x", "enter"), key.WithHelp("space", "done")),
		Skip:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k checkInKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Help, k.Quit}
}

func (k checkInKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Skip},
		{k.Refresh, k.Help, k.Quit},
	}
}

// ── messages ─────────────────────────────────────────────────────────────────

// dueLoadedMsg carries the activities planned on the check-in day.
type dueLoadedMsg struct {
	items []app.DueTodayItem
	err   error
}

// checkInDoneMsg reports the outcome of one write.
type checkInDoneMsg struct {
	name   string
	result *app.CheckInResult
	err    error
}

// ── model ────────────────────────────────────────────────────────────────────

// checkInModel is the interactive check-in list for a single day: one row
// per planned activity, toggled in place.
type checkInModel struct {
	ctx   context.Context
	app   *App
	today calendar.Date

	items   []app.DueTodayItem
	cursor  int
	loading bool
	err     error
	flash   string

	keys checkInKeyMap
	help help.Model
}

func newCheckInModel(ctx context.Context, a *App, today calendar.Date) *checkInModel {
	return &checkInModel{
		ctx:     ctx,
		app:     a,
		today:   today,
		loading: true,
		keys:    defaultCheckInKeys(),
		help:    help.New(),
	}
}

func (m *checkInModel) Init() tea.Cmd {
	return m.load()
}

func (m *checkInModel) load() tea.Cmd {
	ctx, svc, today := m.ctx, m.app.Analytics, m.today
	return func() tea.Msg {
		items, err := svc.DueToday(ctx, today)
		return dueLoadedMsg{items: items, err: err}
	}
}

func (m *checkInModel) write(item app.DueTodayItem, fn checkInFunc) tea.Cmd {
	ctx := m.ctx
	req := app.CheckInRequest{ActivityID: item.ActivityID, Date: m.today}
	return func() tea.Msg {
		res, err := fn(ctx, req)
		return checkInDoneMsg{name: item.Name, result: res, err: err}
	}
}

func (m *checkInModel) selected() (app.DueTodayItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return app.DueTodayItem{}, false
	}
	return m.items[m.cursor], true
}

// doneCount returns how many listed activities are completed.
func (m *checkInModel) doneCount() int {
	n := 0
	for _, it := range m.items {
		if it.Completed {
			n++
		}
	}
	return n
}

// ── update ───────────────────────────────────────────────────────────────────

func (m *checkInModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case dueLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.items = msg.items
		}
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		return m, nil

	case checkInDoneMsg:
		if msg.err != nil {
			m.flash = formatter.StyleRed.Render("Error: " + msg.err.Error())
			return m, nil
		}
		m.flash = strings.TrimSuffix(formatter.FormatCheckIn(msg.name, msg.result), "\n")
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if it, ok := m.selected(); ok {
				return m, m.write(it, m.app.CheckIn.Toggle)
			}
		case key.Matches(msg, m.keys.Skip):
			if it, ok := m.selected(); ok {
				if it.Skipped {
					return m, m.write(it, m.app.CheckIn.Unskip)
				}
				return m, m.write(it, m.app.CheckIn.Skip)
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

const checkInNameWidth = 24

func (m *checkInModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.StyleHeader.Render("CHECK-IN · "+strings.ToUpper(formatter.HumanDay(m.today))))
	b.WriteString("\n\n")

	switch {
	case m.loading && m.items == nil:
		b.WriteString("  " + formatter.Dim("Loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case len(m.items) == 0:
		b.WriteString("  " + formatter.Dim("Nothing planned today.") + "\n")
	default:
		for i, it := range m.items {
			b.WriteString(m.renderRow(i, it))
		}
		b.WriteString(fmt.Sprintf("\n  %d/%d done\n", m.doneCount(), len(m.items)))
	}

	if m.flash != "" {
		b.WriteString("\n  " + m.flash + "\n")
	}
	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m *checkInModel) renderRow(i int, it app.DueTodayItem) string {
	cursor := "  "
	nameStyle := formatter.StyleFg
	if i == m.cursor {
		cursor = formatter.StyleGreen.Render("▸ ")
		nameStyle = formatter.StyleBold
	}

	name := formatter.Truncate(it.Name, checkInNameWidth)

	state := formatter.PadRight("", 8)
	switch {
	case it.Completed:
		state = formatter.StyleGreen.Render(formatter.PadRight("done", 8))
	case it.Skipped:
		state = formatter.StyleYellow.Render(formatter.PadRight("skipped", 8))
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		cursor,
		formatter.Check(it.Completed),
		nameStyle.Render(formatter.PadRight(name, checkInNameWidth)),
		state,
		formatter.Dim(fmt.Sprintf("streak %d", it.CurrentStreak)),
	)
	if it.Note != "" {
		line += "  " + formatter.Dim(it.Note)
	}
	return "  " + line + "\n"
}
