package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/josephgoksu/TaskDeck/internal/app"
	"github.com/josephgoksu/TaskDeck/internal/logger"
	"github.com/josephgoksu/TaskDeck/internal/task"
	"github.com/josephgoksu/TaskDeck/internal/util"
	"github.com/josephgoksu/TaskDeck/models"
	"github.com/spf13/viper"
)

// Toasts is a Notifier that keeps what the status lines show.
type Toasts struct {
	last      *app.Notification
	milestone *app.Notification
}

func NewToasts() *Toasts { return &Toasts{} }

// Notify records n. A milestone banner stays up until the next ordinary
// notification replaces the toast line.
func (t *Toasts) Notify(n app.Notification) {
	if n.Milestone > 0 {
		t.milestone = &n
		return
	}
	t.milestone = nil
	t.last = &n
}

// Last returns the most recent non-milestone notification.
func (t *Toasts) Last() (app.Notification, bool) {
	if t.last == nil {
		return app.Notification{}, false
	}
	return *t.last, true
}

// Milestone returns the most recent milestone notification.
func (t *Toasts) Milestone() (app.Notification, bool) {
	if t.milestone == nil {
		return app.Notification{}, false
	}
	return *t.milestone, true
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeAddDue
	modeEdit
	modeSearch
	modeConfirmClear
)

// ThemeChangedMsg is sent when the config file on disk selects a new theme.
type ThemeChangedMsg struct {
	Theme app.Theme
}

const helpLine = "j/k move · space toggle · a add · e edit · d delete · u undo · A all · C clear · tab filter · / search · t theme · K/J reorder · q quit"

// Model is the interactive task list. It owns no task state of its own;
// every gesture becomes a Session intent.
type Model struct {
	session *app.Session
	toasts  *Toasts
	styles  Styles
	input   textinput.Model
	now     func() time.Time

	mode     inputMode
	cursor   int
	editID   string
	// pending add: text from the first step, priority cycled with tab
	addText     string
	addPriority models.Priority
	width    int
	quitting bool
}

// NewModel returns a model driving s. toasts must be the session's notifier.
func NewModel(s *app.Session, toasts *Toasts) Model {
	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	return Model{
		session: s,
		toasts:  toasts,
		styles:  NewStyles(s.Theme()),
		input:   in,
		now:     time.Now,

		addPriority: models.PriorityMedium,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case ThemeChangedMsg:
		m.session.ApplyTheme(msg.Theme)
		m.styles = NewStyles(m.session.Theme())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeBrowse {
			return m.updateBrowse(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.session.Visible()
	selected, hasSelection := m.selected(visible)

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ", "space", "x":
		if hasSelection {
			m.session.Toggle(selected.ID)
		}
	case "a":
		return m.startInput(modeAdd, "")
	case "e":
		if hasSelection {
			m.editID = selected.ID
			return m.startInput(modeEdit, selected.Text)
		}
	case "d":
		if hasSelection {
			m.session.Delete(selected.ID)
		}
	case "u":
		if r := m.session.Undo(); !r.Success {
			m.toasts.Notify(app.Notification{Message: r.Message, Severity: app.SeverityInfo})
		}
	case "A":
		if len(m.session.Tasks()) > 0 {
			m.session.ToggleAll()
		}
	case "C":
		if m.session.Stats().Completed > 0 {
			m.mode = modeConfirmClear
		}
	case "tab":
		m.session.CycleFilter()
		m.cursor = 0
	case "/":
		return m.startInput(modeSearch, m.session.Query())
	case "esc":
		if m.session.Query() != "" {
			m.session.SetSearch("")
			m.cursor = 0
		}
	case "t":
		m.session.ToggleTheme()
		m.styles = NewStyles(m.session.Theme())
	case "K":
		if hasSelection && m.cursor > 0 {
			m.moveTo(selected.ID, visible[m.cursor-1].ID)
			m.cursor--
		}
	case "J":
		if hasSelection && m.cursor < len(visible)-1 {
			m.moveTo(selected.ID, visible[m.cursor+1].ID)
			m.cursor++
		}
	}

	m.clampCursor()
	return m, nil
}

// moveTo places id at the current position of target in the full list.
func (m Model) moveTo(id, target string) {
	for i, t := range m.session.Tasks() {
		if t.ID == target {
			m.session.Move(id, i)
			return
		}
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmClear {
		if s := msg.String(); s == "y" || s == "Y" {
			m.session.ClearCompleted()
		}
		m.mode = modeBrowse
		m.clampCursor()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.endInput()
		return m, nil
	case tea.KeyTab:
		if m.mode == modeAdd || m.mode == modeAddDue {
			m.addPriority = nextPriority(m.addPriority)
			return m, nil
		}
	case tea.KeyEnter:
		m.submit()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		m.session.SetSearch(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) submit() {
	value := m.input.Value()
	logger.SetLastInput(value)
	switch m.mode {
	case modeAdd:
		// keep the input open so the user can fix invalid text
		if _, err := models.ValidateText(value); err != nil {
			m.toasts.Notify(app.Notification{Message: app.ValidationMessage(err), Severity: app.SeverityError})
			return
		}
		m.addText = value
		m.mode = modeAddDue
		m.input.Prompt = "Due (YYYY-MM-DD, blank for none): "
		m.input.Reset()
		return
	case modeAddDue:
		if r := m.session.Add(m.addText, string(m.addPriority), value); !r.Success {
			return
		}
		m.cursor = 0
	case modeEdit:
		m.session.Edit(m.editID, value)
	case modeSearch:
		m.session.SetSearch(value)
	}
	m.endInput()
}

func (m Model) startInput(mode inputMode, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	switch mode {
	case modeEdit:
		m.input.Prompt = "Edit: "
	case modeSearch:
		m.input.Prompt = "Search: "
	default:
		m.input.Prompt = "New task: "
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = modeBrowse
	m.editID = ""
	m.addText = ""
	m.addPriority = models.PriorityMedium
	m.input.Reset()
	m.input.Blur()
}

// nextPriority cycles medium, high, low.
func nextPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityMedium:
		return models.PriorityHigh
	case models.PriorityHigh:
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

func (m Model) selected(visible []models.Task) (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.session.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Header.Render("✔ TaskDeck") + "\n")
	b.WriteString(m.renderTabs() + "\n\n")

	visible := m.session.Visible()
	if len(visible) == 0 {
		b.WriteString("  " + st.Subtle.Render(EmptyMessage(m.session.Filter(), m.session.Query())) + "\n")
	}
	today := m.now()
	for i, t := range visible {
		b.WriteString(m.renderTask(i, t, today) + "\n")
	}

	b.WriteString("\n" + RenderStats(m.session.Stats(), st) + "\n")
	if n, ok := m.toasts.Milestone(); ok {
		b.WriteString(st.Success.Bold(true).Render(n.Message) + "\n")
	}
	if n, ok := m.toasts.Last(); ok {
		b.WriteString(st.Severity(n.Severity).Render(n.Message) + "\n")
	}

	switch m.mode {
	case modeAdd, modeAddDue:
		b.WriteString(st.InputBox.Render(m.input.View()) + "\n")
		b.WriteString(st.Subtle.Render("tab priority: ") +
			st.Priority(m.addPriority).Render(PriorityIcon(m.addPriority)+" "+PriorityLabel(m.addPriority)) +
			st.Subtle.Render(" · enter next · esc cancel") + "\n")
	case modeEdit, modeSearch:
		b.WriteString(st.InputBox.Render(m.input.View()) + "\n")
	case modeConfirmClear:
		b.WriteString(st.Warning.Render(fmt.Sprintf("Clear %d completed tasks? (y/N)", m.session.Stats().Completed)) + "\n")
	}

	help := helpLine
	if !m.session.CanUndo() {
		help = strings.Replace(help, " · u undo", "", 1)
	}
	b.WriteString(st.Subtle.Render(help))
	return b.String()
}

func (m Model) renderTabs() string {
	st := m.styles
	var parts []string
	for _, f := range task.AllFilters() {
		label := titleCaser.String(string(f))
		if f == m.session.Filter() {
			parts = append(parts, st.ActiveTab.Render(label))
		} else {
			parts = append(parts, st.Tab.Render(label))
		}
	}
	line := " " + strings.Join(parts, "  ")
	if q := m.session.Query(); q != "" {
		line += st.Subtle.Render("   🔍 " + q)
	}
	return line
}

func (m Model) renderTask(i int, t models.Task, today time.Time) string {
	st := m.styles
	pointer := "  "
	if i == m.cursor {
		pointer = st.Cursor.Render("> ")
	}
	text := st.Text.Render(TruncateText(t.Text, DefaultTextWidth))
	if t.Completed {
		text = st.Done.Render(TruncateText(t.Text, DefaultTextWidth))
	}
	due := ""
	if t.DueDate != "" {
		dueStyle := st.Subtle
		if t.IsOverdue(today) {
			dueStyle = st.Overdue
		}
		due = "  " + dueStyle.Render(DueLabel(t, today))
	}
	return fmt.Sprintf("%s%s %s  %s %s%s",
		pointer,
		StatusBox(t.Completed),
		st.Subtle.Render(util.ShortID(t.ID, 0)),
		text,
		st.Priority(t.Priority).Render(PriorityIcon(t.Priority)),
		due)
}

// Run starts the TUI on the terminal and blocks until the user quits.
// With watchConfig set, edits to ui.theme in the config file apply live.
func Run(s *app.Session, toasts *Toasts, watchConfig bool) error {
	p := tea.NewProgram(NewModel(s, toasts), tea.WithAltScreen())

	if watchConfig && viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				return
			}
			theme, err := app.ParseTheme(viper.GetString("ui.theme"))
			if err != nil {
				slog.Warn("ignoring theme from config", "file", e.Name, "error", err)
				return
			}
			slog.Debug("config changed", "file", e.Name, "theme", theme)
			p.Send(ThemeChangedMsg{Theme: theme})
		})
		viper.WatchConfig()
	}

	_, err := p.Run()
	return err
}
