package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/google/uuid"

	"viewstate/config"
	"viewstate/internal/timeutil"
	"viewstate/internal/tui/components/skeleton"
	"viewstate/internal/tui/styles"
	"viewstate/pkg/observable"
)

const skeletonRows = 3

// stateChangedMsg is forwarded into the program whenever the tracker
// notifies: the view re-reads busy/error state and re-renders.
type stateChangedMsg struct{}

// sectionLoadedMsg carries the rows a finished fetch produced. On failure
// rows is nil; the error lives in the tracker's registry.
type sectionLoadedMsg struct {
	key       observable.Key
	rows      []string
	requestID string
	elapsed   time.Duration
}

// configReloadedMsg delivers fresh settings after demo.yaml changes on disk.
type configReloadedMsg struct {
	cfg config.Demo
}

type section struct {
	key      observable.Key
	title    string
	rows     []string
	loadedAt time.Time
	loadDur  time.Duration

	// ID of the most recent fetch; stale completions are dropped.
	requestID string
}

type Model struct {
	w, h int

	cfg     config.Demo
	tracker *observable.Tracker

	sections []*section
	selected int

	skel        *skeleton.Skeleton
	skelTicking bool

	keys     keyMap
	help     help.Model
	showHelp bool
}

func newModel(cfg config.Demo) *Model {
	th := styles.CurrentTheme()
	h := help.New()
	h.Styles = th.S().Help

	return &Model{
		cfg:     cfg,
		tracker: observable.NewTracker(),
		sections: []*section{
			{key: keyProfile, title: "Profile"},
			{key: keyRepos, title: "Repositories"},
			{key: keyActivity, title: "Activity"},
		},
		skel: skeleton.New(),
		keys: defaultKeys,
		help: h,
	}
}

// Tracker exposes the busy/error state for subscription wiring in Start.
func (m *Model) Tracker() *observable.Tracker { return m.tracker }

func (m *Model) Init() tea.Cmd {
	return m.reloadAll()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = v.Width, v.Height
		m.help.Width = v.Width
		return m, nil

	case tea.KeyMsg, tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case stateChangedMsg:
		// Busy flags may have flipped on; make sure the shimmer runs.
		if m.tracker.AnyBusy() && !m.skelTicking {
			m.skelTicking = true
			return m, m.skel.Start()
		}
		return m, nil

	case skeleton.StepMsg:
		cmd := m.skel.Update(v)
		if !m.tracker.AnyBusy() {
			// Nothing left to animate; drop the tick chain.
			m.skelTicking = false
			return m, nil
		}
		return m, cmd

	case sectionLoadedMsg:
		if s := m.sectionFor(v.key); s != nil && s.requestID == v.requestID {
			if v.rows != nil {
				s.rows = v.rows
				s.loadedAt = time.Now()
				s.loadDur = v.elapsed
			}
		}
		return m, nil

	case configReloadedMsg:
		m.cfg = v.cfg
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.Msg) tea.Cmd {
	keyStr, ok := keyString(msg)
	if !ok {
		return nil
	}

	switch keyStr {
	case "q", "ctrl+c":
		return tea.Quit
	case "r":
		return m.fetchCmd(m.sections[m.selected], false)
	case "R":
		return m.reloadAll()
	case "f":
		return m.fetchCmd(m.sections[m.selected], true)
	case "c":
		m.tracker.ClearErrs()
		return nil
	case "tab", "down", "j":
		m.selected = (m.selected + 1) % len(m.sections)
		return nil
	case "shift+tab", "up", "k":
		m.selected = (m.selected + len(m.sections) - 1) % len(m.sections)
		return nil
	case "?":
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil
	}
	return nil
}

// keyString extracts the key string from a message.
func keyString(msg tea.Msg) (string, bool) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		return v.String(), true
	case tea.KeyPressMsg:
		return v.String(), true
	default:
		return "", false
	}
}

func (m *Model) sectionFor(key observable.Key) *section {
	for _, s := range m.sections {
		if s.key == key {
			return s
		}
	}
	return nil
}

func (m *Model) reloadAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sections))
	for _, s := range m.sections {
		if cmd := m.fetchCmd(s, false); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// fetchCmd starts a tracked fetch for the section. The busy-true
// notification fires inside the command goroutine before the fetch runs, so
// the skeleton appears as soon as the fetch is in flight.
func (m *Model) fetchCmd(s *section, forceFail bool) tea.Cmd {
	if m.tracker.Busy(s.key) {
		return nil
	}

	s.requestID = uuid.NewString()
	requestID := s.requestID
	tracker := m.tracker
	cfg := m.cfg
	key := s.key

	return func() tea.Msg {
		start := time.Now()
		rows := observable.Run(context.Background(), tracker, key, func(ctx context.Context) ([]string, error) {
			return fetchSection(ctx, cfg, key, forceFail)
		})
		return sectionLoadedMsg{key: key, rows: rows, requestID: requestID, elapsed: time.Since(start)}
	}
}

func (m *Model) View() string {
	if m == nil || m.w == 0 || m.h == 0 {
		return ""
	}

	t := styles.CurrentTheme()
	s := t.S()

	var b strings.Builder
	b.WriteString(m.renderHeader(t))
	b.WriteString("\n")

	for i, sec := range m.sections {
		b.WriteString(m.renderSection(t, sec, i == m.selected))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus(s))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) renderHeader(t styles.Theme) string {
	s := t.S()
	label := s.Title.Render("viewstate")

	ruleWidth := m.w - lipgloss.Width(label) - 2
	var rule string
	if ruleWidth > 0 {
		rule = styles.ApplyForegroundGrad(strings.Repeat("─", ruleWidth), t.Primary, t.Border)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", rule)
}

func (m *Model) renderSection(t styles.Theme, sec *section, focused bool) string {
	s := t.S()

	border := s.Section
	if focused {
		border = s.SectionFocus
	}
	innerWidth := m.w - 6
	if innerWidth < 10 {
		innerWidth = 10
	}

	// A key is never busy and in error at once: starting a fetch clears the
	// stale error, so the error branch only renders for settled failures.
	title := s.Subtitle.Render(sec.title)
	var body string
	if m.tracker.HasErr(sec.key) {
		body = m.renderSectionError(s, sec)
	} else if rows := observable.Skeleton(m.tracker, rowsPointer(sec.rows), nil, sec.key); rows != nil {
		body = s.Text.Render(strings.Join(rows, "\n"))
	} else {
		body = m.skel.Lines(innerWidth, skeletonRows)
	}

	content := title + "\n" + body
	return border.Width(m.w - 4).Render(content)
}

// rowsPointer maps "not loaded yet" onto the absent real value Skeleton
// understands.
func rowsPointer(rows []string) *[]string {
	if rows == nil {
		return nil
	}
	return &rows
}

func (m *Model) renderSectionError(s *styles.Styles, sec *section) string {
	err := m.tracker.Err(sec.key)
	line := s.Error.Render("✗ " + err.Error())
	if fe, ok := observable.ErrAs[*FetchError](m.tracker, sec.key); ok {
		line += "\n" + s.Subtle.Render(fmt.Sprintf("status %d · press r to retry, c to dismiss", fe.Code))
	}
	return line
}

func (m *Model) renderStatus(s *styles.Styles) string {
	sec := m.sections[m.selected]

	var parts []string
	switch {
	case m.tracker.Busy(sec.key):
		parts = append(parts, "loading "+string(sec.key)+"…")
	case !sec.loadedAt.IsZero():
		updated := string(sec.key) + " updated " + timeutil.Ago(sec.loadedAt, time.Now())
		if sec.loadDur >= time.Second {
			updated += " in " + timeutil.FormatDuration(sec.loadDur)
		}
		parts = append(parts, updated)
	}
	if sec.requestID != "" {
		id := sec.requestID
		if len(id) > 8 {
			id = id[:8]
		}
		parts = append(parts, "req "+id)
	}
	parts = append(parts, fmt.Sprintf("failure rate %.0f%%", m.cfg.FailureRate*100))

	return s.Subtle.Render(strings.Join(parts, "  ·  "))
}
