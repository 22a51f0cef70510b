package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"viewstate/config"
	"viewstate/internal/tui/styles"
	"viewstate/pkg/observable"
)

// quickDemo returns settings with zero latency so fetches settle inline.
func quickDemo(failureRate float64) config.Demo {
	return config.Demo{MinLatencyMS: 0, MaxLatencyMS: 0, FailureRate: failureRate}
}

func TestNewModelBindsThemeHelpStyles(t *testing.T) {
	m := newModel(quickDemo(0))

	th := styles.CurrentTheme()
	want := th.S().Help

	if got := m.help.Styles.ShortKey.GetForeground(); got != want.ShortKey.GetForeground() {
		t.Errorf("help ShortKey foreground = %v, want theme's %v", got, want.ShortKey.GetForeground())
	}
	if got := m.help.Styles.ShortSeparator.Value(); got != want.ShortSeparator.Value() {
		t.Errorf("help ShortSeparator = %q, want %q", got, want.ShortSeparator.Value())
	}
}

func TestFetchSectionRows(t *testing.T) {
	cfg := quickDemo(0)

	for _, key := range []observable.Key{keyProfile, keyRepos, keyActivity} {
		rows, err := fetchSection(context.Background(), cfg, key, false)
		if err != nil {
			t.Fatalf("fetchSection(%q) failed: %v", key, err)
		}
		if len(rows) == 0 {
			t.Errorf("fetchSection(%q) returned no rows", key)
		}
	}
}

func TestFetchSectionForcedFailure(t *testing.T) {
	cfg := quickDemo(0)

	_, err := fetchSection(context.Background(), cfg, keyRepos, true)
	if err == nil {
		t.Fatal("expected forced failure")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *FetchError", err)
	}
	if fe.Section != "repos" || fe.Code != 504 {
		t.Errorf("FetchError = %+v, want section repos code 504", fe)
	}
}

func TestFetchSectionCancelled(t *testing.T) {
	cfg := config.Demo{MinLatencyMS: 1000, MaxLatencyMS: 1000}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fetchSection(ctx, cfg, keyProfile, false); !errors.Is(err, context.Canceled) {
		t.Errorf("fetchSection on cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestFetchCmdRecordsOutcome(t *testing.T) {
	m := newModel(quickDemo(0))
	sec := m.sections[0]

	cmd := m.fetchCmd(sec, false)
	if cmd == nil {
		t.Fatal("fetchCmd returned nil for an idle section")
	}

	msg := cmd()
	loaded, ok := msg.(sectionLoadedMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want sectionLoadedMsg", msg)
	}
	if loaded.key != sec.key {
		t.Errorf("loaded key = %q, want %q", loaded.key, sec.key)
	}
	if len(loaded.rows) == 0 {
		t.Error("successful fetch produced no rows")
	}
	if m.tracker.Busy(sec.key) {
		t.Error("section still busy after the fetch settled")
	}
	if m.tracker.HasErr(sec.key) {
		t.Errorf("unexpected error recorded: %v", m.tracker.Err(sec.key))
	}
}

func TestFetchCmdForcedFailure(t *testing.T) {
	m := newModel(quickDemo(0))
	sec := m.sections[1]

	msg := m.fetchCmd(sec, true)()
	loaded := msg.(sectionLoadedMsg)

	if loaded.rows != nil {
		t.Errorf("failed fetch produced rows: %v", loaded.rows)
	}
	if !m.tracker.HasErr(sec.key) {
		t.Error("failure was not recorded in the tracker")
	}
	if fe, ok := observable.ErrAs[*FetchError](m.tracker, sec.key); !ok || fe.Code != 504 {
		t.Errorf("ErrAs[*FetchError] = %+v, %v", fe, ok)
	}
}

func TestFetchCmdSkipsBusySection(t *testing.T) {
	m := newModel(quickDemo(0))
	sec := m.sections[0]

	m.tracker.SetBusy(sec.key, true)
	if cmd := m.fetchCmd(sec, false); cmd != nil {
		t.Error("fetchCmd started a second fetch for a busy section")
	}
}

func TestUpdateSectionLoaded(t *testing.T) {
	m := newModel(quickDemo(0))
	sec := m.sections[0]
	sec.requestID = "req-1"

	m.Update(sectionLoadedMsg{key: sec.key, rows: []string{"row"}, requestID: "req-1"})
	if len(sec.rows) != 1 {
		t.Fatalf("rows not applied: %v", sec.rows)
	}
	if sec.loadedAt.IsZero() {
		t.Error("loadedAt not stamped")
	}

	// A stale completion must not clobber newer data.
	m.Update(sectionLoadedMsg{key: sec.key, rows: []string{"old", "old"}, requestID: "req-0"})
	if len(sec.rows) != 1 {
		t.Errorf("stale completion applied: %v", sec.rows)
	}
}

func TestUpdateStateChangedStartsShimmer(t *testing.T) {
	m := newModel(quickDemo(0))

	if _, cmd := m.Update(stateChangedMsg{}); cmd != nil {
		t.Error("shimmer started with nothing busy")
	}

	m.tracker.SetBusy(keyProfile, true)
	_, cmd := m.Update(stateChangedMsg{})
	if cmd == nil {
		t.Fatal("shimmer not started for a busy section")
	}
	if !m.skelTicking {
		t.Error("skelTicking not set")
	}

	// A second notification must not start a second tick chain.
	if _, cmd := m.Update(stateChangedMsg{}); cmd != nil {
		t.Error("duplicate tick chain started")
	}
}

func TestUpdateConfigReloaded(t *testing.T) {
	m := newModel(quickDemo(0))

	m.Update(configReloadedMsg{cfg: quickDemo(0.75)})
	if m.cfg.FailureRate != 0.75 {
		t.Errorf("FailureRate = %v after reload, want 0.75", m.cfg.FailureRate)
	}
}

func TestViewRendersSections(t *testing.T) {
	m := newModel(quickDemo(0))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	view := m.View()
	for _, title := range []string{"Profile", "Repositories", "Activity"} {
		if !strings.Contains(view, title) {
			t.Errorf("view missing section title %q", title)
		}
	}
}

func TestStatusShowsFetchDuration(t *testing.T) {
	m := newModel(quickDemo(0))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	sec := m.sections[0]
	sec.requestID = "req-1"
	m.Update(sectionLoadedMsg{key: sec.key, rows: []string{"row"}, requestID: "req-1", elapsed: 2 * time.Second})

	if sec.loadDur != 2*time.Second {
		t.Fatalf("loadDur = %v, want 2s", sec.loadDur)
	}
	if view := m.View(); !strings.Contains(view, "in 2s") {
		t.Error("status line does not show the fetch duration")
	}
}

func TestViewShowsRecordedError(t *testing.T) {
	m := newModel(quickDemo(0))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	m.tracker.SetErr(keyRepos, &FetchError{Section: "repos", Code: 504})

	view := m.View()
	if !strings.Contains(view, "fetch repos") {
		t.Error("view does not surface the recorded error")
	}
	if !strings.Contains(view, "504") {
		t.Error("view does not surface the status code from ErrAs")
	}
}
