// Package skeleton renders animated placeholder bars shown while a section
// of the dashboard is busy loading.
package skeleton

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"viewstate/internal/tui/styles"
)

const (
	fps = 12

	// How many cells the highlight travels per frame.
	sweepStep = 1.0

	barRune = '░'
)

// Internal ID management. Frame messages are delivered only to the skeleton
// that scheduled them, so two skeletons never double-advance each other.
var lastID int64

func nextID() int { return int(atomic.AddInt64(&lastID, 1)) }

// StepMsg advances the shimmer by one frame.
type StepMsg struct{ id int }

// Skeleton is a shimmer animation shared by every placeholder line it
// renders. Tick while any line is visible, stop when none are.
type Skeleton struct {
	id    int
	frame int
}

func New() *Skeleton {
	return &Skeleton{id: nextID()}
}

// Start schedules the first frame.
func (s *Skeleton) Start() tea.Cmd {
	return s.tick()
}

// Update advances the animation on its own StepMsg and reschedules the next
// frame. Other messages are ignored.
func (s *Skeleton) Update(msg tea.Msg) tea.Cmd {
	step, ok := msg.(StepMsg)
	if !ok || step.id != s.id {
		return nil
	}
	s.frame++
	return s.tick()
}

func (s *Skeleton) tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return StepMsg{id: s.id}
	})
}

// Bar renders one placeholder line of the given width with a highlight
// sweeping through it.
func (s *Skeleton) Bar(width int) string {
	if width <= 0 {
		return ""
	}

	t := styles.CurrentTheme()
	dim, _ := colorful.MakeColor(t.Border)
	hot, _ := colorful.MakeColor(t.FgSubtle)

	center := math.Mod(float64(s.frame)*sweepStep, float64(width))

	var b strings.Builder
	for i := 0; i < width; i++ {
		// Distance from the sweep center, wrapped around the bar.
		d := math.Abs(float64(i) - center)
		if wrapped := float64(width) - d; wrapped < d {
			d = wrapped
		}
		glow := math.Max(0, 1-d/6)
		c := dim.BlendLab(hot, glow)
		hex := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", uint8(c.R*255), uint8(c.G*255), uint8(c.B*255)))
		b.WriteString(lipgloss.NewStyle().Foreground(hex).Render(string(barRune)))
	}
	return b.String()
}

// Lines renders count placeholder lines, the last one shortened the way real
// text usually is.
func (s *Skeleton) Lines(width, count int) string {
	if count <= 0 {
		return ""
	}
	rows := make([]string, 0, count)
	for i := 0; i < count; i++ {
		w := width
		if i == count-1 && width > 4 {
			w = width * 2 / 3
		}
		rows = append(rows, s.Bar(w))
	}
	return strings.Join(rows, "\n")
}
