package tui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea/v2"

	"viewstate/config"
	"viewstate/pkg/observable"
)

// Start runs the dashboard until the user quits. cfgPath, when non-empty, is
// watched so edits to demo.yaml take effect without a restart.
func Start(cfg config.Demo, cfgPath string) error {
	m := newModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Bridge tracker notifications into the program's event loop. The
	// listener fires on the fetch goroutine; Send is safe from there.
	unsubscribe := m.Tracker().Subscribe(func() {
		p.Send(stateChangedMsg{})
	})
	defer unsubscribe()

	m.Tracker().SetErrHook(func(err error, key observable.Key) {
		log.Printf("section %q failed: %v", key, err)
	})

	if cfgPath != "" {
		stop, err := config.WatchDemo(cfgPath, func(d config.Demo) {
			p.Send(configReloadedMsg{cfg: d})
		})
		if err != nil {
			log.Printf("Config watch disabled: %v", err)
		} else {
			defer stop()
		}
	}

	_, err := p.Run()
	return err
}
