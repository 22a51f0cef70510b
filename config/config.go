package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Demo holds the dashboard settings: how long simulated fetches take and how
// often they fail.
type Demo struct {
	MinLatencyMS int     `yaml:"min_latency_ms"`
	MaxLatencyMS int     `yaml:"max_latency_ms"`
	FailureRate  float64 `yaml:"failure_rate"`
}

// DefaultDemo returns the settings used when demo.yaml is absent.
func DefaultDemo() Demo {
	return Demo{
		MinLatencyMS: 400,
		MaxLatencyMS: 1600,
		FailureRate:  0.25,
	}
}

// MinLatency returns the lower latency bound as a duration.
func (d Demo) MinLatency() time.Duration { return time.Duration(d.MinLatencyMS) * time.Millisecond }

// MaxLatency returns the upper latency bound as a duration.
func (d Demo) MaxLatency() time.Duration { return time.Duration(d.MaxLatencyMS) * time.Millisecond }

// LoadDemo reads demo.yaml from the config directory. A missing file yields
// the defaults; a malformed one is an error.
func LoadDemo() (Demo, error) {
	path, err := GetDemoConfigFile()
	if err != nil {
		return Demo{}, err
	}
	return LoadDemoFile(path)
}

// LoadDemoFile reads demo settings from an explicit path.
func LoadDemoFile(path string) (Demo, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultDemo(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Demo{}, fmt.Errorf("failed to read demo config: %w", err)
	}

	cfg := DefaultDemo()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Demo{}, fmt.Errorf("failed to parse demo config: %w", err)
	}

	return cfg.normalized(), nil
}

// normalized clamps settings into usable ranges so a hand-edited file cannot
// wedge the dashboard.
func (d Demo) normalized() Demo {
	if d.MinLatencyMS < 0 {
		d.MinLatencyMS = 0
	}
	if d.MaxLatencyMS < d.MinLatencyMS {
		d.MaxLatencyMS = d.MinLatencyMS
	}
	if d.FailureRate < 0 {
		d.FailureRate = 0
	}
	if d.FailureRate > 1 {
		d.FailureRate = 1
	}
	return d
}

// WatchDemo monitors path and calls onChange with the freshly loaded settings
// after every write. The returned stop function ends the watch.
func WatchDemo(path string, onChange func(Demo)) (stop func(), err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	done := make(chan struct{})
	go func() {
		var lastModTime time.Time
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				stat, err := os.Stat(path)
				if err != nil {
					continue
				}
				if !stat.ModTime().After(lastModTime) {
					continue
				}
				lastModTime = stat.ModTime()

				// Let the editor finish writing before reading.
				time.Sleep(100 * time.Millisecond)

				cfg, err := LoadDemoFile(path)
				if err != nil {
					log.Printf("Error reloading demo config: %v", err)
					continue
				}
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}
