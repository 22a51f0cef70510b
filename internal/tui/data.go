package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"viewstate/config"
	"viewstate/pkg/observable"
)

// Section keys. Each dashboard section loads under its own key so one slow
// or failing fetch never blocks the others.
const (
	keyProfile  observable.Key = "profile"
	keyRepos    observable.Key = "repos"
	keyActivity observable.Key = "activity"
)

// FetchError is the failure recorded for a section fetch. The view pulls the
// status code out of the registry with observable.ErrAs.
type FetchError struct {
	Section string
	Code    int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: upstream returned %d", e.Section, e.Code)
}

// fetchSection simulates a backend call: it sleeps somewhere between the
// configured latency bounds, then either fails or returns canned rows for
// the section.
func fetchSection(ctx context.Context, cfg config.Demo, key observable.Key, forceFail bool) ([]string, error) {
	latency := cfg.MinLatency()
	if spread := cfg.MaxLatency() - cfg.MinLatency(); spread > 0 {
		latency += rand.N(spread)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(latency):
	}

	if forceFail || rand.Float64() < cfg.FailureRate {
		return nil, &FetchError{Section: string(key), Code: 504}
	}

	return sectionRows(key), nil
}

func sectionRows(key observable.Key) []string {
	switch key {
	case keyProfile:
		return []string{
			"ada@lovelace.dev",
			"Member since 2019 · 2FA enabled",
			"Plan: team (renews Nov 12)",
		}
	case keyRepos:
		return []string{
			"analytical-engine    ★ 1204   updated 2h ago",
			"difference-notes     ★ 87     updated yesterday",
			"bernoulli-programs   ★ 2310   updated 3d ago",
		}
	case keyActivity:
		return []string{
			"Pushed 4 commits to analytical-engine",
			"Opened PR #42: punch card parser rewrite",
			"Commented on issue #17",
		}
	default:
		return nil
	}
}
