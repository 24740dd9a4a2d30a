// Package featureflags provides a small config-driven flag manager with
// percentage rollouts keyed by user ID.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
)

// Known flag names.
const (
	FlagExploreNSFW = "explore_nsfw"
)

type flagState struct {
	enabled bool
	rollout int // 0-100; only meaningful when enabled
}

// Manager resolves feature flags parsed from configuration.
type Manager struct {
	mu    sync.RWMutex
	flags map[string]flagState
}

// NewManager parses a flag spec of the form
// "explore_nsfw:on,new_feed:25%,old_thing:off".
func NewManager(spec string) (*Manager, error) {
	m := &Manager{flags: make(map[string]flagState)}
	if strings.TrimSpace(spec) == "" {
		return m, nil
	}

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid flag entry %q", part)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		switch {
		case value == "on":
			m.flags[name] = flagState{enabled: true, rollout: 100}
		case value == "off":
			m.flags[name] = flagState{enabled: false}
		case strings.HasSuffix(value, "%"):
			pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
			if err != nil || pct < 0 || pct > 100 {
				return nil, fmt.Errorf("invalid rollout percentage in %q", part)
			}
			m.flags[name] = flagState{enabled: true, rollout: pct}
		default:
			return nil, fmt.Errorf("invalid flag value %q for %q", value, name)
		}
	}
	return m, nil
}

// Enabled reports whether a flag is on for everyone.
func (m *Manager) Enabled(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.flags[name]
	return ok && st.enabled && st.rollout >= 100
}

// EnabledForUser reports whether a flag is on for the given user,
// applying the percentage rollout with a stable per-user hash.
func (m *Manager) EnabledForUser(name string, userID uint) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.flags[name]
	if !ok || !st.enabled {
		return false
	}
	if st.rollout >= 100 {
		return true
	}
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d", name, userID)
	return int(h.Sum32()%100) < st.rollout
}

// Set overrides a flag at runtime. Used by the admin endpoint and tests.
func (m *Manager) Set(name string, enabled bool, rollout int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rollout < 0 {
		rollout = 0
	}
	if rollout > 100 {
		rollout = 100
	}
	m.flags[name] = flagState{enabled: enabled, rollout: rollout}
}

// Snapshot returns the current flag table for the admin endpoint.
func (m *Manager) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.flags))
	for name, st := range m.flags {
		switch {
		case !st.enabled:
			out[name] = "off"
		case st.rollout >= 100:
			out[name] = "on"
		default:
			out[name] = fmt.Sprintf("%d%%", st.rollout)
		}
	}
	return out
}
