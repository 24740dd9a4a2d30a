package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerParsing(t *testing.T) {
	t.Parallel()

	m, err := NewManager("explore_nsfw:on, beta_feed:25%, old_ui:off")
	require.NoError(t, err)

	assert.True(t, m.Enabled("explore_nsfw"))
	assert.False(t, m.Enabled("old_ui"))
	assert.False(t, m.Enabled("beta_feed")) // partial rollout is not globally on
	assert.False(t, m.Enabled("unknown"))

	snap := m.Snapshot()
	assert.Equal(t, "on", snap["explore_nsfw"])
	assert.Equal(t, "25%", snap["beta_feed"])
	assert.Equal(t, "off", snap["old_ui"])
}

func TestNewManagerInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewManager("bad entry")
	assert.Error(t, err)

	_, err = NewManager("flag:150%")
	assert.Error(t, err)

	_, err = NewManager("flag:maybe")
	assert.Error(t, err)
}

func TestEnabledForUserRollout(t *testing.T) {
	t.Parallel()

	m, err := NewManager("beta_feed:50%")
	require.NoError(t, err)

	// Stable per user: same answer on every call.
	first := m.EnabledForUser("beta_feed", 42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.EnabledForUser("beta_feed", 42))
	}

	// Roughly half of a user population lands in the bucket.
	in := 0
	for id := uint(1); id <= 1000; id++ {
		if m.EnabledForUser("beta_feed", id) {
			in++
		}
	}
	assert.Greater(t, in, 350)
	assert.Less(t, in, 650)
}

func TestSetOverride(t *testing.T) {
	t.Parallel()

	m, err := NewManager("")
	require.NoError(t, err)

	assert.False(t, m.Enabled(FlagExploreNSFW))
	m.Set(FlagExploreNSFW, true, 100)
	assert.True(t, m.Enabled(FlagExploreNSFW))
	m.Set(FlagExploreNSFW, false, 0)
	assert.False(t, m.EnabledForUser(FlagExploreNSFW, 7))
}
