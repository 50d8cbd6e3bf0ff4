package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheNotifier_RecentInOrder(t *testing.T) {
	n := NewCacheNotifier(time.Minute)
	n.Notify("Task created", Success)
	n.Notify("Cannot delete the last status", Error)

	recent := n.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "Task created", recent[0].Message)
	assert.Equal(t, Success, recent[0].Severity)
	assert.Equal(t, Error, recent[1].Severity)
	assert.NotEqual(t, recent[0].ID, recent[1].ID)
}

func TestCacheNotifier_Expires(t *testing.T) {
	n := NewCacheNotifier(20 * time.Millisecond)
	n.Notify("gone soon", Info)
	require.Len(t, n.Recent(), 1)

	assert.Eventually(t, func() bool { return len(n.Recent()) == 0 }, time.Second, 10*time.Millisecond)
}

func TestCacheNotifier_Dismiss(t *testing.T) {
	n := NewCacheNotifier(0)
	n.Notify("hello", Info)
	id := n.Recent()[0].ID

	assert.True(t, n.Dismiss(id))
	assert.False(t, n.Dismiss(id))
	assert.Empty(t, n.Recent())
}
