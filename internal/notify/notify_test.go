package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	testDismiss = 80 * time.Millisecond
	testSwap    = 30 * time.Millisecond
)

func newTestNotifier(t *testing.T) *Notifier {
	t.Helper()
	n := New(WithDismissAfter(testDismiss), WithSwapDelay(testSwap))
	t.Cleanup(n.Close)
	return n
}

func visibleContent(n *Notifier) string {
	a, ok := n.Current()
	if !ok {
		return ""
	}
	return a.Content
}

func TestSend_IdleShowsImmediatelyAndDismisses(t *testing.T) {
	n := newTestNotifier(t)

	n.Send(Success, "Issue fetched successfully.", false)
	a, ok := n.Current()
	require.True(t, ok, "alert should be visible immediately")
	assert.Equal(t, Success, a.Type)
	assert.Equal(t, "Issue fetched successfully.", a.Content)
	assert.NotEmpty(t, a.ID)

	require.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond, "alert should auto-dismiss")
}

func TestSend_PersistDoesNotDismiss(t *testing.T) {
	n := newTestNotifier(t)

	n.Send(Warning, "API credentials not found.", true)
	time.Sleep(3 * testDismiss)

	_, ok := n.Current()
	assert.True(t, ok, "persistent alert was dismissed")

	n.Dismiss()
	_, ok = n.Current()
	assert.False(t, ok, "Dismiss should hide a persistent alert")
}

func TestSend_BusySwapsAfterDelay(t *testing.T) {
	n := newTestNotifier(t)

	n.Send(Info, "first", false)
	n.Send(Error, "second", false)

	_, ok := n.Current()
	assert.False(t, ok, "current alert should be hidden during the swap")

	require.Eventually(t, func() bool {
		return visibleContent(n) == "second"
	}, time.Second, 5*time.Millisecond)
}

func TestSend_NewestPendingWins(t *testing.T) {
	n := newTestNotifier(t)
	events := n.Subscribe()

	n.Send(Info, "first", false)
	n.Send(Info, "second", false)
	n.Send(Info, "third", false)

	require.Eventually(t, func() bool {
		return visibleContent(n) == "third"
	}, time.Second, 5*time.Millisecond)

	var shown []string
	for len(shown) < 2 {
		select {
		case ev := <-events:
			if ev.Visible {
				shown = append(shown, ev.Alert.Content)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for events, got %v", shown)
		}
	}
	assert.Equal(t, []string{"first", "third"}, shown, "the replaced pending alert must never be shown")
}

func TestSubscribe_ObservesShowAndHide(t *testing.T) {
	n := newTestNotifier(t)
	events := n.Subscribe()

	id := n.Send(Success, "done", false)

	ev := <-events
	assert.True(t, ev.Visible)
	assert.Equal(t, id, ev.Alert.ID)

	select {
	case ev = <-events:
		assert.False(t, ev.Visible)
		assert.Equal(t, id, ev.Alert.ID)
	case <-time.After(time.Second):
		t.Fatal("no hide event after dismiss delay")
	}
}

func TestClose(t *testing.T) {
	n := New(WithDismissAfter(testDismiss), WithSwapDelay(testSwap))
	events := n.Subscribe()

	n.Send(Info, "first", false)
	n.Send(Info, "second", false)
	n.Close()
	n.Close()

	// Drain until the channel is closed.
	for range events {
	}

	n.Send(Info, "after close", false)
	time.Sleep(2 * testSwap)
	_, ok := n.Current()
	assert.False(t, ok, "no alert may appear after Close")

	_, open := <-n.Subscribe()
	assert.False(t, open, "Subscribe after Close returns a closed channel")
}
