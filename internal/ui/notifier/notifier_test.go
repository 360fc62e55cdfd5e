package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Subscribe_Unsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()

	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	n.Broadcast(Event{SchemaID: "s1", Name: "retail"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "s1", ev.SchemaID)
			assert.Equal(t, "retail", ev.Name)
		case <-time.After(100 * time.Millisecond):
			t.Error("listener did not receive broadcast")
		}
	}
}

func TestNotifier_Broadcast_NonBlocking(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// Fill the channel buffer
	ch <- Event{SchemaID: "old"}

	done := make(chan bool)
	go func() {
		n.Broadcast(Event{SchemaID: "new"})
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("Broadcast blocked on full channel")
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	const numGoroutines = 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast(Event{SchemaID: "s"})
			n.Unsubscribe(ch)
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, n.Len())
}
