package buslink

import (
	"context"
	"testing"
	"time"

	"crowdsense.klederson.com/internal/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForWritten(t *testing.T, port *MockPort, n int) []byte {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := port.Written(); len(got) >= n {
			return got
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d response bytes, got %q", n, port.Written())
	return nil
}

func TestResponderAnswersWithSeededStop(t *testing.T) {
	port := NewMockPort()
	cell := presence.NewCommandCell()
	r := NewResponder(port, cell, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx) }()

	// Poll before any cycle has completed.
	port.Poll()
	got := waitForWritten(t, port, 1)
	assert.Equal(t, byte('s'), got[0])

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestResponderTracksPublishedCommand(t *testing.T) {
	port := NewMockPort()
	cell := presence.NewCommandCell()
	r := NewResponder(port, cell, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Serve(ctx) }()

	port.Poll()
	waitForWritten(t, port, 1)

	cell.Publish(presence.CommandFootstep)
	port.Poll()
	got := waitForWritten(t, port, 2)
	assert.Equal(t, byte('f'), got[1])

	cell.Publish(presence.CommandRandomVibration)
	port.Poll()
	port.Poll()
	got = waitForWritten(t, port, 4)
	// Repeated polls between cycles get the same held value.
	assert.Equal(t, []byte{'s', 'f', 'r', 'r'}, got)
}

func TestResponderStopsOnPortClose(t *testing.T) {
	port := NewMockPort()
	cell := presence.NewCommandCell()
	r := NewResponder(port, cell, nil)

	done := make(chan error, 1)
	go func() { done <- r.Serve(context.Background()) }()

	require.NoError(t, port.Close())
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after port close")
	}
}
