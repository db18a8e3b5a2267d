package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore opens a store on a temp directory with a no-op emitter.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), nil, NewNoopEmitter())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// captureEmitter records every emitted event for assertions.
type captureEmitter struct {
	events []any
}

func (c *captureEmitter) Emit(event any) {
	c.events = append(c.events, event)
}

func newCaptureStore(t *testing.T) (*Store, *captureEmitter) {
	t.Helper()

	emitter := &captureEmitter{}
	s, err := New(t.TempDir(), nil, emitter)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, emitter
}
