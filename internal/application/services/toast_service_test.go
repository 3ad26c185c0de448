package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastSingleSlot(t *testing.T) {
	ts := NewToastService(time.Minute, testLogger(t))

	ts.Success("first")
	second := ts.Error("second")

	current, ok := ts.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, ToastError, current.Level)
	assert.Equal(t, "second", current.Message)
}

func TestToastAutoDismiss(t *testing.T) {
	ts := NewToastService(20*time.Millisecond, testLogger(t))

	ts.Info("fleeting")
	_, ok := ts.Current()
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, showing := ts.Current()
		return !showing
	}, time.Second, 5*time.Millisecond)
}

func TestToastStaleTimerDoesNotClearReplacement(t *testing.T) {
	ts := NewToastService(100*time.Millisecond, testLogger(t))

	ts.Info("first")
	time.Sleep(20 * time.Millisecond)
	replacement := ts.Info("second")

	// Wait past the first toast's deadline but not the second's.
	time.Sleep(40 * time.Millisecond)
	current, ok := ts.Current()
	require.True(t, ok, "replacement dismissed by the stale timer")
	assert.Equal(t, replacement.ID, current.ID)
}

func TestToastDismiss(t *testing.T) {
	ts := NewToastService(time.Minute, testLogger(t))

	ts.Success("done")
	ts.Dismiss()

	_, ok := ts.Current()
	assert.False(t, ok)
}

func TestToastListeners(t *testing.T) {
	ts := NewToastService(time.Minute, testLogger(t))

	var got []*Toast
	ts.Listen("ui", func(toast *Toast) { got = append(got, toast) })

	ts.Success("hello")
	ts.Dismiss()

	require.Len(t, got, 2)
	require.NotNil(t, got[0])
	assert.Equal(t, "hello", got[0].Message)
	assert.Nil(t, got[1])

	ts.Unlisten("ui")
	ts.Success("unheard")
	assert.Len(t, got, 2)
}
