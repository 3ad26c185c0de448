package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmRunsCallbackOnce(t *testing.T) {
	cs := NewConfirmService(testLogger(t))

	confirmed, declined := 0, 0
	cs.Request("sure?", func() { confirmed++ }, func() { declined++ })

	assert.True(t, cs.Confirm())
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, 0, declined)

	// Already resolved.
	assert.False(t, cs.Confirm())
	assert.False(t, cs.Decline())
	assert.Equal(t, 1, confirmed)
}

func TestDeclineRunsDeclineCallback(t *testing.T) {
	cs := NewConfirmService(testLogger(t))

	confirmed, declined := 0, 0
	cs.Request("sure?", func() { confirmed++ }, func() { declined++ })

	assert.True(t, cs.Decline())
	assert.Equal(t, 0, confirmed)
	assert.Equal(t, 1, declined)
}

func TestNewRequestDisplacesPending(t *testing.T) {
	cs := NewConfirmService(testLogger(t))

	firstConfirmed, firstDeclined := 0, 0
	secondConfirmed := 0

	cs.Request("first?", func() { firstConfirmed++ }, func() { firstDeclined++ })
	id := cs.Request("second?", func() { secondConfirmed++ }, nil)

	// The replaced prompt's callbacks never run.
	assert.Equal(t, 0, firstDeclined)
	assert.Equal(t, 0, firstConfirmed)

	pending, ok := cs.Pending()
	require.True(t, ok)
	assert.Equal(t, id, pending.ID)
	assert.Equal(t, "second?", pending.Message)

	assert.True(t, cs.Confirm())
	assert.Equal(t, 1, secondConfirmed)
	assert.Equal(t, 0, firstConfirmed+firstDeclined)
}

func TestResolveWithoutPending(t *testing.T) {
	cs := NewConfirmService(testLogger(t))

	assert.False(t, cs.Confirm())
	assert.False(t, cs.Decline())
	_, ok := cs.Pending()
	assert.False(t, ok)
}

func TestNilCallbacksAreSafe(t *testing.T) {
	cs := NewConfirmService(testLogger(t))

	cs.Request("sure?", nil, nil)
	assert.True(t, cs.Confirm())

	cs.Request("again?", nil, nil)
	assert.True(t, cs.Decline())
}
