package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewHub_PublishDelivers(t *testing.T) {
	hub := NewPreviewHub(time.Minute)
	id := hub.Create()

	events, cancel, err := hub.Subscribe(id)
	require.NoError(t, err)
	defer cancel()

	version, subs, err := hub.Publish(id, "modern", "<p>one</p>")
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.Equal(t, 1, subs)

	ev := <-events
	assert.Equal(t, PreviewEvent{Version: 1, Template: "modern", HTML: "<p>one</p>"}, ev)
}

func TestPreviewHub_SlowSubscriberSeesNewest(t *testing.T) {
	hub := NewPreviewHub(time.Minute)
	id := hub.Create()
	events, cancel, err := hub.Subscribe(id)
	require.NoError(t, err)
	defer cancel()

	for _, html := range []string{"a", "b", "c"} {
		_, _, err := hub.Publish(id, "modern", html)
		require.NoError(t, err)
	}
	ev := <-events
	assert.Equal(t, 3, ev.Version)
	assert.Equal(t, "c", ev.HTML)
	assert.Empty(t, events)
}

func TestPreviewHub_LateSubscriberGetsLast(t *testing.T) {
	hub := NewPreviewHub(time.Minute)
	id := hub.Create()

	last, err := hub.Last(id)
	require.NoError(t, err)
	assert.Nil(t, last)

	_, _, err = hub.Publish(id, "classic", "<p>hi</p>")
	require.NoError(t, err)

	events, cancel, err := hub.Subscribe(id)
	require.NoError(t, err)
	defer cancel()
	assert.Equal(t, "<p>hi</p>", (<-events).HTML)
}

func TestPreviewHub_UnknownSession(t *testing.T) {
	hub := NewPreviewHub(time.Minute)
	id := uuid.New()

	_, err := hub.Last(id)
	assert.IsType(t, &ErrSessionNotFound{}, err)
	_, _, err = hub.Subscribe(id)
	assert.IsType(t, &ErrSessionNotFound{}, err)
	_, _, err = hub.Publish(id, "modern", "")
	assert.IsType(t, &ErrSessionNotFound{}, err)
}

func TestPreviewHub_Sweep(t *testing.T) {
	hub := NewPreviewHub(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hub.now = func() time.Time { return now }

	idle := hub.Create()
	watched := hub.Create()
	_, cancel, err := hub.Subscribe(watched)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, hub.Sweep())
	assert.Equal(t, 1, hub.Len())
	_, err = hub.Last(idle)
	assert.Error(t, err)

	cancel()
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, hub.Sweep())
	assert.Equal(t, 0, hub.Len())
}
