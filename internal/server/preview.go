package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PreviewEvent is pushed to live-preview subscribers after each re-render.
type PreviewEvent struct {
	Version  int    `json:"version"`
	Template string `json:"template"`
	HTML     string `json:"html"`
}

type previewSession struct {
	subs    map[chan PreviewEvent]struct{}
	last    *PreviewEvent
	touched time.Time
}

// PreviewHub fans re-rendered fragments out to the subscribers of each
// live-preview session. Slow subscribers only ever see the newest fragment.
type PreviewHub struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*previewSession
	ttl      time.Duration
	now      func() time.Time
}

// NewPreviewHub creates a hub whose idle sessions expire after ttl.
func NewPreviewHub(ttl time.Duration) *PreviewHub {
	return &PreviewHub{sessions: make(map[uuid.UUID]*previewSession), ttl: ttl, now: time.Now}
}

// Create opens a new session.
func (h *PreviewHub) Create() uuid.UUID {
	id := uuid.New()
	h.mu.Lock()
	h.sessions[id] = &previewSession{subs: make(map[chan PreviewEvent]struct{}), touched: h.now()}
	h.mu.Unlock()
	return id
}

// Last returns the most recent event of a session, if any.
func (h *PreviewHub) Last(id uuid.UUID) (*PreviewEvent, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, &ErrSessionNotFound{ID: id.String()}
	}
	if s.last == nil {
		return nil, nil
	}
	ev := *s.last
	return &ev, nil
}

// Subscribe registers a listener. The latest fragment, if any, is delivered
// immediately. The returned cancel func must be called when done.
func (h *PreviewHub) Subscribe(id uuid.UUID) (<-chan PreviewEvent, func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		return nil, nil, &ErrSessionNotFound{ID: id.String()}
	}
	ch := make(chan PreviewEvent, 1)
	if s.last != nil {
		ch <- *s.last
	}
	s.subs[ch] = struct{}{}
	s.touched = h.now()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if s, ok := h.sessions[id]; ok {
			delete(s.subs, ch)
			s.touched = h.now()
		}
	}
	return ch, cancel, nil
}

// Publish stores a new fragment and delivers it to every subscriber. It
// returns the event version and the number of subscribers reached.
func (h *PreviewHub) Publish(id uuid.UUID, templateID, html string) (int, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		return 0, 0, &ErrSessionNotFound{ID: id.String()}
	}
	version := 1
	if s.last != nil {
		version = s.last.Version + 1
	}
	ev := PreviewEvent{Version: version, Template: templateID, HTML: html}
	s.last = &ev
	s.touched = h.now()

	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Replace the undelivered older fragment.
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
	return version, len(s.subs), nil
}

// Sweep removes sessions idle for longer than the hub's ttl that have no
// subscribers. It returns the number removed.
func (h *PreviewHub) Sweep() int {
	if h.ttl <= 0 {
		return 0
	}
	cutoff := h.now().Add(-h.ttl)
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for id, s := range h.sessions {
		if len(s.subs) == 0 && s.touched.Before(cutoff) {
			delete(h.sessions, id)
			n++
		}
	}
	return n
}

// Len is the number of open sessions.
func (h *PreviewHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}
