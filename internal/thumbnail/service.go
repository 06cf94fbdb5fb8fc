package thumbnail

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// captureTimeout bounds one shared capture.
const captureTimeout = 2 * time.Minute

// ErrUnknownTemplate is returned for ids missing from the catalog.
var ErrUnknownTemplate = errors.New("unknown template")

// Service renders and caches one thumbnail per template. Concurrent
// requests for the same template share a single capture, which keeps running
// when the caller that started it gives up.
type Service struct {
	renderer *rendering.Renderer
	capturer Capturer
	log      logrus.FieldLogger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string][]byte
}

// NewService creates a thumbnail service.
func NewService(rn *rendering.Renderer, c Capturer, log logrus.FieldLogger) *Service {
	if log == nil {
		log = observability.Discard()
	}
	return &Service{renderer: rn, capturer: c, log: log, cache: make(map[string][]byte)}
}

// Thumbnail returns the PNG preview for templateID.
func (s *Service) Thumbnail(ctx context.Context, templateID string) ([]byte, error) {
	desc, ok := templates.Lookup(templateID)
	if !ok {
		return nil, ErrUnknownTemplate
	}

	s.mu.RLock()
	png, hit := s.cache[desc.ID]
	s.mu.RUnlock()
	if hit {
		return png, nil
	}

	ch := s.group.DoChan(desc.ID, func() (interface{}, error) {
		// Shared by every caller that joins this flight.
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), captureTimeout)
		defer cancel()

		sample := templates.SampleResume()
		page, err := s.renderer.Page(rendering.PageData{
			Title:    desc.Name,
			Fragment: s.renderer.ScreenSafe(sample, desc.ID),
		})
		if err != nil {
			return nil, err
		}
		png, err := s.capturer.Capture(cctx, page)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[desc.ID] = png
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{"template": desc.ID, "bytes": len(png)}).Info("captured thumbnail")
		return png, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Warm captures every template's thumbnail, stopping at the first error.
func (s *Service) Warm(ctx context.Context) error {
	for _, id := range templates.IDs() {
		if _, err := s.Thumbnail(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
