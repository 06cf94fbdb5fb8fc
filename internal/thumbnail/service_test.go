package thumbnail

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapturer struct {
	calls atomic.Int32
	err   error
	html  atomic.Value
}

func (f *fakeCapturer) Capture(_ context.Context, html string) ([]byte, error) {
	f.calls.Add(1)
	f.html.Store(html)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG fake"), nil
}

func TestThumbnail_CachesPerTemplate(t *testing.T) {
	fc := &fakeCapturer{}
	s := NewService(rendering.NewRenderer(nil), fc, nil)

	png, err := s.Thumbnail(context.Background(), "classic")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG fake"), png)

	_, err = s.Thumbnail(context.Background(), "classic")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fc.calls.Load())

	html := fc.html.Load().(string)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `data-template="classic"`)
	assert.Contains(t, html, "John Doe")
}

func TestThumbnail_ConcurrentRequestsShareCapture(t *testing.T) {
	fc := &fakeCapturer{}
	s := NewService(rendering.NewRenderer(nil), fc, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Thumbnail(context.Background(), "elegant")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, fc.calls.Load(), int32(8))
	_, err := s.Thumbnail(context.Background(), "elegant")
	require.NoError(t, err)
	calls := fc.calls.Load()
	_, _ = s.Thumbnail(context.Background(), "elegant")
	assert.Equal(t, calls, fc.calls.Load())
}

func TestThumbnail_UnknownTemplate(t *testing.T) {
	s := NewService(rendering.NewRenderer(nil), &fakeCapturer{}, nil)
	_, err := s.Thumbnail(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestThumbnail_CaptureErrorNotCached(t *testing.T) {
	fc := &fakeCapturer{err: errors.New("no chrome")}
	s := NewService(rendering.NewRenderer(nil), fc, nil)

	_, err := s.Thumbnail(context.Background(), "modern")
	require.Error(t, err)
	_, err = s.Thumbnail(context.Background(), "modern")
	require.Error(t, err)
	assert.Equal(t, int32(2), fc.calls.Load())
}

func TestWarm(t *testing.T) {
	fc := &fakeCapturer{}
	s := NewService(rendering.NewRenderer(nil), fc, nil)
	require.NoError(t, s.Warm(context.Background()))
	assert.Equal(t, int32(len(templates.IDs())), fc.calls.Load())
}

type blockingCapturer struct {
	calls   atomic.Int32
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCapturer) Capture(ctx context.Context, _ string) ([]byte, error) {
	b.calls.Add(1)
	b.once.Do(func() { close(b.entered) })
	<-b.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte("\x89PNG shared"), nil
}

func TestThumbnail_FirstCallerCancelDoesNotFailOthers(t *testing.T) {
	bc := &blockingCapturer{entered: make(chan struct{}), release: make(chan struct{})}
	s := NewService(rendering.NewRenderer(nil), bc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := s.Thumbnail(ctx, "modern")
		first <- err
	}()
	<-bc.entered

	type result struct {
		png []byte
		err error
	}
	second := make(chan result, 1)
	go func() {
		png, err := s.Thumbnail(context.Background(), "modern")
		second <- result{png, err}
	}()

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(bc.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, []byte("\x89PNG shared"), res.png)
	assert.Equal(t, int32(1), bc.calls.Load())

	png, err := s.Thumbnail(context.Background(), "modern")
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG shared"), png)
}
