package texture

import (
	"context"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/orrery/internal/logger"
)

// Source provides raw asset bytes.
type Source interface {
	Load(name string) ([]byte, error)
}

// Releaser is implemented by sources that cache raw bytes. The loader
// releases each path once it has been decoded.
type Releaser interface {
	Release(name string)
}

// Result is a finished decode. Err is set when the asset is missing or
// undecodable; the image is nil in that case.
type Result struct {
	Path  string
	Image *image.RGBA
	Err   error
}

// queueSize bounds pending requests and undelivered results.
const queueSize = 256

// Loader decodes textures on a pool of worker goroutines.
// Request and Poll are meant to be called from the render thread only.
type Loader struct {
	src    Source
	maxDim int

	jobs    chan string
	results chan Result

	requested map[string]bool

	group     *errgroup.Group
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewLoader starts workers decoding assets from src.
func NewLoader(ctx context.Context, src Source, workers, maxDim int) *Loader {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	l := &Loader{
		src:       src,
		maxDim:    maxDim,
		jobs:      make(chan string, queueSize),
		results:   make(chan Result, queueSize),
		requested: make(map[string]bool),
		group:     g,
		cancel:    cancel,
	}

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return l.work(gctx)
		})
	}
	return l
}

func (l *Loader) work(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-l.jobs:
			if !ok {
				return nil
			}
			res := l.load(path)
			select {
			case l.results <- res:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (l *Loader) load(path string) Result {
	data, err := l.src.Load(path)
	if r, ok := l.src.(Releaser); ok {
		defer r.Release(path)
	}
	if err != nil {
		logger.Warn("texture unavailable, rendering untextured",
			zap.String("path", path), zap.Error(err))
		return Result{Path: path, Err: err}
	}

	img, err := Decode(data, l.maxDim)
	if err != nil {
		err = fmt.Errorf("texture %s: %w", path, err)
		logger.Warn("texture undecodable, rendering untextured",
			zap.String("path", path), zap.Error(err))
		return Result{Path: path, Err: err}
	}

	logger.Debug("texture decoded",
		zap.String("path", path),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
	return Result{Path: path, Image: img}
}

// Request queues a path for decoding. Each path is decoded at most once.
// Returns false if the path was already requested or the queue is full.
func (l *Loader) Request(path string) bool {
	if path == "" || l.requested[path] {
		return false
	}
	select {
	case l.jobs <- path:
		l.requested[path] = true
		return true
	default:
		logger.Warn("texture queue full", zap.String("path", path))
		return false
	}
}

// Forget allows path to be requested again.
func (l *Loader) Forget(path string) {
	delete(l.requested, path)
}

// Poll returns every result finished since the last call without blocking.
func (l *Loader) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Close stops the workers. Pending requests are dropped.
func (l *Loader) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.cancel()
		err = l.group.Wait()
	})
	return err
}
