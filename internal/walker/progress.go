package walker

import (
	"sync"
	"sync/atomic"
	"time"
)

// Progress reports walk progress.
type Progress struct {
	// CurrentPath is the entry most recently visited.
	CurrentPath string
	Files       int64
	Dirs        int64
	Links       int64
	// Bytes is the apparent size of the files seen so far.
	Bytes  int64
	Errors int64
	// Done is set on the last report.
	Done      bool
	StartTime time.Time
	Duration  time.Duration
}

// ItemsPerSecond returns the walk rate.
func (p Progress) ItemsPerSecond() float64 {
	if p.Duration.Seconds() == 0 {
		return 0
	}
	return float64(p.Files+p.Dirs+p.Links) / p.Duration.Seconds()
}

type counters struct {
	files, dirs, links, bytes, errors atomic.Int64
}

type progressLoop struct {
	current atomic.Value // string
	start   time.Time
	stop    chan struct{}
	wg      sync.WaitGroup
}

func (p *progressLoop) setCurrent(path string) { p.current.Store(path) }

func (w *walk) snapshot(done bool) Progress {
	cur, _ := w.progress.current.Load().(string)
	return Progress{
		CurrentPath: cur,
		Files:       w.counters.files.Load(),
		Dirs:        w.counters.dirs.Load(),
		Links:       w.counters.links.Load(),
		Bytes:       w.counters.bytes.Load(),
		Errors:      w.counters.errors.Load(),
		Done:        done,
		StartTime:   w.progress.start,
		Duration:    time.Since(w.progress.start),
	}
}

func (w *walk) startProgress() {
	w.progress.start = time.Now()
	if w.opts.Progress == nil {
		return
	}

	interval := w.opts.ProgressInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	w.progress.stop = make(chan struct{})
	w.progress.wg.Add(1)
	go func() {
		defer w.progress.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.opts.Progress(w.snapshot(false))
			case <-w.progress.stop:
				return
			case <-w.ctx.Done():
				return
			}
		}
	}()
}

// stopProgress ends the ticker and sends the final report.
func (w *walk) stopProgress() {
	if w.opts.Progress == nil {
		return
	}
	close(w.progress.stop)
	w.progress.wg.Wait()
	w.opts.Progress(w.snapshot(true))
}
