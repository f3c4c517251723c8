package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/konveyor/termbar/progress"
	"golang.org/x/sync/errgroup"
)

// workload is a synthetic job of items counted from start.
//
// With no workers the items are processed inline and the bar is updated
// after every item. With workers, the items are shared through an atomic
// counter and a single driver loop samples that counter every poll
// interval; only the driver touches the bar.
type workload struct {
	start   int64
	items   int64
	workers int
	delay   time.Duration
	poll    time.Duration
	log     logr.Logger
}

// run starts the bar, processes every item and finishes the bar. When ctx
// is cancelled or drawing fails the bar is closed instead of finished.
func (w workload) run(ctx context.Context, bar *progress.Bar) error {
	if err := bar.Start(); err != nil {
		return err
	}

	var err error
	if w.workers == 0 {
		err = w.runInline(ctx, bar)
	} else {
		err = w.runWorkers(ctx, bar)
	}
	if err != nil {
		if cerr := bar.Close(); cerr != nil {
			w.log.Error(cerr, "unable to restore terminal")
		}
		return err
	}
	return bar.Finish()
}

// ctxCheckEvery is how many inline items are processed between two checks
// for cancellation.
const ctxCheckEvery = 1024

func (w workload) runInline(ctx context.Context, bar *progress.Bar) error {
	end := w.start + w.items
	for i := w.start; i < end; i++ {
		if (i-w.start)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		w.work()
		if err := bar.Update(i + 1); err != nil {
			return err
		}
	}
	return nil
}

func (w workload) runWorkers(ctx context.Context, bar *progress.Bar) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var claimed, done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for n := 0; n < w.workers; n++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				if claimed.Add(1) > w.items {
					return nil
				}
				w.work()
				done.Add(1)
			}
		})
	}
	w.log.V(3).Info("workers started", "workers", w.workers, "items", w.items)

	finished := make(chan error, 1)
	go func() {
		finished <- g.Wait()
	}()

	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()
	for {
		select {
		case err := <-finished:
			if err != nil {
				return err
			}
			return bar.Update(w.start + done.Load())
		case <-ticker.C:
			if err := bar.Update(w.start + done.Load()); err != nil {
				cancel()
				<-finished
				return err
			}
		}
	}
}

func (w workload) work() {
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
}
