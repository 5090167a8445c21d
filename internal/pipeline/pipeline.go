// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"rackdec-core/adg"
	"rackdec-core/rack"
)

// Config controls the batch decode pipeline.
type Config struct {
	Workers int // number of decode goroutines (>=1)
}

// Result is the outcome of decoding one preset file. Err is set for
// per-file failures; the batch carries on regardless, so one corrupt
// preset never poisons the rest.
type Result struct {
	Path     string
	Analysis *rack.Analysis
	Err      error
}

// ForEach decodes paths concurrently and calls visit once per file
// from a single collector goroutine. Each decode is independent; no
// state is shared between files. It returns the first visit error or
// context cancellation; per-file decode errors are delivered inside
// Result instead.
func ForEach(
	ctx context.Context,
	cfg Config,
	paths []string,
	dec *rack.Decoder,
	visit func(Result) error,
) error {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if dec == nil {
		dec = rack.New(nil)
	}

	jobs := make(chan string, cfg.Workers*2)
	results := make(chan Result, cfg.Workers*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case p, ok := <-jobs:
					if !ok {
						return
					}
					res := Result{Path: p}
					if root, err := adg.ParseFile(p); err != nil {
						res.Err = err
					} else {
						res.Analysis, res.Err = dec.Decode(root, p)
					}
					select {
					case results <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for res := range results {
			if cerr != nil {
				continue
			}
			if err := visit(res); err != nil && cerr == nil {
				cerr = err
			}
		}
	}()

	// Feed work
feed:
	for _, p := range paths {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- p:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
