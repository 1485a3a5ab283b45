package importer

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of loading one statement file.
type FileResult struct {
	Path    string
	Records []Record
	Errors  []string // Skipped rows
	Err     error    // The file could not be read
}

// LoadFiles loads several statement files in parallel.
//
// The results are in the order of paths. A file that cannot be opened only
// fails its own result. The returned error is only set if ctx is done.
func LoadFiles(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	done := 0

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = loadFile(path, opts)

			if opts.Progress != nil {
				mu.Lock()
				done++
				opts.Progress(done, len(paths))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func loadFile(path string, opts Options) FileResult {
	f, err := os.Open(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("could not open statement: %w", err)}
	}
	defer f.Close()

	records, errs := Load(f, opts)
	return FileResult{Path: path, Records: records, Errors: errs}
}
