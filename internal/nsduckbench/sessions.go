package nsduckbench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nsqlite/nsduck"
	"github.com/nsqlite/nsduck/binding"
	"github.com/nsqlite/nsduck/internal/log"
	"github.com/nsqlite/nsduck/internal/nsduckbench/benchbar"
	"github.com/nsqlite/nsduck/internal/pooler"
)

const schema = `CREATE TABLE IF NOT EXISTS users (
	id INTEGER NOT NULL,
	email TEXT NOT NULL,
	active BOOLEAN NOT NULL
)`

// benchPath returns where the sessions of engine keep their data. Engines
// that lock the file get one in-memory database per session; the others
// share a file in dir.
func benchPath(engine string, dir string) (string, error) {
	eng, err := binding.Lookup(engine)
	if err != nil {
		return "", err
	}
	if eng.Exclusive() {
		return ":memory:", nil
	}

	path := filepath.Join(dir, engine, "bench.db")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// newSessionPool returns a pool of connected sessions with the bench schema.
func newSessionPool(
	conf Config, engine string, path string, logger log.Logger,
) (*pooler.Pool[*nsduck.Session], error) {
	return pooler.NewPool(pooler.Config[*nsduck.Session]{
		MaxItems: conf.Sessions,
		MaxIdle:  conf.Sessions,
		NewFunc: func(ctx context.Context) (*nsduck.Session, error) {
			s, err := nsduck.Create(ctx, path, nil, nsduck.WithEngine(engine))
			if err != nil {
				return nil, err
			}
			if _, err := s.Exec(ctx, schema); err != nil {
				_ = s.Close(ctx)
				return nil, fmt.Errorf("error creating schema: %w", err)
			}

			logger.DebugNs(log.NsBench, "session created", log.KV{
				"session": s.ID(),
				"engine":  engine,
			})
			return s, nil
		},
		CloseFunc: func(s *nsduck.Session) error {
			return s.Close(context.Background())
		},
	})
}

// runParallel runs op total times on pooled sessions with at most workers
// goroutines, and returns the first error.
func runParallel(
	ctx context.Context,
	pool *pooler.Pool[*nsduck.Session],
	workers int,
	total int,
	bar *benchbar.Bar,
	op func(ctx context.Context, s *nsduck.Session, idx int) error,
) error {
	wg := sync.WaitGroup{}
	wgch := make(chan bool, workers)
	errChan := make(chan error, total)

	for idx := range total {
		wg.Add(1)
		wgch <- true

		go func() {
			defer func() {
				wg.Done()
				<-wgch
			}()

			s, err := pool.Get(ctx)
			if err != nil {
				errChan <- err
				return
			}
			defer func() { _ = pool.Put(s) }()

			if err := op(ctx, s, idx); err != nil {
				errChan <- err
				return
			}
			bar.Inc()
		}()
	}

	wg.Wait()
	close(wgch)
	close(errChan)

	for e := range errChan {
		if e != nil {
			return e
		}
	}
	return nil
}
