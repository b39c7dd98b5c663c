package htmlio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileFunc transforms the source of one page. name is the base file name.
// Returning an error skips the file; it does not stop the run.
type FileFunc func(ctx context.Context, name, src string) (string, error)

// Skipped names a file that could not be processed and why.
type Skipped struct {
	Name string
	Err  error
}

// DirResult lists the outcome of ProcessDir in filename order.
type DirResult struct {
	Processed []string
	Skipped   []Skipped
}

type outcome struct {
	name string
	err  error
}

// ProcessDir applies fn to every .html/.htm file directly inside src and
// writes each result under the same name into dst. dst may equal src to
// rewrite pages in place; an empty dst writes nothing (dry run).
//
// Behavior:
//   - stable ordering by filename in the result
//   - unreadable files and files fn rejects are skipped and reported
//   - at most workers files are processed at once
//   - write failures abort the run
func ProcessDir(ctx context.Context, src, dst string, workers int, log *zap.Logger, fn FileFunc) (DirResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return DirResult{}, fmt.Errorf("read dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isHTMLName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if dst != "" {
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return DirResult{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	outcomes := make([]outcome, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			b, err := os.ReadFile(filepath.Join(src, name))
			if err != nil {
				outcomes[i] = outcome{name: name, err: fmt.Errorf("read file: %w", err)}
				return nil
			}

			out, err := fn(gctx, name, string(b))
			if err != nil {
				outcomes[i] = outcome{name: name, err: err}
				return nil
			}

			if dst != "" {
				if err := writeFileAtomic(filepath.Join(dst, name), []byte(out)); err != nil {
					return fmt.Errorf("write %s: %w", name, err)
				}
			}
			outcomes[i] = outcome{name: name}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return DirResult{}, err
	}

	var res DirResult
	for _, o := range outcomes {
		if o.err != nil {
			log.Warn("skipping file", zap.String("file", o.name), zap.Error(o.err))
			res.Skipped = append(res.Skipped, Skipped{Name: o.name, Err: o.err})
			continue
		}
		res.Processed = append(res.Processed, o.name)
	}
	return res, nil
}

func isHTMLName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so an interrupted run never leaves a half-written page.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
