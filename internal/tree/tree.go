// Package tree compares two directory trees file by file.
package tree

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dacharyc/huntdiff"
)

// Status describes how a path compares between the two trees.
type Status int

const (
	// Same means both files exist and have no differences.
	Same Status = iota
	// Differ means both files exist and differ.
	Differ
	// OnlyFirst means the path exists only in the first tree.
	OnlyFirst
	// OnlySecond means the path exists only in the second tree.
	OnlySecond
	// BinaryDiffer means both files exist, at least one is binary, and their bytes differ.
	BinaryDiffer
)

// String returns a string representation of the Status.
func (s Status) String() string {
	switch s {
	case Same:
		return "Same"
	case Differ:
		return "Differ"
	case OnlyFirst:
		return "OnlyFirst"
	case OnlySecond:
		return "OnlySecond"
	case BinaryDiffer:
		return "BinaryDiffer"
	default:
		return "Unknown"
	}
}

// Result is the comparison of one relative path.
type Result struct {
	Path   string // slash-separated, relative to the tree roots
	Status Status
	Diffs  []huntdiff.Difference // set when Status is Differ
}

// Comparer diffs directory trees. The zero value uses GOMAXPROCS workers
// and exact line comparison.
type Comparer struct {
	Jobs    int // maximum concurrent file diffs; 0 means GOMAXPROCS
	Options []huntdiff.Option
	Logger  *slog.Logger
}

// Compare walks dir1 and dir2 and compares every regular file. Results are
// sorted by path. Each pair of files is diffed independently on its own
// goroutine; the first error cancels the remaining work.
func (c *Comparer) Compare(ctx context.Context, dir1, dir2 string) ([]Result, error) {
	files1, err := listFiles(dir1)
	if err != nil {
		return nil, err
	}
	files2, err := listFiles(dir2)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files1)+len(files2))
	for p := range files1 {
		paths = append(paths, p)
	}
	for p := range files2 {
		if !files1[p] {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, p := range paths {
		results[i].Path = p
		switch {
		case !files2[p]:
			results[i].Status = OnlyFirst
			continue
		case !files1[p]:
			results[i].Status = OnlySecond
			continue
		}

		g.Go(func() error {
			res, err := c.compareFile(gctx, filepath.Join(dir1, filepath.FromSlash(p)), filepath.Join(dir2, filepath.FromSlash(p)))
			if err != nil {
				return fmt.Errorf("compare %s: %w", p, err)
			}
			res.Path = p
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("tree compare complete", "dir1", dir1, "dir2", dir2, "paths", len(paths), "jobs", jobs)
	return results, nil
}

func (c *Comparer) compareFile(ctx context.Context, path1, path2 string) (Result, error) {
	data1, err := os.ReadFile(path1)
	if err != nil {
		return Result{}, err
	}
	data2, err := os.ReadFile(path2)
	if err != nil {
		return Result{}, err
	}

	if isBinary(data1) || isBinary(data2) {
		if bytes.Equal(data1, data2) {
			return Result{Status: Same}, nil
		}
		return Result{Status: BinaryDiffer}, nil
	}

	diffs, err := huntdiff.Diff(ctx, huntdiff.SplitLines(string(data1)), huntdiff.SplitLines(string(data2)), c.Options...)
	if err != nil {
		return Result{}, err
	}
	if len(diffs) == 0 {
		return Result{Status: Same}, nil
	}
	return Result{Status: Differ, Diffs: diffs}, nil
}

// ReadLines reads a text file and splits it into lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return huntdiff.SplitLines(string(data)), nil
}

// IsBinaryFile reports whether the file at path looks binary.
func IsBinaryFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return isBinary(data), nil
}

// isBinary reports whether data contains a NUL byte in its first 8000 bytes,
// the same sniffing rule git uses.
func isBinary(data []byte) bool {
	if len(data) > 8000 {
		data = data[:8000]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// listFiles returns the slash-separated relative paths of the regular files under root.
func listFiles(root string) (map[string]bool, error) {
	files := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
