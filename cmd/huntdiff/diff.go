package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dacharyc/huntdiff"
	"github.com/dacharyc/huntdiff/internal/config"
	"github.com/dacharyc/huntdiff/internal/tree"
)

func diffCmd(newLogger func() *slog.Logger) *cobra.Command {
	var (
		configPath  string
		recursive   bool
		brief       bool
		asJSON      bool
		color       string
		jobs        int
		ignoreCase  bool
		ignoreSpace bool
		ignoreInner bool
	)

	cmd := &cobra.Command{
		Use:   "diff [flags] FILE1 FILE2",
		Short: "Compare two files, or two directories with -r",
		Long: "Compare two files line by line and print the differences in normal diff format.\n" +
			"Exit status is 0 if the inputs are the same, 1 if they differ and 2 on trouble.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("ignore-case") {
				cfg.IgnoreCase = ignoreCase
			}
			if flags.Changed("ignore-space") {
				cfg.IgnoreSpace = ignoreSpace
			}
			if flags.Changed("ignore-inner-space") {
				cfg.IgnoreInnerSpace = ignoreInner
			}
			if flags.Changed("color") {
				cfg.Color = color
			}
			if flags.Changed("jobs") {
				cfg.Jobs = jobs
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger := newLogger()
			r := &diffRun{
				out:    newPrinter(cmd.OutOrStdout(), cfg.Color),
				cfg:    cfg,
				brief:  brief,
				asJSON: asJSON,
				logger: logger,
				opts:   []huntdiff.Option{huntdiff.WithOptions(cfg.Options()), huntdiff.WithLogger(logger)},
			}
			if recursive {
				return r.trees(ctx, args[0], args[1])
			}
			return r.files(ctx, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", config.DefaultPath(), "configuration file (YAML, or TOML by .toml extension)")
	f.BoolVarP(&recursive, "recursive", "r", false, "recursively compare directories")
	f.BoolVarP(&brief, "brief", "q", false, "report only whether files differ")
	f.BoolVar(&asJSON, "json", false, "print differences as JSON")
	f.StringVar(&color, "color", config.ColorAuto, "colorize output: auto, always or never")
	f.IntVarP(&jobs, "jobs", "j", 0, "files compared in parallel with -r (0 means one per CPU)")
	f.BoolVarP(&ignoreCase, "ignore-case", "i", false, "ignore case differences")
	f.BoolVarP(&ignoreSpace, "ignore-space", "t", false, "ignore leading and trailing whitespace")
	f.BoolVarP(&ignoreInner, "ignore-inner-space", "b", false, "treat runs of inner whitespace as a single space")
	return cmd
}

type diffRun struct {
	out    *printer
	cfg    config.Config
	brief  bool
	asJSON bool
	logger *slog.Logger
	opts   []huntdiff.Option
}

func (r *diffRun) files(ctx context.Context, file1, file2 string) error {
	for _, f := range []string{file1, file2} {
		info, err := os.Stat(f)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory (use -r to compare directories)", f)
		}
	}

	bin1, err := tree.IsBinaryFile(file1)
	if err != nil {
		return err
	}
	bin2, err := tree.IsBinaryFile(file2)
	if err != nil {
		return err
	}
	if bin1 || bin2 {
		same, err := sameBytes(file1, file2)
		if err != nil || same {
			return err
		}
		if r.asJSON {
			if err := r.out.json([]jsonFile{{Path: file2, Status: tree.BinaryDiffer.String()}}); err != nil {
				return err
			}
		} else {
			r.out.linef("Binary files %s and %s differ", file1, file2)
		}
		return errDifferences
	}

	lines1, err := tree.ReadLines(file1)
	if err != nil {
		return err
	}
	lines2, err := tree.ReadLines(file2)
	if err != nil {
		return err
	}

	diffs, err := huntdiff.Diff(ctx, lines1, lines2, r.opts...)
	if err != nil {
		return err
	}

	switch {
	case r.asJSON:
		if err := r.out.json(toJSONDifferences(diffs)); err != nil {
			return err
		}
	case len(diffs) == 0:
	case r.brief:
		r.out.linef("Files %s and %s differ", file1, file2)
	default:
		if err := r.out.normal(diffs); err != nil {
			return err
		}
	}

	if len(diffs) > 0 {
		return errDifferences
	}
	return nil
}

func (r *diffRun) trees(ctx context.Context, dir1, dir2 string) error {
	c := &tree.Comparer{Jobs: r.cfg.Jobs, Options: r.opts, Logger: r.logger}
	results, err := c.Compare(ctx, dir1, dir2)
	if err != nil {
		return err
	}

	differ := false
	for _, res := range results {
		if res.Status != tree.Same {
			differ = true
		}
	}

	if r.asJSON {
		files := make([]jsonFile, 0, len(results))
		for _, res := range results {
			if res.Status == tree.Same {
				continue
			}
			files = append(files, jsonFile{
				Path:        res.Path,
				Status:      res.Status.String(),
				Differences: toJSONDifferences(res.Diffs),
			})
		}
		if err := r.out.json(files); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			p1 := filepath.Join(dir1, filepath.FromSlash(res.Path))
			p2 := filepath.Join(dir2, filepath.FromSlash(res.Path))
			switch res.Status {
			case tree.OnlyFirst:
				r.out.linef("Only in %s: %s", filepath.Dir(p1), filepath.Base(p1))
			case tree.OnlySecond:
				r.out.linef("Only in %s: %s", filepath.Dir(p2), filepath.Base(p2))
			case tree.BinaryDiffer:
				r.out.linef("Binary files %s and %s differ", p1, p2)
			case tree.Differ:
				if r.brief {
					r.out.linef("Files %s and %s differ", p1, p2)
					continue
				}
				r.out.linef("diff %s %s", p1, p2)
				if err := r.out.normal(res.Diffs); err != nil {
					return err
				}
			}
		}
	}

	if differ {
		return errDifferences
	}
	return nil
}

func sameBytes(file1, file2 string) (bool, error) {
	data1, err := os.ReadFile(file1)
	if err != nil {
		return false, err
	}
	data2, err := os.ReadFile(file2)
	if err != nil {
		return false, err
	}
	return string(data1) == string(data2), nil
}
