package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	godiff "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dacharyc/huntdiff"
	"github.com/dacharyc/huntdiff/internal/tree"
)

type compareCase struct {
	name string
	a, b []string
}

// compareCmd validates huntdiff output against go-diff's line mode.
func compareCmd(newLogger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [FILE1 FILE2]",
		Short: "Compare huntdiff with go-diff on two files or on built-in samples",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 args, received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cases := sampleCases()
			if len(args) == 2 {
				a, err := tree.ReadLines(args[0])
				if err != nil {
					return err
				}
				b, err := tree.ReadLines(args[1])
				if err != nil {
					return err
				}
				cases = []compareCase{{name: args[0] + " vs " + args[1], a: a, b: b}}
			}

			logger := newLogger()
			for _, tc := range cases {
				if err := compareOne(cmd, tc, logger); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func compareOne(cmd *cobra.Command, tc compareCase, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n=== %s ===\n", tc.name)
	fmt.Fprintf(out, "A: %d lines, B: %d lines\n", len(tc.a), len(tc.b))

	start := time.Now()
	diffs, err := huntdiff.Diff(cmd.Context(), tc.a, tc.b, huntdiff.WithLogger(logger))
	if err != nil {
		return err
	}
	huntTime := time.Since(start)

	start = time.Now()
	gd := goDiffLines(tc.a, tc.b)
	goDiffTime := time.Since(start)

	hs := huntdiff.Stats(diffs)
	fmt.Fprintf(out, "\nhuntdiff: %v\n", huntTime)
	fmt.Fprintf(out, "  Change regions: %d (+%d -%d lines)\n", hs.Regions, hs.Additions, hs.Deletions)

	fmt.Fprintf(out, "\ngo-diff:  %v\n", goDiffTime)
	fmt.Fprintf(out, "  Change regions: %d (+%d -%d lines)\n", gd.Regions, gd.Additions, gd.Deletions)

	if len(tc.a) <= 20 && len(tc.b) <= 20 {
		fmt.Fprintln(out, "\nhuntdiff output:")
		for _, line := range huntdiff.SplitLines(huntdiff.FormatNormal(diffs)) {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}

// goDiffLines runs diff-match-patch in line mode and summarizes the result
// the same way huntdiff.Stats does: a run of deletes and inserts between two
// equal runs is one region.
func goDiffLines(a, b []string) huntdiff.Summary {
	dmp := godiff.New()
	ra, rb, _ := dmp.DiffLinesToRunes(joinText(a), joinText(b))
	diffs := dmp.DiffMainRunes(ra, rb, false)

	var s huntdiff.Summary
	inChange := false
	for _, d := range diffs {
		// In line mode every rune stands for one line.
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case godiff.DiffEqual:
			inChange = false
			continue
		case godiff.DiffDelete:
			s.Deletions += n
		case godiff.DiffInsert:
			s.Additions += n
		}
		if !inChange {
			s.Regions++
			inChange = true
		}
	}
	return s
}

func joinText(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func sampleCases() []compareCase {
	cases := []compareCase{
		{
			name: "Single changed line",
			a:    []string{"package main", "", "func main() {", "\tprintln(1)", "}"},
			b:    []string{"package main", "", "func main() {", "\tprintln(2)", "}"},
		},
		{
			name: "Repeated lines",
			a:    []string{"}", "", "}", "", "func a() {", "}", ""},
			b:    []string{"}", "", "func a() {", "}", "", "}", ""},
		},
		{
			name: "Moved block",
			a:    strings.Split("one two three four five six", " "),
			b:    strings.Split("four five six one two three", " "),
		},
	}

	cases = append(cases, compareCase{
		name: "Large file (500 lines, scattered changes)",
		a:    generateLargeText(500, 0),
		b:    generateLargeText(500, 42),
	})
	return cases
}

func generateLargeText(lines int, seed int) []string {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"func", "main", "return", "if", "else", "for", "range", "var", "const",
		"import", "package", "type", "struct", "interface", "map", "slice"}

	result := make([]string, lines)
	for i := 0; i < lines; i++ {
		lineWords := make([]string, 5+i%3)
		for j := range lineWords {
			idx := (i*7 + j*13) % len(words)
			lineWords[j] = words[idx]
		}
		result[i] = strings.Join(lineWords, " ")
	}

	// Introduce some changes based on seed
	for i := seed % 10; i < lines; i += 10 + seed%5 {
		result[i] = "CHANGED LINE " + fmt.Sprint(i)
	}

	return result
}
