// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ik5/zimtohrli"
)

var (
	compareJobs     int
	compareProgress bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <reference> <degraded>...",
	Short: "Print the perceptual distance of each degraded file to the reference",
	Long: `Print the perceptual distance of each degraded file to the reference.

Distances are printed in argument order, one per line. With several degraded
files they are analyzed in parallel and a progress bar is shown on stderr.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().IntVarP(&compareJobs, "jobs", "j", 0, "parallel workers (default: number of CPUs)")
	compareCmd.Flags().BoolVar(&compareProgress, "progress", true, "show a progress bar for several files")
}

// comparison is one line of compare output.
type comparison struct {
	Reference string  `json:"reference"`
	Degraded  string  `json:"degraded"`
	Distance  float32 `json:"distance"`
	Error     string  `json:"error,omitempty"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	z, err := newAnalyzer(cmd)
	if err != nil {
		return err
	}

	refPath, degraded := args[0], args[1:]

	ref, err := analyzeFile(z, refPath)
	if err != nil {
		return err
	}

	results := compareAll(z, ref, refPath, degraded)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			slog.Error("compare failed", "degraded", r.Degraded, "error", r.Error)
		}
	}

	if outputJSON {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Error == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.6f\n", r.Degraded, r.Distance)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d comparisons failed", failed, len(results))
	}
	return nil
}

// compareAll analyzes the degraded files on a worker pool and returns the
// results in input order. ref is cloned for every comparison because
// Distance normalizes its arguments.
func compareAll(z *zimtohrli.Analyzer, ref *zimtohrli.Spectrogram, refPath string, degraded []string) []comparison {
	workers := compareJobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(degraded))

	var (
		p   *mpb.Progress
		bar *mpb.Bar
	)
	if compareProgress && len(degraded) > 1 {
		p = mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
		bar = p.AddBar(int64(len(degraded)),
			mpb.PrependDecorators(
				decor.Name("Comparing: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
				decor.AverageETA(decor.ET_STYLE_GO),
			),
		)
	}

	results := make([]comparison, len(degraded))
	jobs := make(chan int, len(degraded))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = compareOne(z, ref.Clone(), refPath, degraded[i])
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for i := range degraded {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if p != nil {
		p.Wait()
	}
	return results
}

func compareOne(z *zimtohrli.Analyzer, ref *zimtohrli.Spectrogram, refPath, path string) comparison {
	r := comparison{Reference: refPath, Degraded: path}

	deg, err := analyzeFile(z, path)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	d, err := z.Distance(ref, deg)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Distance = d
	return r
}
