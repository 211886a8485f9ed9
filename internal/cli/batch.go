package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/provenly/vouch/internal/logger"
	"github.com/provenly/vouch/internal/pipeline"
	"github.com/provenly/vouch/internal/worker"
)

var (
	batchOutDir  string
	batchWorkers int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Verify every person file in a directory",
	Long: `Batch walks a directory for *.yaml / *.yml person files and verifies
each one, writing <name>.json and <name>.md reports into the output
directory. Workers fan out across persons; each verification run is
still sequential internally and all workers share one provider
limiter, so the per-provider request budget holds.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "reports", "output directory for reports")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent verifications (default: config concurrency.workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 2*time.Hour, "overall batch timeout")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable search result cache")
	batchCmd.Flags().IntVar(&maxResults, "max-results", 8, "hits requested per query")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if batchWorkers > 0 {
		cfg.Concurrency.Workers = batchWorkers
	}

	paths, err := personFiles(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no person files (*.yaml, *.yml) found in %s", args[0])
	}

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	log := logger.New(logLevel())
	verifier, err := pipeline.NewVerifier(cfg, log)
	if err != nil {
		return fmt.Errorf("build verifier: %w", err)
	}
	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	jobs := make([]worker.Job, 0, len(paths))
	for _, p := range paths {
		jobs = append(jobs, &worker.VerifyJob{
			Path:      p,
			OutputDir: batchOutDir,
			Verifier:  verifier,
			Renderer:  renderer,
		})
	}

	log.Info("starting batch", "persons", len(jobs), "workers", cfg.Concurrency.Workers)
	pool := worker.NewPool(cfg.Concurrency.Workers)
	results := pool.Run(ctx, jobs)

	var failed int
	for _, r := range results {
		vr, ok := r.(*worker.VerifyResult)
		if !ok {
			continue
		}
		if err := vr.GetError(); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", vr.Path, err)
			continue
		}
		fmt.Printf("✓ %s: overall confidence %.2f\n", vr.Name, vr.Overall)
	}

	fmt.Printf("\nProcessed %d of %d person(s), %d failed. Reports in %s\n",
		len(results), len(jobs), failed, batchOutDir)
	if failed > 0 {
		return fmt.Errorf("%d verification(s) failed", failed)
	}
	return nil
}

// personFiles lists YAML files directly inside dir, sorted by name
func personFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
