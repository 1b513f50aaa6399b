package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"tonetracker/internal/bank"
	"tonetracker/internal/corpus"
	"tonetracker/internal/logging"
	"tonetracker/internal/pipeline"
	"tonetracker/internal/report"
	"tonetracker/internal/score"
)

var (
	flagBank     string
	flagLogLevel string

	flagDryRun     bool
	flagBackfill   bool
	flagLookback   int
	flagCorpus     string
	flagMirror     string
	flagSupplement string
	flagFailed     string

	flagReportOut string
)

func main() {
	root := &cobra.Command{
		Use:   "tonetracker",
		Short: "Central bank policy tone tracker",
		Long:  "Collects committee speeches, testimony and minutes, scores their policy tone and maintains the per-speaker corpus.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logging.Options{Level: flagLogLevel})
		},
	}
	root.PersistentFlags().StringVar(&flagBank, "bank", "fed", "bank profile: fed or boe")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level")

	run := &cobra.Command{
		Use:   "run",
		Short: "Collect and score new documents",
		RunE:  runPipeline,
	}
	run.Flags().BoolVar(&flagDryRun, "dry-run", false, "list what would be scored without fetching or scoring")
	run.Flags().BoolVar(&flagBackfill, "backfill", false, "collect two years back instead of the recent window")
	run.Flags().IntVar(&flagLookback, "lookback", 0, "explicit lookback window in days (overrides auto)")
	run.Flags().StringVar(&flagCorpus, "corpus", "", "corpus path (default <bank>_corpus.json)")
	run.Flags().StringVar(&flagMirror, "mirror", "", "mirror path (default public/<bank>_corpus.json)")
	run.Flags().StringVar(&flagSupplement, "supplement", "", "supplement path (default <bank>_supplement.json)")
	run.Flags().StringVar(&flagFailed, "failed", "", "failed-queue path (default <bank>_failed.json)")

	rep := &cobra.Command{
		Use:   "report",
		Short: "Render the Word digest from the corpus",
		RunE:  runReport,
	}
	rep.Flags().StringVar(&flagReportOut, "out", "", "output path (default <bank>_digest.docx)")
	rep.Flags().StringVar(&flagCorpus, "corpus", "", "corpus path (default <bank>_corpus.json)")

	root.AddCommand(run, rep)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	p, err := bank.ByID(flagBank)
	if err != nil {
		return err
	}

	var complete score.CompleteFunc
	if !flagDryRun {
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		client := score.NewAnthropicClient(apiKey, p.Model)
		complete = client.Complete
	} else {
		complete = func(ctx context.Context, prompt string) (string, error) {
			return "", fmt.Errorf("scoring disabled in dry run")
		}
	}

	scorer, err := score.NewScorer(p, complete, score.DefaultRetry())
	if err != nil {
		return err
	}

	lookback := flagLookback
	if lookback == 0 {
		if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				lookback = n
			}
		}
	}

	runner := pipeline.NewRunner(p, scorer, pipeline.Options{
		DryRun:         flagDryRun,
		Backfill:       flagBackfill,
		LookbackDays:   lookback,
		CorpusPath:     defaultPath(flagCorpus, p.ID+"_corpus.json"),
		MirrorPath:     defaultPath(flagMirror, "public/"+p.ID+"_corpus.json"),
		SupplementPath: defaultPath(flagSupplement, p.ID+"_supplement.json"),
		FailedPath:     defaultPath(flagFailed, p.ID+"_failed.json"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Collected %d, skipped %d, scored %d, failed %d\n",
		summary.Collected, summary.Skipped, summary.Scored, summary.Failed)
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	p, err := bank.ByID(flagBank)
	if err != nil {
		return err
	}
	path := defaultPath(flagCorpus, p.ID+"_corpus.json")
	store, err := corpus.Load(path, "public/"+p.ID+"_corpus.json")
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		return fmt.Errorf("corpus %s is empty", path)
	}
	out := defaultPath(flagReportOut, p.ID+"_digest.docx")
	if err := report.Generate(p, store, out); err != nil {
		return err
	}
	fmt.Println("Digest written to", out)
	return nil
}

func defaultPath(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
