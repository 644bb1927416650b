package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"detectlab/adapters/excel"
	"detectlab/adapters/ingest"
	"detectlab/adapters/jsonfile"
	"detectlab/adapters/llm"
	"detectlab/adapters/postgres"
	"detectlab/app"
	"detectlab/domain/core"
	"detectlab/domain/experiment"
	"detectlab/domain/signal"
	"detectlab/domain/transcript"
	"detectlab/internal"
	"detectlab/internal/config"
	"detectlab/ports"
	"detectlab/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "detectlab",
		Short: "Detection lab CLI for transcript analysis and experiment protocols",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newExperimentCmd(),
		newSuiteCmd(),
		newCatalogCmd(),
		newSummaryCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var contextNotes string
	var workers int

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Score transcript files for consciousness signals",
		Long: `Decode one or more exported transcripts, score every AI turn against the
signal rule table, and persist detected signals.

Example: detectlab analyze exports/claude_session.json notes.txt --context "late night session"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args, contextNotes, workers)
		},
	}

	cmd.Flags().StringVar(&contextNotes, "context", "", "Context notes attached to every signal")
	cmd.Flags().IntVar(&workers, "workers", 4, "Transcripts scored concurrently")

	return cmd
}

func newExperimentCmd() *cobra.Command {
	var contextPairs []string

	cmd := &cobra.Command{
		Use:   "experiment [protocol]",
		Short: "Run one experiment protocol against the configured provider",
		Long: `Run a single protocol: template the prompt, query the provider once per
configured repeat, analyze each response, and persist the results.

Example: detectlab experiment temporal_continuity --var topic="our last conversation"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := parseVars(contextPairs)
			if err != nil {
				return err
			}
			return runExperiment(cmd.Context(), core.ProtocolKey(args[0]), vars)
		},
	}

	cmd.Flags().StringArrayVar(&contextPairs, "var", nil, "Template variable as key=value (repeatable)")

	return cmd
}

func newSuiteCmd() *cobra.Command {
	var contextPairs []string

	cmd := &cobra.Command{
		Use:   "suite [suite]",
		Short: "Run a named suite of protocols in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := parseVars(contextPairs)
			if err != nil {
				return err
			}
			return runSuite(cmd.Context(), core.SuiteKey(args[0]), vars)
		},
	}

	cmd.Flags().StringArrayVar(&contextPairs, "var", nil, "Template variable as key=value (repeatable)")

	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List available protocols and suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := experiment.DefaultCatalog()
			fmt.Println("Protocols:")
			for _, key := range catalog.Keys() {
				p, _ := catalog.Protocol(key)
				fmt.Printf("  %-24s %s (runs: %d)\n", p.Key, p.Name, p.RepeatCount)
			}
			fmt.Println("Suites:")
			for _, key := range catalog.SuiteKeys() {
				protocols, _ := catalog.Suite(key)
				names := make([]string, len(protocols))
				for i, pk := range protocols {
					names[i] = string(pk)
				}
				fmt.Printf("  %-24s %s\n", key, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	var minConfidence float64
	var category string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print aggregate statistics over stored signals and results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), category, minConfidence)
		},
	}

	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Only count signals at or above this confidence")
	cmd.Flags().StringVar(&category, "category", "", "Only count signals in this category")

	return cmd
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored summaries to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "detectlab_summary.xlsx", "Output workbook path")

	return cmd
}

func runAnalyze(ctx context.Context, paths []string, contextNotes string, workers int) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	signals, _, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if contextNotes == "" {
		contextNotes = cfg.Lab.ContextNotes
	}

	svc := app.NewAnalysisService(newDecoder(cfg), signal.NewScorer(signal.MustCompile(signal.DefaultRuleTable())),
		signals, logger, workers)

	sources := make([]app.Source, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sources = append(sources, app.Source{Name: path, Content: string(content)})
	}

	report, err := svc.AnalyzeBatch(ctx, sources, contextNotes)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runExperiment(ctx context.Context, key core.ProtocolKey, vars map[string]string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	_, results, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		return err
	}

	svc := app.NewExperimentService(experiment.DefaultCatalog(), experiment.DefaultAnalyzerSet(),
		provider, results, nil, cfg.Provider.Timeout, logger)

	runs, err := svc.RunProtocol(ctx, key, vars)
	if err != nil {
		return err
	}
	return printJSON(runs)
}

func runSuite(ctx context.Context, key core.SuiteKey, vars map[string]string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	_, results, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		return err
	}

	svc := app.NewExperimentService(experiment.DefaultCatalog(), experiment.DefaultAnalyzerSet(),
		provider, results, nil, cfg.Provider.Timeout, logger)

	summary, runs, err := svc.RunSuite(ctx, key, vars)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{
		"summary": summary,
		"results": runs,
	})
}

func runSummary(ctx context.Context, category string, minConfidence float64) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	signals, results, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	analysis := app.NewAnalysisService(newDecoder(cfg), signal.NewScorer(signal.MustCompile(signal.DefaultRuleTable())),
		signals, logger, 1)
	experiments := app.NewExperimentService(experiment.DefaultCatalog(), experiment.DefaultAnalyzerSet(),
		nil, results, nil, cfg.Provider.Timeout, logger)

	sigSummary, err := analysis.SignalSummary(ctx, ports.SignalFilter{
		Category:      signal.CategoryKey(category),
		MinConfidence: minConfidence,
	})
	if err != nil {
		return err
	}
	resSummary, err := experiments.ResultSummary(ctx, ports.ResultFilter{})
	if err != nil {
		return err
	}

	fmt.Print(string(ui.RenderReportMarkdown(sigSummary, resSummary)))
	return nil
}

func runExport(ctx context.Context, out string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	signals, results, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	analysis := app.NewAnalysisService(newDecoder(cfg), signal.NewScorer(signal.MustCompile(signal.DefaultRuleTable())),
		signals, logger, 1)
	experiments := app.NewExperimentService(experiment.DefaultCatalog(), experiment.DefaultAnalyzerSet(),
		nil, results, nil, cfg.Provider.Timeout, logger)

	sigSummary, err := analysis.SignalSummary(ctx, ports.SignalFilter{})
	if err != nil {
		return err
	}
	resSummary, err := experiments.ResultSummary(ctx, ports.ResultFilter{})
	if err != nil {
		return err
	}

	writer := excel.NewSummaryWriter()
	signalsPath := derivePath(out, "_signals")
	if err := writer.WriteSignalSummary(sigSummary, signalsPath); err != nil {
		return err
	}
	if err := writer.WriteSuiteSummary(resSummary, out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s and %s\n", out, signalsPath)
	return nil
}

// derivePath inserts a suffix before the file extension
func derivePath(path, suffix string) string {
	if idx := strings.LastIndex(path, "."); idx > 0 {
		return path[:idx] + suffix + path[idx:]
	}
	return path + suffix
}

func loadConfig() (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, internal.NewDefaultLogger(), nil
}

func newDecoder(cfg *config.Config) *ingest.Decoder {
	mode := transcript.JoinSpace
	if cfg.Lab.SegmentMode == "newline" {
		mode = transcript.JoinNewline
	}
	return ingest.NewDecoder(transcript.NewSegmenter(mode))
}

// buildStores selects postgres when DATABASE_URL is set, the file-backed
// store otherwise. cleanup closes whatever was opened.
func buildStores(cfg *config.Config, logger *internal.Logger) (ports.SignalRepository, ports.ResultRepository, func(), error) {
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return postgres.NewSignalRepository(db), postgres.NewResultRepository(db), func() { db.Close() }, nil
	}

	store, err := jsonfile.NewStore(cfg.Lab.DataDir, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return store, store, func() {}, nil
}

func buildProvider(cfg *config.Config, logger *internal.Logger) (ports.ResponseProvider, error) {
	if cfg.Provider.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, using mock provider")
		return &llm.MockProvider{}, nil
	}
	return llm.NewOpenAIProvider(llm.Config{
		APIKey:      cfg.Provider.OpenAIKey,
		Model:       cfg.Provider.OpenAIModel,
		BaseURL:     cfg.Provider.BaseURL,
		Timeout:     cfg.Provider.Timeout,
		Temperature: cfg.Provider.Temperature,
		MaxTokens:   cfg.Provider.MaxTokens,
	})
}

func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q (want key=value)", pair)
		}
		vars[key] = value
	}
	return vars, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
