package main

import (
	"context"
	"net/http"
	"os"

	"detectlab/adapters/ingest"
	"detectlab/adapters/jsonfile"
	"detectlab/adapters/llm"
	"detectlab/adapters/postgres"
	"detectlab/app"
	"detectlab/domain/experiment"
	"detectlab/domain/signal"
	"detectlab/domain/transcript"
	"detectlab/internal"
	"detectlab/internal/config"
	"detectlab/ports"
	"detectlab/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration: %v", err)
		os.Exit(1)
	}

	signals, results, cleanup, err := buildStores(cfg, logger)
	if err != nil {
		logger.Error("store setup: %v", err)
		os.Exit(1)
	}
	defer cleanup()

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		logger.Error("provider setup: %v", err)
		os.Exit(1)
	}

	mode := transcript.JoinSpace
	if cfg.Lab.SegmentMode == "newline" {
		mode = transcript.JoinNewline
	}
	decoder := ingest.NewDecoder(transcript.NewSegmenter(mode))
	scorer := signal.NewScorer(signal.MustCompile(signal.DefaultRuleTable()))

	analysis := app.NewAnalysisService(decoder, scorer, signals, logger, 4)
	experiments := app.NewExperimentService(experiment.DefaultCatalog(), experiment.DefaultAnalyzerSet(),
		provider, results, nil, cfg.Provider.Timeout, logger)

	server := ui.NewServer(analysis, experiments, logger)

	addr := ":" + cfg.Server.Port
	logger.Info("detection lab API listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}

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
		logger.Info("using postgres store")
		return postgres.NewSignalRepository(db), postgres.NewResultRepository(db), func() { db.Close() }, nil
	}

	store, err := jsonfile.NewStore(cfg.Lab.DataDir, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("using file store at %s", cfg.Lab.DataDir)
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
