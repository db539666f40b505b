package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/econlab/hypothesis-core/internal/config"
	"github.com/econlab/hypothesis-core/internal/modules/hypothesis"
	"github.com/econlab/hypothesis-core/internal/pkg/gemini"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	output := flag.String("output", "", "Output file (default: <data dir>/hypotheses.json)")
	count := flag.Int("count", 3, "Number of hypotheses to generate")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	client := gemini.New(cfg.Gemini)
	if !client.Configured() {
		logger.Fatal("GEMINI_API_KEY is not set")
	}

	path := *output
	if path == "" {
		path = filepath.Join(cfg.DataDir, "hypotheses.json")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	doc := hypothesis.BuildDocument(ctx, client, *count, logger)
	if err := hypothesis.WriteDocument(path, doc); err != nil {
		logger.Fatal("failed to write output", zap.Error(err))
	}

	logger.Info("hypotheses written",
		zap.String("path", path),
		zap.Int("count", doc.TotalHypotheses))
	for i, h := range doc.Hypotheses {
		fmt.Printf("%d. %s (信頼度: %d%%)\n", i+1, h.Title, h.Confidence)
	}
}
