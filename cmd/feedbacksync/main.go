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
	"github.com/econlab/hypothesis-core/internal/modules/feedback"
	"github.com/econlab/hypothesis-core/internal/pkg/github"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
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

	client := github.New(cfg.GitHub)
	if !client.Configured() {
		logger.Fatal("GITHUB_TOKEN is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	issues, err := client.ListIssues(ctx, []string{"feedback"})
	if err != nil {
		logger.Fatal("failed to fetch feedback issues", zap.Error(err))
	}

	summary := feedback.Summarize(feedback.ParseIssues(issues))
	path := filepath.Join(cfg.DataDir, "feedback_summary.json")
	if err := feedback.WriteSummary(path, summary); err != nil {
		logger.Fatal("failed to write summary", zap.Error(err))
	}

	logger.Info("feedback summary written",
		zap.String("path", path),
		zap.Int("hypotheses", summary.TotalHypothesesWithFeedback),
		zap.Int("entries", summary.TotalFeedbackCount))
	fmt.Printf("フィードバック処理完了: %d 件の仮説に対するフィードバックを処理\n", summary.TotalHypothesesWithFeedback)
}
