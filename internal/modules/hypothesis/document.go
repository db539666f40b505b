package hypothesis

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/econlab/hypothesis-core/internal/models"
	"github.com/econlab/hypothesis-core/internal/pkg/gemini"
)

// Document is the offline generation output consumed by the static frontend.
type Document struct {
	GeneratedAt     time.Time                `json:"generated_at"`
	TotalHypotheses int                      `json:"total_hypotheses"`
	Hypotheses      []models.HypothesisModel `json:"hypotheses"`
}

// generateCandidates asks the model for count hypotheses and parses them.
func generateCandidates(ctx context.Context, gen TextGenerator, count int, logger *zap.Logger) ([]models.HypothesisModel, error) {
	if count <= 0 {
		count = defaultGenerateCount
	}

	raw, err := gen.Generate(ctx, buildGenerationPrompt(count), 2048)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Hypotheses []generatedHypothesis `json:"hypotheses"`
	}
	if err := gemini.UnmarshalModelJSON(raw, &parsed); err != nil || len(parsed.Hypotheses) == 0 {
		logger.Warn("discarding malformed generation output", zap.Error(err))
		return nil, errBadGeneration
	}

	items := make([]models.HypothesisModel, 0, len(parsed.Hypotheses))
	for _, g := range parsed.Hypotheses {
		items = append(items, models.HypothesisModel{
			Title:            g.Title,
			Description:      g.Description,
			Category:         g.Category,
			Confidence:       g.Confidence,
			ResearchMethods:  models.StringArray(g.ResearchMethods),
			KeyFactors:       models.StringArray(g.KeyFactors),
			NoveltyScore:     g.NoveltyScore,
			FeasibilityScore: g.FeasibilityScore,
		})
	}
	return items, nil
}

// BuildDocument generates count hypotheses for offline use. Model failures
// are logged and answered with the built-in samples so the output file is
// always produced.
func BuildDocument(ctx context.Context, gen TextGenerator, count int, logger *zap.Logger) Document {
	now := time.Now()

	items, err := generateCandidates(ctx, gen, count, logger)
	if err != nil {
		logger.Warn("generation failed, falling back to samples", zap.Error(err))
		items = sampleHypotheses()
		if count > 0 && count < len(items) {
			items = items[:count]
		}
	}

	for i := range items {
		items[i].GeneratedAt = now
	}
	return Document{
		GeneratedAt:     now,
		TotalHypotheses: len(items),
		Hypotheses:      items,
	}
}

// WriteDocument writes the document as indented JSON, creating parent
// directories as needed.
func WriteDocument(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
