package hypothesis

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econlab/hypothesis-core/internal/models"
)

const defaultGenerateCount = 3

// TextGenerator produces model output for a prompt. *gemini.Client satisfies it.
type TextGenerator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string, maxOutputTokens int) (string, error)
}

type Service struct {
	db     *gorm.DB
	gen    TextGenerator
	logger *zap.Logger
}

func NewService(db *gorm.DB, gen TextGenerator, logger *zap.Logger) *Service {
	return &Service{db: db, gen: gen, logger: logger}
}

// List returns hypotheses newest first, narrowed by the given filters.
func (s *Service) List(f ListFilters) ([]models.HypothesisModel, error) {
	q := s.db.Model(&models.HypothesisModel{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinConfidence != nil {
		q = q.Where("confidence >= ?", *f.MinConfidence)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	items := make([]models.HypothesisModel, 0)
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) GetByID(id uint) (*models.HypothesisModel, error) {
	var h models.HypothesisModel
	if err := s.db.First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errHypothesisNotFound
		}
		return nil, err
	}
	return &h, nil
}

// Generate creates new hypotheses and persists them one row at a time, so a
// late failure keeps the rows already written. When no generation backend is
// configured the built-in sample set is used instead.
func (s *Service) Generate(ctx context.Context, count int) ([]models.HypothesisModel, error) {
	var candidates []models.HypothesisModel
	if s.gen != nil && s.gen.Configured() {
		generated, err := generateCandidates(ctx, s.gen, count, s.logger)
		if err != nil {
			return nil, err
		}
		candidates = generated
	} else {
		candidates = sampleHypotheses()
		if count > 0 && count < len(candidates) {
			candidates = candidates[:count]
		}
	}

	now := time.Now()
	saved := make([]models.HypothesisModel, 0, len(candidates))
	for i := range candidates {
		candidates[i].GeneratedAt = now
		if err := s.db.Create(&candidates[i]).Error; err != nil {
			return saved, err
		}
		saved = append(saved, candidates[i])
	}
	return saved, nil
}

// Stats aggregates counts and the average confidence, rounded to one decimal.
func (s *Service) Stats() (*statsData, error) {
	var total int64
	if err := s.db.Model(&models.HypothesisModel{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	row := s.db.Model(&models.HypothesisModel{}).Select("AVG(confidence)").Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}

	categories := make([]categoryCount, 0)
	err := s.db.Model(&models.HypothesisModel{}).
		Select("category AS name, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&categories).Error
	if err != nil {
		return nil, err
	}

	average := 0.0
	if avg.Valid {
		average = math.Round(avg.Float64*10) / 10
	}

	return &statsData{
		TotalHypotheses:   total,
		AverageConfidence: average,
		CategoriesCount:   len(categories),
		Categories:        categories,
	}, nil
}

func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&models.HypothesisModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errHypothesisNotFound
	}
	return nil
}

// WriteCSV streams every hypothesis as CSV. String lists are serialized as
// JSON arrays so the columns round-trip.
func (s *Service) WriteCSV(w io.Writer) error {
	var items []models.HypothesisModel
	if err := s.db.Order("id").Find(&items).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"ID", "Title", "Description", "Category", "Confidence",
		"ResearchMethods", "KeyFactors", "NoveltyScore", "FeasibilityScore",
		"GeneratedAt", "CreatedAt",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, h := range items {
		methods, _ := json.Marshal([]string(h.ResearchMethods))
		factors, _ := json.Marshal([]string(h.KeyFactors))
		record := []string{
			strconv.FormatUint(uint64(h.ID), 10),
			h.Title,
			h.Description,
			h.Category,
			strconv.Itoa(h.Confidence),
			string(methods),
			string(factors),
			strconv.Itoa(h.NoveltyScore),
			strconv.Itoa(h.FeasibilityScore),
			h.GeneratedAt.Format(time.RFC3339),
			h.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
