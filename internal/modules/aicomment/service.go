package aicomment

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econlab/hypothesis-core/internal/models"
)

const (
	aiAuthorName        = "Gemini AI Assistant"
	aiAuthorAffiliation = "AI Research Assistant"

	// Below this share of AI comments in a thread another one may be posted.
	autoCommentRatio = 0.3
)

// TextGenerator produces model output for a prompt. *gemini.Client satisfies it.
type TextGenerator interface {
	Configured() bool
	Model() string
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

// CommentOnHypothesis generates and stores an AI comment for a hypothesis.
// Generation failures are logged and reported as a nil discussion, not an
// error; the caller decides how to respond.
func (s *Service) CommentOnHypothesis(ctx context.Context, hypothesisID uint) (*models.DiscussionModel, error) {
	var h models.HypothesisModel
	if err := s.db.First(&h, hypothesisID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errHypothesisNotFound
		}
		return nil, err
	}

	var recent []models.DiscussionModel
	err := s.db.
		Where("hypothesis_id = ?", hypothesisID).
		Order("created_at DESC").
		Limit(5).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}

	text := s.generate(ctx, buildCommentPrompt(h, recent))
	if text == "" {
		return nil, nil
	}

	entry := models.DiscussionModel{
		HypothesisID:      hypothesisID,
		AuthorName:        aiAuthorName,
		AuthorAffiliation: aiAuthorAffiliation,
		Content:           text,
		CommentType:       models.CommentTypeAI,
		AIModel:           s.gen.Model(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	s.logger.Info("posted ai comment",
		zap.Uint("hypothesis_id", hypothesisID),
		zap.Uint("discussion_id", entry.ID))
	return &entry, nil
}

// ReplyToComment generates and stores an AI reply under an existing comment.
func (s *Service) ReplyToComment(ctx context.Context, commentID uint) (*models.DiscussionModel, error) {
	var original models.DiscussionModel
	if err := s.db.First(&original, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errCommentNotFound
		}
		return nil, err
	}

	var h models.HypothesisModel
	if err := s.db.First(&h, original.HypothesisID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errHypothesisNotFound
		}
		return nil, err
	}

	text := s.generate(ctx, buildReplyPrompt(original, h))
	if text == "" {
		return nil, nil
	}

	parentID := original.ID
	entry := models.DiscussionModel{
		HypothesisID:      original.HypothesisID,
		AuthorName:        aiAuthorName,
		AuthorAffiliation: aiAuthorAffiliation,
		Content:           text,
		CommentType:       models.CommentTypeAI,
		AIModel:           s.gen.Model(),
		ParentID:          &parentID,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}

	s.logger.Info("posted ai reply",
		zap.Uint("comment_id", commentID),
		zap.Uint("discussion_id", entry.ID))
	return &entry, nil
}

// ShouldAutoComment reports whether a hypothesis thread warrants another AI
// comment: none posted yet, or AI comments make up less than 30% of the
// thread. Errors are logged and answered with false.
func (s *Service) ShouldAutoComment(hypothesisID uint) bool {
	var aiCount int64
	err := s.db.Model(&models.DiscussionModel{}).
		Where("hypothesis_id = ? AND comment_type = ?", hypothesisID, models.CommentTypeAI).
		Count(&aiCount).Error
	if err != nil {
		s.logger.Error("auto-comment check failed", zap.Error(err))
		return false
	}

	var totalCount int64
	err = s.db.Model(&models.DiscussionModel{}).
		Where("hypothesis_id = ?", hypothesisID).
		Count(&totalCount).Error
	if err != nil {
		s.logger.Error("auto-comment check failed", zap.Error(err))
		return false
	}

	if aiCount == 0 {
		return true
	}
	return totalCount > 0 && float64(aiCount)/float64(totalCount) < autoCommentRatio
}

// BatchProcess runs the auto-comment flow over the given hypotheses, or over
// all of them when ids is empty.
func (s *Service) BatchProcess(ctx context.Context, ids []uint) []batchResult {
	if len(ids) == 0 {
		var all []uint
		if err := s.db.Model(&models.HypothesisModel{}).Order("id").Pluck("id", &all).Error; err != nil {
			s.logger.Error("batch listing failed", zap.Error(err))
			return []batchResult{}
		}
		ids = all
	}

	results := make([]batchResult, 0, len(ids))
	for _, id := range ids {
		if !s.ShouldAutoComment(id) {
			results = append(results, batchResult{
				HypothesisID: id,
				Status:       batchStatusSkipped,
				Reason:       "AI comment not needed",
			})
			continue
		}

		entry, err := s.CommentOnHypothesis(ctx, id)
		switch {
		case err != nil:
			results = append(results, batchResult{
				HypothesisID: id,
				Status:       batchStatusError,
				Error:        err.Error(),
			})
		case entry == nil:
			results = append(results, batchResult{
				HypothesisID: id,
				Status:       batchStatusFailed,
				Error:        "Failed to generate AI comment",
			})
		default:
			results = append(results, batchResult{
				HypothesisID: id,
				Status:       batchStatusSuccess,
				DiscussionID: entry.ID,
			})
		}
	}
	return results
}

func (s *Service) generate(ctx context.Context, prompt string) string {
	if s.gen == nil || !s.gen.Configured() {
		s.logger.Warn("ai comment generation skipped, no api key configured")
		return ""
	}

	text, err := s.gen.Generate(ctx, prompt, 1024)
	if err != nil {
		s.logger.Error("ai comment generation failed", zap.Error(err))
		return ""
	}
	return text
}
