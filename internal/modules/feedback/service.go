package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econlab/hypothesis-core/internal/models"
	"github.com/econlab/hypothesis-core/internal/pkg/github"
)

type Service struct {
	db     *gorm.DB
	gh     *github.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, gh *github.Client, logger *zap.Logger) *Service {
	return &Service{db: db, gh: gh, logger: logger}
}

// Configured reports whether the GitHub backend is usable.
func (s *Service) Configured() bool {
	return s.gh != nil && s.gh.Configured()
}

// Submit posts a feedback as a GitHub issue tagged with the hypothesis id.
func (s *Service) Submit(ctx context.Context, dto SubmitDTO) (*github.Issue, error) {
	if !s.Configured() {
		return nil, github.ErrNotConfigured
	}

	var h models.HypothesisModel
	if err := s.db.First(&h, dto.HypothesisID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errHypothesisNotFound
		}
		return nil, err
	}

	issue, err := s.gh.CreateIssue(ctx,
		IssueTitle(h.Title),
		IssueBody(dto.HypothesisID, h.Title, dto.Feedback, time.Now()),
		IssueLabels(dto.HypothesisID))
	if err != nil {
		return nil, err
	}

	s.logger.Info("posted feedback issue",
		zap.Uint("hypothesis_id", dto.HypothesisID),
		zap.Int("issue_number", issue.Number))
	return issue, nil
}

// FetchForHypothesis returns the parsed feedback entries of one hypothesis.
func (s *Service) FetchForHypothesis(ctx context.Context, hypothesisID uint) ([]Entry, error) {
	if !s.Configured() {
		return nil, github.ErrNotConfigured
	}

	issues, err := s.gh.ListIssues(ctx, []string{"feedback", labelFor(hypothesisID)})
	if err != nil {
		return nil, err
	}

	entries := ParseIssues(issues)[hypothesisID]
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Sync fetches every feedback issue, aggregates it and writes the summary
// document under dir.
func (s *Service) Sync(ctx context.Context, dir string) (Summary, error) {
	if !s.Configured() {
		return Summary{}, github.ErrNotConfigured
	}

	issues, err := s.gh.ListIssues(ctx, []string{"feedback"})
	if err != nil {
		return Summary{}, err
	}

	summary := Summarize(ParseIssues(issues))
	if err := WriteSummary(filepath.Join(dir, "feedback_summary.json"), summary); err != nil {
		return Summary{}, err
	}

	s.logger.Info("feedback summary written",
		zap.Int("hypotheses", summary.TotalHypothesesWithFeedback),
		zap.Int("entries", summary.TotalFeedbackCount))
	return summary, nil
}

// WriteSummary writes the summary document as indented JSON, creating parent
// directories as needed.
func WriteSummary(path string, summary Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func labelFor(hypothesisID uint) string {
	return IssueLabels(hypothesisID)[2]
}
