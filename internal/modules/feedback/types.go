package feedback

import (
	"errors"
	"time"
)

var errHypothesisNotFound = errors.New("hypothesis not found")

// Feedback is one reviewer's rating of a hypothesis. Ratings run 1-5;
// zero means the category was not rated.
type Feedback struct {
	Validity         int    `json:"validity"`
	Feasibility      int    `json:"feasibility"`
	Novelty          int    `json:"novelty"`
	PolicyImportance int    `json:"policy_importance"`
	Overall          int    `json:"overall"`
	Comment          string `json:"comment,omitempty"`
	Suggestions      string `json:"suggestions,omitempty"`
	RelatedResearch  string `json:"related_research,omitempty"`
	ReviewerInfo     string `json:"reviewer_info,omitempty"`
}

type SubmitDTO struct {
	HypothesisID uint `json:"hypothesis_id"`
	Feedback
}

// Entry is a parsed feedback annotated with its source issue.
type Entry struct {
	Feedback
	Timestamp   time.Time `json:"timestamp"`
	IssueNumber int       `json:"issue_number"`
	IssueURL    string    `json:"issue_url"`
}

type hypothesisSummary struct {
	FeedbackCount   int                `json:"feedback_count"`
	AverageRatings  map[string]float64 `json:"average_ratings"`
	LatestComment   string             `json:"latest_comment"`
	LatestTimestamp time.Time          `json:"latest_timestamp"`
	AllFeedbacks    []Entry            `json:"all_feedbacks"`
}

// Summary is the aggregate document written for the static frontend.
type Summary struct {
	GeneratedAt                 time.Time                  `json:"generated_at"`
	TotalHypothesesWithFeedback int                        `json:"total_hypotheses_with_feedback"`
	TotalFeedbackCount          int                        `json:"total_feedback_count"`
	FeedbackSummary             map[uint]hypothesisSummary `json:"feedback_summary"`
}
