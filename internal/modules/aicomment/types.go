package aicomment

import "errors"

var (
	errHypothesisNotFound = errors.New("hypothesis not found")
	errCommentNotFound    = errors.New("comment not found")
)

type AutoTriggerDTO struct {
	Force bool `json:"force"`
}

type BatchProcessDTO struct {
	HypothesisIDs []uint `json:"hypothesis_ids"`
}

// batchResult reports the outcome for one hypothesis of a batch run.
type batchResult struct {
	HypothesisID uint   `json:"hypothesis_id"`
	Status       string `json:"status"`
	DiscussionID uint   `json:"discussion_id,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Error        string `json:"error,omitempty"`
}

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"
	batchStatusSkipped = "skipped"
	batchStatusError   = "error"
)
