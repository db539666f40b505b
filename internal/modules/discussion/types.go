package discussion

import (
	"errors"
	"time"
)

var errDiscussionNotFound = errors.New("discussion not found")

// validationError carries the name of the first missing required field.
type validationError struct {
	field string
}

func (e validationError) Error() string {
	return "Missing required field: " + e.field
}

type CreateDTO struct {
	HypothesisID      uint   `json:"hypothesis_id"`
	AuthorName        string `json:"author_name"`
	AuthorEmail       string `json:"author_email"`
	AuthorAffiliation string `json:"author_affiliation"`
	Content           string `json:"content"`
	CommentType       string `json:"comment_type"`
	AIModel           string `json:"ai_model"`
	ParentID          *uint  `json:"parent_id"`
}

func (dto CreateDTO) validate() error {
	if dto.HypothesisID == 0 {
		return validationError{field: "hypothesis_id"}
	}
	if dto.AuthorName == "" {
		return validationError{field: "author_name"}
	}
	if dto.Content == "" {
		return validationError{field: "content"}
	}
	return nil
}

// UpdateDTO only allows editing the comment body and the author affiliation.
type UpdateDTO struct {
	Content           *string `json:"content"`
	AuthorAffiliation *string `json:"author_affiliation"`
}

// discussionResponse is the wire shape of a discussion entry.
type discussionResponse struct {
	ID                uint       `json:"id"`
	HypothesisID      uint       `json:"hypothesis_id"`
	AuthorName        string     `json:"author_name"`
	AuthorEmail       string     `json:"author_email"`
	AuthorAffiliation string     `json:"author_affiliation"`
	Content           string     `json:"content"`
	CommentType       string     `json:"comment_type"`
	AIModel           string     `json:"ai_model"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Likes             int        `json:"likes"`
	Dislikes          int        `json:"dislikes"`
	ParentID          *uint      `json:"parent_id"`
	ReplyCount        int64      `json:"reply_count"`
}

type statsData struct {
	TotalDiscussions int64               `json:"total_discussions"`
	UserDiscussions  int64               `json:"user_discussions"`
	AIDiscussions    int64               `json:"ai_discussions"`
	LatestDiscussion *discussionResponse `json:"latest_discussion"`
}
