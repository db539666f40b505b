package models

import "time"

// CommentType distinguishes human comments from generated ones.
type CommentType string

const (
	CommentTypeUser CommentType = "user"
	CommentTypeAI   CommentType = "ai"
)

// DiscussionModel is a threaded comment attached to a hypothesis.
// ParentID is a self reference; top-level comments have ParentID = nil.
type DiscussionModel struct {
	ID                uint        `json:"id"                 gorm:"primaryKey"`
	HypothesisID      uint        `json:"hypothesis_id"      gorm:"not null;index"`
	AuthorName        string      `json:"author_name"        gorm:"size:100;not null"`
	AuthorEmail       string      `json:"author_email"       gorm:"size:200"`
	AuthorAffiliation string      `json:"author_affiliation" gorm:"size:200"`
	Content           string      `json:"content"            gorm:"type:text;not null"`
	CommentType       CommentType `json:"comment_type"       gorm:"size:20;default:user"`
	AIModel           string      `json:"ai_model"           gorm:"size:50"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
	Likes             int         `json:"likes"              gorm:"default:0"`
	Dislikes          int         `json:"dislikes"           gorm:"default:0"`
	ParentID          *uint       `json:"parent_id"          gorm:"index"`
}

func (DiscussionModel) TableName() string { return "discussions" }
