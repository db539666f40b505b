package models

import "time"

// HypothesisModel is a generated research hypothesis.
type HypothesisModel struct {
	ID               uint        `json:"id"               gorm:"primaryKey"`
	Title            string      `json:"title"            gorm:"size:200;not null"`
	Description      string      `json:"description"      gorm:"type:text;not null"`
	Category         string      `json:"category"         gorm:"size:100;not null;index"`
	Confidence       int         `json:"confidence"       gorm:"default:0"`
	ResearchMethods  StringArray `json:"researchMethods"  gorm:"type:text"`
	KeyFactors       StringArray `json:"keyFactors"       gorm:"type:text"`
	NoveltyScore     int         `json:"noveltyScore"     gorm:"default:0"`
	FeasibilityScore int         `json:"feasibilityScore" gorm:"default:0"`
	GeneratedAt      time.Time   `json:"generatedAt"`
	CreatedAt        time.Time   `json:"createdAt"`
}

func (HypothesisModel) TableName() string { return "hypotheses" }
