package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AnalysisStatusPending  = "pending"
	AnalysisStatusComplete = "complete"
	AnalysisStatusFailed   = "failed"
)

const (
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
)

// SkinTrait is a single detected trait from the vision analysis.
// ID is a stable lowercase-hyphen identifier (e.g. "enlarged-pores").
type SkinTrait struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// SeverityRank orders traits for prioritization: high=3, moderate=2, low=1.
// Unknown severities rank lowest.
func (t SkinTrait) SeverityRank() int {
	switch t.Severity {
	case SeverityHigh:
		return 3
	case SeverityModerate:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// CREATE TABLE public.skin_analyses (
//     id         TEXT PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     status     TEXT NOT NULL,
//     traits     JSONB,
//     summary    TEXT,
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );

type SkinAnalysis struct {
	ID        string                         `gorm:"primaryKey;column:id" json:"id"`
	UserID    uint                           `gorm:"column:user_id;index;not null" json:"user_id"`
	Status    string                         `gorm:"column:status;type:text;not null" json:"status"`
	Traits    datatypes.JSONSlice[SkinTrait] `gorm:"column:traits" json:"traits"`
	Summary   string                         `gorm:"column:summary;type:text" json:"summary"`
	CreatedAt time.Time                      `gorm:"column:created_at" json:"created_at"`
}

func (SkinAnalysis) TableName() string {
	return "skin_analyses"
}

// VisionAnalysis is the validated output of the vision call, before it
// is persisted as a SkinAnalysis row.
type VisionAnalysis struct {
	Traits  []SkinTrait `json:"traits"`
	Summary string      `json:"summary"`
}
