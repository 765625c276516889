package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.onboarding_data (
//     id                   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id              BIGINT NOT NULL UNIQUE,
//     skin_concerns        JSONB,
//     skin_goals           JSONB,
//     ingredients_to_avoid JSONB,
//     budget_min_usd       NUMERIC,
//     budget_max_usd       NUMERIC,
//     completed            BOOLEAN DEFAULT FALSE,
//     created_at           TIMESTAMPTZ DEFAULT NOW(),
//     updated_at           TIMESTAMPTZ DEFAULT NOW()
// );

// OnboardingProfile is created during onboarding and read-only to the
// recommendation pipeline. Invariant: BudgetMinUSD <= BudgetMaxUSD.
type OnboardingProfile struct {
	ID                 uint                        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint                        `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	SkinConcerns       datatypes.JSONSlice[string] `gorm:"column:skin_concerns" json:"skin_concerns"`
	SkinGoals          datatypes.JSONSlice[string] `gorm:"column:skin_goals" json:"skin_goals"`
	IngredientsToAvoid datatypes.JSONSlice[string] `gorm:"column:ingredients_to_avoid" json:"ingredients_to_avoid"`
	BudgetMinUSD       float64                     `gorm:"column:budget_min_usd;type:numeric" json:"budget_min_usd"`
	BudgetMaxUSD       float64                     `gorm:"column:budget_max_usd;type:numeric" json:"budget_max_usd"`
	Completed          bool                        `gorm:"column:completed;default:false" json:"completed"`
	CreatedAt          time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (OnboardingProfile) TableName() string {
	return "onboarding_data"
}
