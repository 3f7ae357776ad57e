package models

import (
	"time"

	"github.com/google/uuid"
)

// Dictionary categories. Each category is an operator-managed list of
// canonical values; code refers to entries by symbolic name and resolves
// them through the dictionary resolver.
const (
	CategoryCandidateStatus     = "candidate_status"
	CategoryInterviewStatus     = "interview_status"
	CategoryInterviewConclusion = "interview_conclusion"
	CategoryInterviewMethod     = "interview_method"
	CategoryAssessmentStatus    = "assessment_status"
	CategoryBackgroundStatus    = "background_status"
	CategoryOfferStatus         = "offer_status"
)

type DictionaryEntry struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Category     string    `gorm:"type:text;not null;index:idx_dictionary_category" json:"category"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (DictionaryEntry) TableName() string {
	return "dictionary_entries"
}
