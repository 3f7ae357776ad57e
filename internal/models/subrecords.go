package models

import (
	"time"

	"github.com/google/uuid"
)

// Symbolic default statuses for the sub-record categories.
const (
	AssessmentStatusPending = "pending"
	AssessmentStatusPassed  = "passed"
	AssessmentStatusFailed  = "failed"

	BackgroundStatusPending = "pending"
	BackgroundStatusCleared = "cleared"
	BackgroundStatusFlagged = "flagged"

	OfferStatusExtended = "extended"
	OfferStatusAccepted = "accepted"
	OfferStatusDeclined = "declined"
)

// AssessmentRecord is a written-test result attached to a candidate.
type AssessmentRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index:idx_assessments_candidate" json:"candidate_id"`
	Subject     string    `gorm:"type:text" json:"subject"`
	Score       int       `gorm:"default:0" json:"score"`
	Status      string    `gorm:"type:text;not null" json:"status"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (AssessmentRecord) TableName() string {
	return "assessment_records"
}

// BackgroundRecord is a background-check result attached to a candidate.
type BackgroundRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index:idx_backgrounds_candidate" json:"candidate_id"`
	CheckType   string    `gorm:"type:text" json:"check_type"`
	Result      string    `gorm:"type:text" json:"result"`
	Status      string    `gorm:"type:text;not null" json:"status"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (BackgroundRecord) TableName() string {
	return "background_records"
}

// OfferRecord is an extended offer attached to a candidate. Its existence,
// regardless of status, drives the had-offer derived flag.
type OfferRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index:idx_offers_candidate" json:"candidate_id"`
	Position    string    `gorm:"type:text" json:"position"`
	Salary      string    `gorm:"type:text" json:"salary"`
	Status      string    `gorm:"type:text;not null" json:"status"`
	AcceptedAt  *time.Time `gorm:"type:timestamp" json:"accepted_at,omitempty"`
	CreatedAt   time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (OfferRecord) TableName() string {
	return "offer_records"
}
