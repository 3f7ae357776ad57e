package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Symbolic candidate statuses, in pipeline order. The canonical spelling for
// each lives in the candidate_status dictionary category; code always goes
// through the resolver before writing one of these to a row.
const (
	CandidateStatusNew               = "new"
	CandidateStatusPendingAssessment = "pending-assessment"
	CandidateStatusAssessment        = "assessment"
	CandidateStatusPendingInterview  = "pending-interview"
	CandidateStatusInterview         = "interview"
	CandidateStatusBackgroundCheck   = "background-check"
	CandidateStatusPendingOffer      = "pending-offer"
	CandidateStatusOffer             = "offer"
	CandidateStatusHired             = "hired"
	CandidateStatusRejected          = "rejected"
)

type Candidate struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"type:text;not null" json:"name"`
	Phone         string    `gorm:"type:text" json:"phone"`
	Email         string    `gorm:"type:text" json:"email"`
	Position      string    `gorm:"type:text" json:"position"`
	Channel       string    `gorm:"type:text" json:"channel"`
	CurrentStatus string    `gorm:"type:text;not null" json:"current_status"`
	Tags          string    `gorm:"type:text" json:"tags"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// TagList splits the stored comma-joined tag set.
func (c *Candidate) TagList() []string {
	if strings.TrimSpace(c.Tags) == "" {
		return nil
	}
	parts := strings.Split(c.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// JoinTags builds the stored representation of a tag set.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}
