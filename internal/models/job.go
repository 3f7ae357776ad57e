package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

type JobPosting struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title      string    `gorm:"type:text;not null" json:"title"`
	Department string    `gorm:"type:text" json:"department"`
	Headcount  int       `gorm:"default:1" json:"headcount"`
	Status     string    `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// CandidateJob links a candidate to a posting they are in process for.
type CandidateJob struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index:idx_candidate_jobs_candidate" json:"candidate_id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index:idx_candidate_jobs_job" json:"job_id"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (CandidateJob) TableName() string {
	return "candidate_jobs"
}
