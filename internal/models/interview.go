package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Symbolic interview statuses (interview_status dictionary category).
const (
	InterviewStatusScheduled  = "scheduled"
	InterviewStatusInProgress = "in-progress"
	InterviewStatusCompleted  = "completed"
	InterviewStatusCancelled  = "cancelled"
)

// Interview conclusions (interview_conclusion dictionary category).
// Undecided is a sentinel: a record carrying it is still a schedule.
const (
	ConclusionPass      = "pass"
	ConclusionReject    = "reject"
	ConclusionUndecided = "undecided"
)

// Legacy recommendation values. Older rows carry a recommendation instead of
// a conclusion; they are mapped at read time and never rewritten.
const (
	RecommendationAdvance   = "advance"
	RecommendationReject    = "reject"
	RecommendationUndecided = "undecided"
)

// InterviewTimeTBD is the sentinel stored when a round is scheduled without
// a confirmed moment. Open-schedule listings sort it after every real time.
const InterviewTimeTBD = "undetermined"

// InterviewRecord is a single interview interaction for a candidate. A record
// is either a schedule (no decided conclusion) or an outcome (decided
// conclusion, possibly derived from the legacy recommendation field); it is
// never both.
type InterviewRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID   uuid.UUID `gorm:"type:uuid;not null;index:idx_interviews_candidate" json:"candidate_id"`
	Round         int       `gorm:"not null" json:"round"`
	InterviewTime string    `gorm:"type:text" json:"interview_time"`
	Interviewer   string    `gorm:"type:text" json:"interviewer"`
	Method        string    `gorm:"type:text" json:"method"`
	Location      string    `gorm:"type:text" json:"location"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
	Ratings       int       `gorm:"default:0" json:"ratings"`
	Tags          string    `gorm:"type:text" json:"tags"`
	Status        string    `gorm:"type:text;not null" json:"status"`

	// Conclusion is empty until the round is decided.
	Conclusion string `gorm:"type:text" json:"conclusion,omitempty"`
	// Recommendation is retained for rows written before conclusions existed.
	Recommendation string `gorm:"type:text" json:"recommendation,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (InterviewRecord) TableName() string {
	return "interview_records"
}

// NormalizedConclusion derives the unified conclusion for a record.
// The stored conclusion wins when decided; otherwise a decisive legacy
// recommendation maps advance→pass and reject→reject. Undecided values on
// either field never count as a conclusion.
func (r *InterviewRecord) NormalizedConclusion() (string, bool) {
	if r.Conclusion != "" && r.Conclusion != ConclusionUndecided {
		return r.Conclusion, true
	}
	switch r.Recommendation {
	case RecommendationAdvance:
		return ConclusionPass, true
	case RecommendationReject:
		return ConclusionReject, true
	}
	return "", false
}

// IsOpenSchedule reports whether the record is a planned-but-undecided round.
func (r *InterviewRecord) IsOpenSchedule() bool {
	_, decided := r.NormalizedConclusion()
	return !decided
}

// IdentityKey is the deduplication key for outcome listings: the row id when
// present, otherwise the (round, time) composite. Historical data contains
// rows written through more than one code path for the same logical event.
func (r *InterviewRecord) IdentityKey() string {
	if r.ID != uuid.Nil {
		return r.ID.String()
	}
	return fmt.Sprintf("%d|%s", r.Round, r.InterviewTime)
}
