package models

import "github.com/google/uuid"

type CandidateRequest struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	Position      string   `json:"position"`
	Channel       string   `json:"channel"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
	CurrentStatus string   `json:"current_status"`
}

// InterviewRequest covers both flows on the interview endpoints: a body
// without a conclusion is a schedule (create or edit), a body with one
// records an outcome.
type InterviewRequest struct {
	Round       int      `json:"round"`
	Time        string   `json:"time"`
	Interviewer string   `json:"interviewer"`
	Method      string   `json:"method"`
	Location    string   `json:"location"`
	Feedback    string   `json:"feedback"`
	Ratings     int      `json:"ratings"`
	Tags        []string `json:"tags"`
	Conclusion  string   `json:"conclusion"`
}

type SubRecordRequest struct {
	Status    string `json:"status"`
	Subject   string `json:"subject"`
	Score     int    `json:"score"`
	CheckType string `json:"check_type"`
	Result    string `json:"result"`
	Position  string `json:"position"`
	Salary    string `json:"salary"`
}

// DictionaryRequest carries dictionary writes. DisplayOrder is a pointer so
// an omitted field is distinguishable from an explicit order 0; updates only
// touch it when supplied.
type DictionaryRequest struct {
	Category     string `json:"category"`
	Name         string `json:"name"`
	DisplayOrder *int   `json:"display_order"`
}

type JobRequest struct {
	Title      string `json:"title"`
	Department string `json:"department"`
	Headcount  int    `json:"headcount"`
	Status     string `json:"status"`
}

// DerivedFlags are computed from history on every read and never persisted.
type DerivedFlags struct {
	WasEliminated bool `json:"was_eliminated"`
	HadOffer      bool `json:"had_offer"`
}

// CandidateAggregate is the full read view of a candidate: profile plus
// sub-records, linked postings, and the derived flags.
type CandidateAggregate struct {
	Candidate     Candidate          `json:"candidate"`
	OpenSchedules []InterviewRecord  `json:"open_schedules"`
	Outcomes      []InterviewRecord  `json:"outcomes"`
	Assessments   []AssessmentRecord `json:"assessments"`
	Backgrounds   []BackgroundRecord `json:"backgrounds"`
	Offers        []OfferRecord      `json:"offers"`
	Jobs          []JobPosting       `json:"jobs"`
	DerivedFlags
}

// CandidateSummary is the list-view row: profile plus flags.
type CandidateSummary struct {
	Candidate
	DerivedFlags
}

// CandidateFilter narrows candidate list reads.
type CandidateFilter struct {
	Status  string
	Keyword string
	JobID   uuid.UUID
}
