package domain

import "time"

type SubmissionStatus string

const (
	SubmissionStatusSubmitted   SubmissionStatus = "submitted"
	SubmissionStatusUnderReview SubmissionStatus = "under_review"
	SubmissionStatusApproved    SubmissionStatus = "approved"
	SubmissionStatusAwarded     SubmissionStatus = "awarded"
)

type Submission struct {
	ID          uint             `json:"id"`
	EventID     uint             `json:"event_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	LeaderID    uint             `json:"leader_id"`
	MemberIDs   []uint           `json:"member_ids"`
	Status      SubmissionStatus `json:"status"`

	// BaseVotes are seeded/imported counts, ManualVotes is the admin
	// override. TotalVotes = BaseVotes + ManualVotes + ledger count.
	BaseVotes   int `json:"base_votes"`
	ManualVotes int `json:"manual_votes"`
	TotalVotes  int `json:"total_votes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTeamMember reports whether the user leads the submission's team or
// belongs to it.
func (s *Submission) HasTeamMember(userID uint) bool {
	if s.LeaderID == userID {
		return true
	}
	for _, id := range s.MemberIDs {
		if id == userID {
			return true
		}
	}

	return false
}
