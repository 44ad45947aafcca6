package domain

import "time"

type VoteMode string

const (
	// VoteModeFixedQuota gives each voter a fixed budget of votes for
	// the whole event.
	VoteModeFixedQuota VoteMode = "fixed_quota"
	// VoteModePerProjectLike lets a voter vote once per submission with
	// no overall budget.
	VoteModePerProjectLike VoteMode = "per_project_like"
)

type VotingScope string

const (
	VotingScopePublic     VotingScope = "public"
	VotingScopeRegistered VotingScope = "registered"
)

type Event struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	OrganizerID uint   `json:"organizer_id"`

	VotingEnabled  bool        `json:"voting_enabled"`
	VotingStartsAt *time.Time  `json:"voting_starts_at,omitempty"`
	VotingEndsAt   *time.Time  `json:"voting_ends_at,omitempty"`
	VotingScope    VotingScope `json:"voting_scope"`
	VoteMode       VoteMode    `json:"vote_mode"`
	VoteQuota      int         `json:"vote_quota"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VotingOpenAt reports whether the voting window contains the given
// instant. A missing bound leaves that side of the window open.
func (e *Event) VotingOpenAt(now time.Time) bool {
	if e.VotingStartsAt != nil && now.Before(*e.VotingStartsAt) {
		return false
	}
	if e.VotingEndsAt != nil && !now.Before(*e.VotingEndsAt) {
		return false
	}

	return true
}

type Registration struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	UserID    uint      `json:"user_id"`
	Status    string    `json:"status"` // "active" or "canceled"
	CreatedAt time.Time `json:"created_at"`
}
