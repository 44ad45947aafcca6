package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`

	VotingEnabled  bool       `json:"voting_enabled"`
	VotingStartsAt *time.Time `json:"voting_starts_at,omitempty"`
	VotingEndsAt   *time.Time `json:"voting_ends_at,omitempty"`
	VotingScope    string     `json:"voting_scope"`
	VoteMode       string     `json:"vote_mode"`
	VoteQuota      int        `json:"vote_quota"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Location, validation.Length(0, 200)),
		validation.Field(&req.VotingScope, validation.In("public", "registered")),
		validation.Field(&req.VoteMode, validation.In("fixed_quota", "per_project_like")),
		validation.Field(&req.VoteQuota, validation.Min(0), validation.Max(100)),
	)
}
