package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSubmissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberIDs   []uint `json:"member_ids"`
}

func (req *CreateSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 5000)),
		validation.Field(&req.MemberIDs, validation.Length(0, 20)),
	)
}

// ReviewSubmissionRequest carries organizer review actions; both fields
// are optional so status and vote adjustments can be set independently.
type ReviewSubmissionRequest struct {
	Status      *string `json:"status,omitempty"`
	ManualVotes *int    `json:"manual_votes,omitempty"`
}

func (req *ReviewSubmissionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In("submitted", "under_review", "approved", "awarded")),
	)
}
