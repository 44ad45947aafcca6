package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateInvitationRequest struct {
	Email        string `json:"email,omitempty"`
	TargetUserID *uint  `json:"target_user_id,omitempty"`
	Role         string `json:"role"`

	// Questionnaire fields, required when the issuer is not an
	// organization admin.
	InviteeName        string `json:"invitee_name,omitempty"`
	InvitationReason   string `json:"invitation_reason,omitempty"`
	EligibilityDetails string `json:"eligibility_details,omitempty"`
}

func (req *CreateInvitationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Role, validation.In("admin", "member")),
		validation.Field(&req.InviteeName, validation.RuneLength(10, 500)),
		validation.Field(&req.InvitationReason, validation.RuneLength(10, 500)),
		validation.Field(&req.EligibilityDetails, validation.RuneLength(10, 500)),
	)
}

type ReviewApplicationRequest struct {
	Approve *bool `json:"approve"`
}

func (req *ReviewApplicationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Approve, validation.NotNil),
	)
}
