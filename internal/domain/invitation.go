package domain

import "time"

type InvitationMode string

const (
	// InvitationModeDirect joins the target to the organization as soon
	// as they accept.
	InvitationModeDirect InvitationMode = "direct"
	// InvitationModeReferral turns acceptance into a pending application
	// that an organization admin reviews later.
	InvitationModeReferral InvitationMode = "referral"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
	InvitationStatusCanceled InvitationStatus = "canceled"
)

// Questionnaire is required on referral invitations: the issuer explains
// who they are inviting and why the invitee qualifies.
type Questionnaire struct {
	InviteeName        string `json:"invitee_name"`
	InvitationReason   string `json:"invitation_reason"`
	EligibilityDetails string `json:"eligibility_details"`
}

type Invitation struct {
	ID             uint             `json:"id"`
	Code           string           `json:"code"`
	OrganizationID uint             `json:"organization_id"`
	InviterID      uint             `json:"inviter_id"`
	Mode           InvitationMode   `json:"mode"`
	Email          string           `json:"email,omitempty"`
	TargetUserID   *uint            `json:"target_user_id,omitempty"`
	Role           OrgRole          `json:"role"`
	Status         InvitationStatus `json:"status"`
	Questionnaire  *Questionnaire   `json:"questionnaire,omitempty"`
	ExpiresAt      time.Time        `json:"expires_at"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ExpiredAt reports functional expiry. Expiry is a read-time condition:
// a pending invitation past its deadline stays pending in storage but
// can no longer be resolved or accepted.
func (i *Invitation) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is the pending membership request produced by accepting a
// referral invitation.
type Application struct {
	ID             uint              `json:"id"`
	OrganizationID uint              `json:"organization_id"`
	InvitationID   uint              `json:"invitation_id"`
	ApplicantID    uint              `json:"applicant_id"`
	Status         ApplicationStatus `json:"status"`
	ReviewedBy     *uint             `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
