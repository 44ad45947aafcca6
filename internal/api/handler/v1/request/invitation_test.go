package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateInvitationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateInvitationRequest
		wantErr bool
	}{
		{
			name:    "empty is valid, mode is decided by the issuer's role",
			req:     CreateInvitationRequest{},
			wantErr: false,
		},
		{
			name: "valid referral form",
			req: CreateInvitationRequest{
				Role:               "member",
				InviteeName:        "Alex Morgan (GopherCon)",
				InvitationReason:   "Ran the hardware track at our last hackathon.",
				EligibilityDetails: "Shipped two community projects this year.",
			},
			wantErr: false,
		},
		{
			name:    "invalid email",
			req:     CreateInvitationRequest{Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "unknown role",
			req:     CreateInvitationRequest{Role: "owner"},
			wantErr: true,
		},
		{
			name:    "questionnaire field too short",
			req:     CreateInvitationRequest{InviteeName: "Alex"},
			wantErr: true,
		},
		{
			name:    "questionnaire field too long",
			req:     CreateInvitationRequest{InvitationReason: strings.Repeat("x", 501)},
			wantErr: true,
		},
		{
			// 4 characters, 12 bytes; the bound counts characters.
			name:    "multibyte questionnaire field too short",
			req:     CreateInvitationRequest{InviteeName: strings.Repeat("社", 4)},
			wantErr: true,
		},
		{
			// 200 characters, 600 bytes.
			name:    "multibyte questionnaire field within bounds",
			req:     CreateInvitationRequest{InviteeName: strings.Repeat("社", 200)},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewApplicationRequest_Validate(t *testing.T) {
	approve := true

	assert.Error(t, (&ReviewApplicationRequest{}).Validate())
	assert.NoError(t, (&ReviewApplicationRequest{Approve: &approve}).Validate())
}
