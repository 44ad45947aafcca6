package response

import "github.com/hackathonweekly/community-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RemainingVotesResponse reports the caller's vote budget after a vote
// ledger operation. RemainingVotes is null in per-project like mode.
type RemainingVotesResponse struct {
	RemainingVotes *int `json:"remaining_votes"`
}

type CreateInvitationResponse struct {
	InvitationURL string `json:"invitation_url"`
	Code          string `json:"code"`
	Mode          string `json:"mode"`
}
