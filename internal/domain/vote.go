package domain

import "time"

type Vote struct {
	ID           uint      `json:"id"`
	EventID      uint      `json:"event_id"`
	SubmissionID uint      `json:"submission_id"`
	UserID       uint      `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}
