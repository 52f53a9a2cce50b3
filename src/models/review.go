package models

import "time"

// ReviewStatus is the moderation state of a review
type ReviewStatus string

const (
	// ReviewStatusPending is the state of every freshly submitted review
	ReviewStatusPending ReviewStatus = "PENDING"
	// ReviewStatusApproved marks a review cleared for display
	ReviewStatusApproved ReviewStatus = "APPROVED"
	// ReviewStatusRejected marks a review hidden from display
	ReviewStatusRejected ReviewStatus = "REJECTED"
)

// Review is a piece of audience feedback submitted from the public site
type Review struct {
	ID        int64        `json:"id"`
	UserName  string       `json:"userName"`
	Comment   string       `json:"comment"`
	Rating    int          `json:"rating"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}
