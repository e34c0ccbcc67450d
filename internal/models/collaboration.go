package models

import "time"

// Collaboration request status
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

type CollaborationRequest struct {
	ID             string    `json:"id"`
	InvestorID     string    `json:"investorId"`
	EntrepreneurID string    `json:"entrepreneurId"`
	Message        string    `json:"message"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
