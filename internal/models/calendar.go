package models

import "time"

// Meeting status
const (
	MeetingPending  = "pending"
	MeetingAccepted = "accepted"
	MeetingDeclined = "declined"
)

// AvailabilitySlot is an open time window a user offers for meetings.
type AvailabilitySlot struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
}

type Meeting struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	EntrepreneurID string    `json:"entrepreneurId"`
	InvestorID     string    `json:"investorId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
