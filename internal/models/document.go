package models

import "time"

type Document struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Size         string    `json:"size"`
	LastModified time.Time `json:"lastModified"`
	Shared       bool      `json:"shared"`
	URL          string    `json:"url"`
	OwnerID      string    `json:"ownerId"`
}
