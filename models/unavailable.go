package models

import "time"

// UnavailableDate marks a calendar date on which no appointment may be created.
type UnavailableDate struct {
	ID          string    `bson:"id" json:"id"`
	Date        string    `bson:"date" json:"date"`
	Reason      string    `bson:"reason" json:"reason"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UnavailableDateRequest struct {
	Date        string `json:"date" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Description string `json:"description"`
}
