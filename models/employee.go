package models

import "time"

// Employee is a staff member known to the staffing service.
// EmployeeID is the staff code (e.g. "EMP001"); UserID links to the authenticated user.
type Employee struct {
	ID             string    `bson:"id" json:"id"`
	EmployeeID     string    `bson:"employeeId" json:"employeeId"`
	UserID         string    `bson:"userId" json:"userId"`
	Username       string    `bson:"username" json:"username"`
	Email          string    `bson:"email" json:"email"`
	Department     string    `bson:"department,omitempty" json:"department,omitempty"`
	Specialization string    `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Skills         []string  `bson:"skills,omitempty" json:"skills,omitempty"`
	IsAvailable    bool      `bson:"isAvailable" json:"isAvailable"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

type RegisterEmployeeRequest struct {
	EmployeeID     string   `json:"employeeId" binding:"required"`
	UserID         string   `json:"userId" binding:"required"`
	Username       string   `json:"username" binding:"required"`
	Email          string   `json:"email"`
	Department     string   `json:"department"`
	Specialization string   `json:"specialization"`
	Skills         []string `json:"skills"`
}
