package models

import "time"

// Student represents a single student record. Name and Email are the only
// required fields; optional numerics stay nil when absent rather than
// defaulting to zero.
type Student struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Course       string    `db:"course" json:"course,omitempty"`
	Age          *int      `db:"age" json:"age,omitempty"`
	RollNumber   string    `db:"roll_number" json:"rollNumber,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Department   string    `db:"department" json:"department,omitempty"`
	GPA          *float64  `db:"gpa" json:"gpa,omitempty"`
	Skills       string    `db:"skills" json:"skills,omitempty"`
	Achievements string    `db:"achievements" json:"achievements,omitempty"`
	Portfolio    string    `db:"portfolio" json:"portfolio,omitempty"`
	Avatar       string    `db:"avatar" json:"avatar,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// DepartmentSummary groups the collection by department for chart rendering.
// Labels and Counts are parallel slices in first-seen order.
type DepartmentSummary struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}
