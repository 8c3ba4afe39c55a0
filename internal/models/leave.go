package models

import "time"

// Leave is a leave request. UserID is a loosely typed string and dates are
// opaque strings; neither is validated beyond presence, matching the route
// contract.
type Leave struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Reason    string    `db:"reason" json:"reason"`
	FromDate  string    `db:"from_date" json:"fromDate"`
	ToDate    string    `db:"to_date" json:"toDate"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateLeaveRequest is the payload for applying for leave.
type CreateLeaveRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
	FromDate string `json:"fromDate" validate:"required"`
	ToDate   string `json:"toDate" validate:"required"`
}

// UpdateLeaveRequest replaces the mutable fields of a leave.
type UpdateLeaveRequest struct {
	Reason   string `json:"reason"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}
