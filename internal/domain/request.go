package domain

import "time"

type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "New"
	RequestStatusPending    RequestStatus = "Pending"
	RequestStatusApproved   RequestStatus = "Approved"
	RequestStatusRejected   RequestStatus = "Rejected"
	RequestStatusCheckedOut RequestStatus = "CheckedOut"
	RequestStatusCompleted  RequestStatus = "Completed"
	RequestStatusCancelled  RequestStatus = "Cancelled"
)

// Terminal reports whether the request can no longer be cancelled.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled || s == RequestStatusRejected
}

type RequestLine struct {
	GearID   string `json:"gear_id"`
	Quantity int32  `json:"quantity"`
}

type GearRequest struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Lines      []RequestLine `json:"lines"`
	Status     RequestStatus `json:"status"`
	DueDate    *time.Time    `json:"due_date,omitempty"`
	ApprovedAt *time.Time    `json:"approved_at,omitempty"`
	AdminNotes string        `json:"admin_notes"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
