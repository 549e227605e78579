package domain

import "time"

type CheckinStatus string

const (
	CheckinStatusPendingApproval CheckinStatus = "Pending Admin Approval"
	CheckinStatusCompleted       CheckinStatus = "Completed"
)

type Checkin struct {
	ID          string        `json:"id"`
	GearID      string        `json:"gear_id"`
	UserID      string        `json:"user_id"`
	RequestID   *string       `json:"request_id,omitempty"`
	Status      CheckinStatus `json:"status"`
	Condition   GearCondition `json:"condition"`
	Quantity    int32         `json:"quantity"`
	Notes       string        `json:"notes"`
	DamageNotes string        `json:"damage_notes"`
	CheckinDate time.Time     `json:"checkin_date"`
	ApprovedAt  *time.Time    `json:"approved_at,omitempty"`
	ApprovedBy  *string       `json:"approved_by,omitempty"`
}
