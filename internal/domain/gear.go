package domain

import "time"

type GearStatus string

const (
	GearStatusAvailable           GearStatus = "Available"
	GearStatusNew                 GearStatus = "New"
	GearStatusDamaged             GearStatus = "Damaged"
	GearStatusUnderRepair         GearStatus = "Under Repair"
	GearStatusNeedsRepair         GearStatus = "Needs Repair"
	GearStatusCheckedOut          GearStatus = "Checked Out"
	GearStatusPartiallyCheckedOut GearStatus = "Partially Checked Out"
	GearStatusPendingCheckin      GearStatus = "Pending Check-in"
	GearStatusRetired             GearStatus = "Retired"
	GearStatusLost                GearStatus = "Lost"
)

type GearCondition string

const (
	GearConditionExcellent GearCondition = "Excellent"
	GearConditionGood      GearCondition = "Good"
	GearConditionFair      GearCondition = "Fair"
	GearConditionDamaged   GearCondition = "Damaged"
)

type Gear struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Category          string        `json:"category"`
	Description       string        `json:"description"`
	Status            GearStatus    `json:"status"`
	Quantity          int32         `json:"quantity"`
	AvailableQuantity int32         `json:"available_quantity"`
	CheckedOutTo      *string       `json:"checked_out_to,omitempty"`
	DueDate           *time.Time    `json:"due_date,omitempty"`
	CurrentRequestID  *string       `json:"current_request_id,omitempty"`
	Condition         GearCondition `json:"condition"`
	ImageURL          string        `json:"image_url"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Loanable reports whether the gear's stored status belongs to the family of
// states from which units may be requested.
func (g *Gear) Loanable() bool {
	switch g.Status {
	case GearStatusAvailable, GearStatusNew, GearStatusPartiallyCheckedOut:
		return g.AvailableQuantity > 0
	}
	return false
}

// CheckedOutFamily reports whether the status implies a non-nil holder.
func (s GearStatus) CheckedOutFamily() bool {
	return s == GearStatusCheckedOut || s == GearStatusPartiallyCheckedOut || s == GearStatusPendingCheckin
}

// OutOfService covers states where no unit is loanable regardless of counters.
func (s GearStatus) OutOfService() bool {
	switch s {
	case GearStatusDamaged, GearStatusUnderRepair, GearStatusNeedsRepair, GearStatusRetired, GearStatusLost:
		return true
	}
	return false
}
