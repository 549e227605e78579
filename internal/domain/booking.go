package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusApproved  BookingStatus = "Approved"
	BookingStatusRejected  BookingStatus = "Rejected"
	BookingStatusCompleted BookingStatus = "Completed"
)

type CarBooking struct {
	ID            string        `json:"id"`
	RequesterID   string        `json:"requester_id"`
	EmployeeName  string        `json:"employee_name"`
	Reason        string        `json:"reason"`
	Destination   string        `json:"destination"`
	DateOfUse     time.Time     `json:"date_of_use"`
	TimeSlot      string        `json:"time_slot"`
	Status        BookingStatus `json:"status"`
	AssignedCarID *string       `json:"assigned_car_id,omitempty"`
	RequestID     *string       `json:"request_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type Car struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}

type CarAssignment struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	CarID     string    `json:"car_id"`
	CreatedAt time.Time `json:"created_at"`
}
