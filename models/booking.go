package models

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Amounts are decimal strings in the booking currency.
type Amounts struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Discount string `json:"discount,omitempty"`
	Total    string `json:"total"`
}

// Booking is a booking record as returned by the backend.
type Booking struct {
	ID            string        `json:"id"`
	Status        BookingStatus `json:"status"`
	CustomerID    string        `json:"customer_id"`
	CustomerName  string        `json:"customer_name,omitempty"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	Service       Service       `json:"service"`
	Vehicle       Vehicle       `json:"vehicle"`
	TimeSlot      TimeSlot      `json:"time_slot"`
	Notes         string        `json:"notes,omitempty"`
	Amounts       Amounts       `json:"amounts"`
	ScheduledDate string        `json:"scheduled_date"`
	CreatedAt     time.Time     `json:"created_at"`
}

// BookingRequest is the payload sent to the backend to create a booking.
type BookingRequest struct {
	ServiceID  string  `json:"service_id"`
	Vehicle    Vehicle `json:"vehicle"`
	TimeSlotID string  `json:"time_slot_id"`
	Notes      string  `json:"notes"`
}

// BookingConfirmation is returned to the client after a successful submit.
type BookingConfirmation struct {
	Booking  Booking `json:"booking"`
	Redirect string  `json:"redirect"`
}
