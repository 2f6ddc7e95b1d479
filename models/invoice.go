package models

// Company is the issuer printed on invoices.
type Company struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Currency string `json:"currency"`
}

// ConfirmationPayload is the queued message for a confirmed booking.
type ConfirmationPayload struct {
	UserID  string  `json:"userId"`
	Booking Booking `json:"booking"`
}
