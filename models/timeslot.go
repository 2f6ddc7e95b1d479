package models

// TimeSlot is a bookable appointment window.
type TimeSlot struct {
	ID        string `json:"id" bson:"id"`
	Date      string `json:"date" bson:"date"`             // YYYY-MM-DD
	StartTime string `json:"start_time" bson:"start_time"` // HH:MM
	EndTime   string `json:"end_time" bson:"end_time"`     // HH:MM
	Available bool   `json:"is_available" bson:"is_available"`
}
