package models

// Service is a detailing package offered in the catalog.
type Service struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Price       string `json:"price" bson:"price"`       // decimal string as sent by the backend, e.g. "1299.00"
	Duration    int    `json:"duration" bson:"duration"` // minutes
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
}
