package models

import "strings"

// Vehicle is the customer's car as captured on the vehicle details step.
type Vehicle struct {
	ID           string `json:"id,omitempty" bson:"id,omitempty"`
	Make         string `json:"make" bson:"make"`
	Model        string `json:"model" bson:"model"`
	Year         string `json:"year" bson:"year"`
	LicensePlate string `json:"license_plate" bson:"license_plate"`
	Color        string `json:"color,omitempty" bson:"color,omitempty"`
}

// Missing lists the required fields that are still blank, in form order.
func (v Vehicle) Missing() []string {
	var missing []string
	if strings.TrimSpace(v.Make) == "" {
		missing = append(missing, "make")
	}
	if strings.TrimSpace(v.Model) == "" {
		missing = append(missing, "model")
	}
	if strings.TrimSpace(v.Year) == "" {
		missing = append(missing, "year")
	}
	if strings.TrimSpace(v.LicensePlate) == "" {
		missing = append(missing, "license_plate")
	}
	return missing
}

// Complete reports whether make, model, year and license plate are all filled in.
func (v Vehicle) Complete() bool {
	return len(v.Missing()) == 0
}
