package models

// ServiceRef points at a catalog service either by id alone (unresolved) or
// by the full record (resolved).
type ServiceRef struct {
	ID     string   `json:"id,omitempty" bson:"id,omitempty"`
	Record *Service `json:"record,omitempty" bson:"record,omitempty"`
}

func UnresolvedService(id string) ServiceRef {
	return ServiceRef{ID: id}
}

func ResolvedService(s Service) ServiceRef {
	return ServiceRef{ID: s.ID, Record: &s}
}

// IsSet reports whether any service has been picked.
func (r ServiceRef) IsSet() bool {
	return r.ID != "" || r.Record != nil
}

// Resolved returns the full record when the reference carries one.
func (r ServiceRef) Resolved() (Service, bool) {
	if r.Record == nil {
		return Service{}, false
	}
	return *r.Record, true
}

// SlotRef points at an appointment slot, unresolved (id) or resolved (record).
type SlotRef struct {
	ID     string    `json:"id,omitempty" bson:"id,omitempty"`
	Record *TimeSlot `json:"record,omitempty" bson:"record,omitempty"`
}

func UnresolvedSlot(id string) SlotRef {
	return SlotRef{ID: id}
}

func ResolvedSlot(s TimeSlot) SlotRef {
	return SlotRef{ID: s.ID, Record: &s}
}

func (r SlotRef) IsSet() bool {
	return r.ID != "" || r.Record != nil
}

func (r SlotRef) Resolved() (TimeSlot, bool) {
	if r.Record == nil {
		return TimeSlot{}, false
	}
	return *r.Record, true
}

// BookingDraft is the in-progress booking assembled across the wizard steps.
type BookingDraft struct {
	Service  ServiceRef `json:"service" bson:"service"`
	Vehicle  Vehicle    `json:"vehicle" bson:"vehicle"`
	TimeSlot SlotRef    `json:"time_slot" bson:"time_slot"`
	Notes    string     `json:"notes" bson:"notes"`
}

// Submittable reports whether every required part of the draft is filled in.
func (d BookingDraft) Submittable() bool {
	return d.Service.IsSet() && d.Vehicle.Complete() && d.TimeSlot.IsSet()
}
