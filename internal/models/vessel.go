package models

// Vessel is a ship operated by the company.
type Vessel struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Code        string             `json:"code,omitempty"`
	Assignments []VesselAssignment `json:"assignments,omitempty"`
}

// VesselAssignment links a vessel to the user responsible for it.
type VesselAssignment struct {
	User *User `json:"user,omitempty"`
}

// Responsible returns the first assigned user, or nil.
func (v Vessel) Responsible() *User {
	for _, a := range v.Assignments {
		if a.User != nil && a.User.ID != 0 {
			return a.User
		}
	}
	return nil
}

// VesselInput is the body for creating a vessel.
type VesselInput struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code,omitempty"`
}
