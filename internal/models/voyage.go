package models

import (
	"strings"
	"time"

	"github.com/ngmaloney/vessel-console/internal/coerce"
)

// VoyageStatus is OPEN or CLOSED; other values from the server are kept as is.
type VoyageStatus string

const (
	VoyageOpen   VoyageStatus = "OPEN"
	VoyageClosed VoyageStatus = "CLOSED"
)

// IsClosed compares case-insensitively.
func (s VoyageStatus) IsClosed() bool {
	return strings.EqualFold(string(s), string(VoyageClosed))
}

// Voyage is one trip of a vessel, booked against a posting month and year.
type Voyage struct {
	ID           int64        `json:"id"`
	VesselID     int64        `json:"vesselId"`
	VoyNo        string       `json:"voyNo"`
	StartAt      string       `json:"startAt"`
	EndAt        string       `json:"endAt,omitempty"`
	PostingMonth int          `json:"postingMonth"`
	PostingYear  int          `json:"postingYear"`
	Status       VoyageStatus `json:"status"`

	// VesselName is filled in by callers that list voyages across vessels.
	VesselName string `json:"-"`
}

// Start returns the parsed start timestamp.
func (v Voyage) Start() (time.Time, bool) {
	return coerce.Timestamp(v.StartAt)
}

// End returns the parsed end timestamp.
func (v Voyage) End() (time.Time, bool) {
	return coerce.Timestamp(v.EndAt)
}

// NextStatus is the status a toggle moves the voyage to.
func (v Voyage) NextStatus() VoyageStatus {
	if v.Status.IsClosed() {
		return VoyageOpen
	}
	return VoyageClosed
}

// VoyageInput is the body for creating or updating a voyage. EndAt is sent
// as null when cleared.
type VoyageInput struct {
	VesselID     int64        `json:"vesselId,omitempty"`
	VoyNo        string       `json:"voyNo" validate:"required"`
	StartAt      string       `json:"startAt" validate:"required,timestamp"`
	EndAt        *string      `json:"endAt"`
	PostingMonth int          `json:"postingMonth" validate:"min=1,max=12"`
	PostingYear  int          `json:"postingYear" validate:"gte=2000"`
	Status       VoyageStatus `json:"status,omitempty" validate:"omitempty,oneof=OPEN CLOSED"`
}

// VoyageFilter narrows a voyage listing to a posting period. Zero fields
// are omitted from the query.
type VoyageFilter struct {
	Year  int
	Month int
}
