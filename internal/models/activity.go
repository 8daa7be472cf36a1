package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActivityType classifies an operational event within a voyage.
type ActivityType string

const (
	CargoLoad      ActivityType = "CARGO_LOAD"
	CargoDischarge ActivityType = "CARGO_DISCHARGE"
	Manoeuvring    ActivityType = "MANOEUVRING"
	FullSpeedAway  ActivityType = "FULL_SPEED_AWAY"
	Anchoring      ActivityType = "ANCHORING"
	Other          ActivityType = "OTHER"
)

// ActivityTypes lists the known types in display order.
var ActivityTypes = []ActivityType{
	CargoLoad,
	CargoDischarge,
	Manoeuvring,
	FullSpeedAway,
	Anchoring,
	Other,
}

var titleCaser = cases.Title(language.English)

// Label turns CARGO_LOAD into "Cargo Load".
func (t ActivityType) Label() string {
	if t == "" {
		return "-"
	}
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(string(t)), "_", " "))
}

// IsCargo reports whether container fields apply to the type.
func (t ActivityType) IsCargo() bool {
	return t == CargoLoad || t == CargoDischarge
}

// Valid reports whether t is one of ActivityTypes.
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Activity is a timed event of a voyage. Which numeric fields are filled
// depends on Type.
type Activity struct {
	ID                   int64        `json:"id"`
	VoyageID             int64        `json:"voyageId"`
	Type                 ActivityType `json:"type"`
	StartAt              string       `json:"startAt"`
	EndAt                string       `json:"endAt"`
	FuelUsed             Number       `json:"fuelUsed"`
	ReeferCount          Number       `json:"reeferCount"`
	MainEngineCount      Number       `json:"mainEngineCount"`
	MainEngineHours      Number       `json:"mainEngineHours"`
	GeneratorCount       Number       `json:"generatorCount"`
	GeneratorHours       Number       `json:"generatorHours"`
	ContainerCount       Number       `json:"containerCount"`
	TotalContainerWeight Number       `json:"totalContainerWeight"`
	AvgSpeed             Number       `json:"avgSpeed"`
	Remark               string       `json:"remark,omitempty"`
}

// ActivityInput is the create/update body. Optional numbers are omitted
// when nil.
type ActivityInput struct {
	Type                 ActivityType `json:"type" validate:"required,activityType"`
	StartAt              string       `json:"startAt" validate:"required,timestamp"`
	EndAt                string       `json:"endAt" validate:"required,timestamp"`
	FuelUsed             *float64     `json:"fuelUsed,omitempty" validate:"omitempty,gte=0"`
	ReeferCount          *float64     `json:"reeferCount,omitempty" validate:"omitempty,gte=0"`
	MainEngineCount      *float64     `json:"mainEngineCount,omitempty" validate:"omitempty,gte=0"`
	MainEngineHours      *float64     `json:"mainEngineHours,omitempty" validate:"omitempty,gte=0"`
	GeneratorCount       *float64     `json:"generatorCount,omitempty" validate:"omitempty,gte=0"`
	GeneratorHours       *float64     `json:"generatorHours,omitempty" validate:"omitempty,gte=0"`
	ContainerCount       *float64     `json:"containerCount,omitempty" validate:"omitempty,gte=0"`
	TotalContainerWeight *float64     `json:"totalContainerWeight,omitempty" validate:"omitempty,gte=0"`
	AvgSpeed             *float64     `json:"avgSpeed,omitempty" validate:"omitempty,gte=0"`
	Remark               string       `json:"remark,omitempty"`
}
