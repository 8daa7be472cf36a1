package models

// UnitLiters is the only fuel unit the console writes.
const UnitLiters = "L"

// Rob holds the remaining-on-board fuel at voyage start and end.
type Rob struct {
	OpeningRob Number `json:"openingRob"`
	ClosingRob Number `json:"closingRob"`
	Unit       string `json:"unit"`
}

// Bunker records fuel taken on board.
type Bunker struct {
	ID     int64  `json:"id"`
	At     string `json:"at"`
	Amount Number `json:"amount"`
	Unit   string `json:"unit,omitempty"`
	Remark string `json:"remark,omitempty"`
}

// Computed carries aggregates derived by the server. It may be missing.
type Computed struct {
	ConsumedFromActivities Number            `json:"consumedFromActivities"`
	ByActivityType         map[string]Number `json:"byActivityType"`
}

// FuelConsumption is the per-voyage fuel record.
type FuelConsumption struct {
	Rob      Rob       `json:"rob"`
	Bunkers  []Bunker  `json:"bunkers"`
	Computed *Computed `json:"computed,omitempty"`
}

// RobInput is the body of the ROB update.
type RobInput struct {
	OpeningRob float64 `json:"openingRob" validate:"gte=0"`
	ClosingRob float64 `json:"closingRob" validate:"gte=0"`
	Unit       string  `json:"unit" validate:"omitempty,eq=L"`
}

// BunkerInput is the body for creating or updating a bunker event.
type BunkerInput struct {
	At     string  `json:"at" validate:"required,timestamp"`
	Amount float64 `json:"amount" validate:"gt=0"`
	Unit   string  `json:"unit" validate:"omitempty,eq=L"`
	Remark string  `json:"remark,omitempty"`
}
