package fuel

import (
	"github.com/shopspring/decimal"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// Tolerance is the largest |diff| in liters still treated as reconciled.
var Tolerance = decimal.NewFromFloat(0.01)

// Status classifies a reconciliation result.
type Status int

const (
	StatusReconciled Status = iota
	StatusDiscrepant
)

func (s Status) String() string {
	if s == StatusDiscrepant {
		return "discrepant"
	}
	return "reconciled"
}

// Discrepant reports whether the balances disagree beyond Tolerance.
func (s Status) Discrepant() bool {
	return s == StatusDiscrepant
}

// ReconcileInput gathers the balances of one voyage.
type ReconcileInput struct {
	OpeningRob float64
	ClosingRob float64
	Bunkers    []models.Bunker
	// LocalConsumed is the fuel summed from activities on the client.
	LocalConsumed float64
	// Computed is the server aggregate, nil when the server sent none.
	Computed *models.Computed
}

// Reconciliation is the expected-closing check for one voyage.
type Reconciliation struct {
	BunkeredTotal          float64
	ConsumedFromActivities float64
	ExpectedClosing        float64
	ReportedClosing        float64
	Diff                   float64
	Status                 Status
}

// Reconcile computes expected closing = opening + bunkered - consumed and
// compares it with the reported closing ROB. The server's consumed figure
// is preferred over the local sum when present.
func Reconcile(in ReconcileInput) Reconciliation {
	consumed := in.LocalConsumed
	if in.Computed != nil && in.Computed.ConsumedFromActivities.IsSet() {
		consumed = in.Computed.ConsumedFromActivities.Float()
	}

	bunkered := decimal.Zero
	for _, b := range in.Bunkers {
		bunkered = bunkered.Add(decimal.NewFromFloat(b.Amount.Float()))
	}

	opening := decimal.NewFromFloat(in.OpeningRob)
	closing := decimal.NewFromFloat(in.ClosingRob)
	expected := opening.Add(bunkered).Sub(decimal.NewFromFloat(consumed))
	diff := closing.Sub(expected)

	status := StatusReconciled
	if diff.Abs().GreaterThan(Tolerance) {
		status = StatusDiscrepant
	}

	return Reconciliation{
		BunkeredTotal:          bunkered.InexactFloat64(),
		ConsumedFromActivities: consumed,
		ExpectedClosing:        expected.InexactFloat64(),
		ReportedClosing:        in.ClosingRob,
		Diff:                   diff.InexactFloat64(),
		Status:                 status,
	}
}

// ReconcileRecord reconciles a fuel record against locally aggregated
// activities.
func ReconcileRecord(rec models.FuelConsumption, local Metrics) Reconciliation {
	return Reconcile(ReconcileInput{
		OpeningRob:    rec.Rob.OpeningRob.Float(),
		ClosingRob:    rec.Rob.ClosingRob.Float(),
		Bunkers:       rec.Bunkers,
		LocalConsumed: local.FuelUsed,
		Computed:      rec.Computed,
	})
}
