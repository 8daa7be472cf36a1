package voyage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/vessel-console/internal/fuel"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/validate"
)

type fakeClient struct {
	mu sync.Mutex

	voyage     models.Voyage
	activities []models.Activity
	fuel       models.FuelConsumption
	voyages    []models.Voyage

	loadErr  error
	writeErr error
	calls    []string
	loads    int

	lastActivity models.ActivityInput
	lastRob      models.RobInput
	lastBunker   models.BunkerInput
	lastVoyage   models.VoyageInput
	lastStatus   models.VoyageStatus
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) ListVoyages(ctx context.Context, vesselID int64, filter models.VoyageFilter) ([]models.Voyage, error) {
	f.record("ListVoyages")
	return append([]models.Voyage(nil), f.voyages...), f.loadErr
}

func (f *fakeClient) GetVoyage(ctx context.Context, voyageID int64) (*models.Voyage, error) {
	f.mu.Lock()
	f.loads++
	f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	v := f.voyage
	return &v, nil
}

func (f *fakeClient) CreateVoyage(ctx context.Context, vesselID int64, in models.VoyageInput) error {
	f.record("CreateVoyage")
	f.lastVoyage = in
	return f.writeErr
}

func (f *fakeClient) UpdateVoyage(ctx context.Context, voyageID int64, in models.VoyageInput) error {
	f.record("UpdateVoyage")
	f.lastVoyage = in
	return f.writeErr
}

func (f *fakeClient) SetVoyageStatus(ctx context.Context, voyageID int64, status models.VoyageStatus) error {
	f.record("SetVoyageStatus")
	f.lastStatus = status
	return f.writeErr
}

func (f *fakeClient) DeleteVoyage(ctx context.Context, voyageID int64) error {
	f.record("DeleteVoyage")
	return f.writeErr
}

func (f *fakeClient) ListActivities(ctx context.Context, voyageID int64) ([]models.Activity, error) {
	return f.activities, nil
}

func (f *fakeClient) CreateActivity(ctx context.Context, voyageID int64, in models.ActivityInput) error {
	f.record("CreateActivity")
	f.lastActivity = in
	return f.writeErr
}

func (f *fakeClient) UpdateActivity(ctx context.Context, activityID int64, in models.ActivityInput) error {
	f.record("UpdateActivity")
	f.lastActivity = in
	return f.writeErr
}

func (f *fakeClient) DeleteActivity(ctx context.Context, activityID int64) error {
	f.record("DeleteActivity")
	return f.writeErr
}

func (f *fakeClient) GetFuelConsumption(ctx context.Context, voyageID int64) (*models.FuelConsumption, error) {
	rec := f.fuel
	return &rec, nil
}

func (f *fakeClient) UpdateRob(ctx context.Context, voyageID int64, in models.RobInput) error {
	f.record("UpdateRob")
	f.lastRob = in
	return f.writeErr
}

func (f *fakeClient) CreateBunker(ctx context.Context, voyageID int64, in models.BunkerInput) error {
	f.record("CreateBunker")
	f.lastBunker = in
	return f.writeErr
}

func (f *fakeClient) UpdateBunker(ctx context.Context, bunkerID int64, in models.BunkerInput) error {
	f.record("UpdateBunker")
	f.lastBunker = in
	return f.writeErr
}

func (f *fakeClient) DeleteBunker(ctx context.Context, bunkerID int64) error {
	f.record("DeleteBunker")
	return f.writeErr
}

func num(v float64) models.Number { return models.NumberOf(v) }

func sampleClient() *fakeClient {
	return &fakeClient{
		voyage: models.Voyage{ID: 7, VoyNo: "V-7", StartAt: "2025-01-01T00:00", Status: models.VoyageOpen},
		activities: []models.Activity{
			{ID: 1, Type: models.CargoLoad, StartAt: "2025-01-01T00:00", EndAt: "2025-01-01T10:00", FuelUsed: num(300), ContainerCount: num(40)},
			{ID: 2, Type: models.Anchoring, StartAt: "2025-01-01T10:00", EndAt: "2025-01-01T12:00", FuelUsed: num(50)},
		},
		fuel: models.FuelConsumption{
			Rob:     models.Rob{OpeningRob: num(1000), ClosingRob: num(750), Unit: "L"},
			Bunkers: []models.Bunker{{ID: 1, Amount: num(100)}},
		},
	}
}

func TestLoad_ComputesDerivedFigures(t *testing.T) {
	client := sampleClient()
	d, err := NewService(client).Load(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Voy V-7", d.Title())
	assert.Len(t, d.Activities, 2)
	assert.Equal(t, 350.0, d.Metrics.FuelUsed)
	assert.Equal(t, 12.0, d.Metrics.DurationHours)
	assert.Equal(t, 100.0, d.Reconciliation.BunkeredTotal)
	assert.Equal(t, 750.0, d.Reconciliation.ExpectedClosing)
	assert.Equal(t, fuel.StatusReconciled, d.Reconciliation.Status)
	assert.NotEmpty(t, d.Breakdown)
	assert.False(t, d.LoadedAt.IsZero())
}

func TestLoad_PrefersServerConsumption(t *testing.T) {
	client := sampleClient()
	client.fuel.Computed = &models.Computed{ConsumedFromActivities: num(400)}

	d, err := NewService(client).Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 400.0, d.Reconciliation.ConsumedFromActivities)
	assert.Equal(t, 700.0, d.Reconciliation.ExpectedClosing)
	assert.True(t, d.Reconciliation.Status.Discrepant())
}

func TestLoad_Failure(t *testing.T) {
	client := sampleClient()
	client.loadErr = errors.New("could not load voyage")

	d, err := NewService(client).Load(context.Background(), 7)
	assert.Nil(t, d)
	assert.EqualError(t, err, "could not load voyage")
}

func TestLoad_TitleWithoutNumber(t *testing.T) {
	client := sampleClient()
	client.voyage.VoyNo = ""
	d, err := NewService(client).Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Voy #7", d.Title())
}

func TestSaveActivity_CreateOrUpdateThenReload(t *testing.T) {
	client := sampleClient()
	svc := NewService(client)
	in := models.ActivityInput{Type: models.Other, StartAt: "2025-01-02T00:00", EndAt: "2025-01-02T01:00", Remark: "survey"}

	_, err := svc.SaveActivity(context.Background(), 7, 0, in)
	require.NoError(t, err)
	_, err = svc.SaveActivity(context.Background(), 7, 3, in)
	require.NoError(t, err)

	assert.Equal(t, []string{"CreateActivity", "UpdateActivity"}, client.calls)
	assert.Equal(t, 2, client.loads)
}

func TestSaveActivity_InvalidInputNeverSent(t *testing.T) {
	client := sampleClient()
	_, err := NewService(client).SaveActivity(context.Background(), 7, 0, models.ActivityInput{Type: models.Other})

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, client.calls)
	assert.Zero(t, client.loads)
}

func TestMutation_ServerErrorSkipsReload(t *testing.T) {
	client := sampleClient()
	client.writeErr = errors.New("could not delete activity")

	_, err := NewService(client).DeleteActivity(context.Background(), 7, 1)
	assert.EqualError(t, err, "could not delete activity")
	assert.Zero(t, client.loads)
}

func TestSaveRob_DefaultsUnit(t *testing.T) {
	client := sampleClient()
	svc := NewService(client)

	_, err := svc.SaveRob(context.Background(), 7, models.RobInput{OpeningRob: 900, ClosingRob: 100})
	require.NoError(t, err)
	assert.Equal(t, "L", client.lastRob.Unit)

	_, err = svc.SaveRob(context.Background(), 7, models.RobInput{OpeningRob: -1})
	require.Error(t, err)
	assert.Equal(t, []string{"UpdateRob"}, client.calls)
}

func TestSaveBunker(t *testing.T) {
	client := sampleClient()
	svc := NewService(client)
	ctx := context.Background()

	_, err := svc.SaveBunker(ctx, 7, 0, models.BunkerInput{At: "2025-01-01T05:00", Amount: 25})
	require.NoError(t, err)
	assert.Equal(t, "L", client.lastBunker.Unit)

	_, err = svc.SaveBunker(ctx, 7, 4, models.BunkerInput{At: "2025-01-01T05:00", Amount: 30, Remark: "top up"})
	require.NoError(t, err)

	_, err = svc.SaveBunker(ctx, 7, 0, models.BunkerInput{At: "2025-01-01T05:00", Amount: 0})
	require.Error(t, err)

	_, err = svc.DeleteBunker(ctx, 7, 4)
	require.NoError(t, err)

	assert.Equal(t, []string{"CreateBunker", "UpdateBunker", "DeleteBunker"}, client.calls)
	assert.Equal(t, 3, client.loads)
}

func TestList_TagsVesselName(t *testing.T) {
	client := sampleClient()
	client.voyages = []models.Voyage{{ID: 1}, {ID: 2}}

	voyages, err := NewService(client).List(context.Background(), models.Vessel{ID: 3, Name: "Sea Star"}, models.VoyageFilter{Year: 2025})
	require.NoError(t, err)
	require.Len(t, voyages, 2)
	assert.Equal(t, "Sea Star", voyages[1].VesselName)
}

func TestCreate_SendsCreateFieldsOnly(t *testing.T) {
	client := sampleClient()
	end := "2025-02-01T00:00"
	err := NewService(client).Create(context.Background(), 3, models.VoyageInput{
		VoyNo: "V-9", StartAt: "2025-01-20T00:00", EndAt: &end, PostingMonth: 1, PostingYear: 2025, Status: models.VoyageClosed,
	})
	require.NoError(t, err)
	assert.Nil(t, client.lastVoyage.EndAt)
	assert.Empty(t, client.lastVoyage.Status)
}

func TestUpdate_ClearedEndSentAsNull(t *testing.T) {
	client := sampleClient()
	empty := ""
	err := NewService(client).Update(context.Background(), 7, models.VoyageInput{
		VoyNo: "V-7", StartAt: "2025-01-01T00:00", EndAt: &empty, PostingMonth: 1, PostingYear: 2025,
	})
	require.NoError(t, err)
	assert.Nil(t, client.lastVoyage.EndAt)
}

func TestToggleStatus(t *testing.T) {
	client := sampleClient()
	svc := NewService(client)
	ctx := context.Background()

	status, err := svc.ToggleStatus(ctx, models.Voyage{ID: 7, Status: models.VoyageOpen})
	require.Error(t, err)
	assert.Equal(t, models.VoyageOpen, status)
	assert.Empty(t, client.calls)

	status, err = svc.ToggleStatus(ctx, models.Voyage{ID: 7, Status: models.VoyageOpen, EndAt: "2025-01-03T00:00"})
	require.NoError(t, err)
	assert.Equal(t, models.VoyageClosed, status)
	assert.Equal(t, models.VoyageClosed, client.lastStatus)

	status, err = svc.ToggleStatus(ctx, models.Voyage{ID: 7, Status: "closed"})
	require.NoError(t, err)
	assert.Equal(t, models.VoyageOpen, status)
}

func TestDelete(t *testing.T) {
	client := sampleClient()
	require.NoError(t, NewService(client).Delete(context.Background(), 7))
	assert.Equal(t, []string{"DeleteVoyage"}, client.calls)
}
