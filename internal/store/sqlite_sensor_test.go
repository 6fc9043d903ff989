package store

import (
	"context"
	"testing"

	"github.com/lakewatch/lakewatch/internal/dataset"
	"github.com/lakewatch/lakewatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sensorSetup(t *testing.T) (*SQLiteSensorStore, *Station) {
	t.Helper()
	store := NewSQLiteSensorStore(testutil.NewTestDB(t))
	st := &Station{Name: "WAMO-12", Lake: "Lake Stechlin"}
	require.NoError(t, store.CreateStation(context.Background(), st))
	return store, st
}

func TestSensorStore_CreateAndFindStation(t *testing.T) {
	store, st := sensorSetup(t)

	fetched, err := store.FindStationByName(context.Background(), "WAMO-12")
	require.NoError(t, err)
	assert.Equal(t, st.ID, fetched.ID)
	assert.Equal(t, "Lake Stechlin", fetched.Lake)
	assert.False(t, fetched.CreatedAt.IsZero())
}

func TestSensorStore_FindStation_NotFound(t *testing.T) {
	store, _ := sensorSetup(t)

	_, err := store.FindStationByName(context.Background(), "WAMO-99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSensorStore_ListStations_SortedByName(t *testing.T) {
	store, _ := sensorSetup(t)
	ctx := context.Background()
	require.NoError(t, store.CreateStation(ctx, &Station{Name: "WAMO-03"}))

	stations, err := store.ListStations(ctx)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "WAMO-03", stations[0].Name)
	assert.Equal(t, "WAMO-12", stations[1].Name)
}

func TestSensorStore_InsertAndPivotReadings(t *testing.T) {
	store, st := sensorSetup(t)
	ctx := context.Background()

	n, err := store.InsertReadings(ctx, st.ID, testutil.WaterQualityTable(t))
	require.NoError(t, err)
	// 3 pH readings plus 2 dissolved oxygen readings; the gap is skipped.
	assert.Equal(t, 5, n)

	wide, err := store.FindByStation(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "dissolved_oxygen", "ph"}, wide.ColumnNames())
	assert.Equal(t, 3, wide.NumRows())

	do, ok := wide.Column("dissolved_oxygen")
	require.True(t, ok)
	assert.True(t, do.Values[1].IsMissing())
	v, isNum := do.Values[0].Float()
	require.True(t, isNum)
	assert.InDelta(t, 9.8, v, 1e-9)
}

func TestSensorStore_InsertReadings_RequiresDateColumn(t *testing.T) {
	store, st := sensorSetup(t)

	tbl, err := dataset.New([]dataset.Column{
		{Name: "ph", Values: []dataset.Value{dataset.Float(7.0)}},
	})
	require.NoError(t, err)

	_, err = store.InsertReadings(context.Background(), st.ID, tbl)
	assert.Error(t, err)
}

func TestSensorStore_FindByStation_EmptyStation(t *testing.T) {
	store, st := sensorSetup(t)

	wide, err := store.FindByStation(context.Background(), st.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, wide.NumRows())
}
