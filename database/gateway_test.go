package database

import (
	"context"
	"testing"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/config"
	"github.com/devsparksuporte-web/PotencialCameras/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClock hands out the same instant until advanced.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Initialize(config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     "file::memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func sampleForm(name, store string, status models.Status) models.CameraFormData {
	return models.CameraFormData{
		Name:                name,
		IP:                  "10.0.0.1",
		Serial:              "S-" + name,
		Location:            "Door",
		Store:               store,
		Status:              status,
		ChannelsTotal:       4,
		ChannelsWorking:     3,
		ChannelsBlackscreen: 1,
	}
}

func TestInitialize_UnknownDriver(t *testing.T) {
	_, err := Initialize(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestGormGateway_InsertAndGet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gw := NewGormGateway(newTestDB(t), WithClock(clock.Now))
	ctx := context.Background()

	id, err := gw.Insert(ctx, sampleForm("Cam1", "StoreA", models.StatusOnline))
	require.NoError(t, err)
	assert.NotZero(t, id)

	camera, err := gw.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, camera)

	assert.Equal(t, id, camera.ID)
	assert.Equal(t, "Cam1", camera.Name)
	assert.Equal(t, "10.0.0.1", camera.IP)
	assert.Equal(t, models.StatusOnline, camera.Status)
	assert.Equal(t, models.Channels{Total: 4, Working: 3, Blackscreen: 1}, camera.Channels())
	assert.True(t, camera.CreatedAt.Equal(camera.UpdatedAt), "created_at == updated_at on insert")
	assert.True(t, camera.CreatedAt.Equal(clock.now))
}

func TestGormGateway_InsertIssuesFreshIDs(t *testing.T) {
	gw := NewGormGateway(newTestDB(t))
	ctx := context.Background()

	seen := map[uint]bool{}
	for i := 0; i < 5; i++ {
		id, err := gw.Insert(ctx, sampleForm("Cam", "StoreA", models.StatusOnline))
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true

		_, err = gw.DeleteByID(ctx, id)
		require.NoError(t, err)
	}
}

func TestGormGateway_GetByIDMissing(t *testing.T) {
	gw := NewGormGateway(newTestDB(t))

	camera, err := gw.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, camera)
}

func TestGormGateway_ListAllNewestFirst(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gw := NewGormGateway(newTestDB(t), WithClock(clock.Now))
	ctx := context.Background()

	cameras, err := gw.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cameras)
	assert.Empty(t, cameras)

	var ids []uint
	for _, name := range []string{"first", "second", "third"} {
		id, err := gw.Insert(ctx, sampleForm(name, "StoreA", models.StatusOnline))
		require.NoError(t, err)
		ids = append(ids, id)
		clock.Advance(time.Second)
	}
	// same instant as "third": ties fall back to id
	id, err := gw.Insert(ctx, sampleForm("fourth", "StoreA", models.StatusOnline))
	require.NoError(t, err)
	ids = append(ids, id)

	cameras, err = gw.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cameras, 4)

	var names []string
	for _, c := range cameras {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"fourth", "third", "second", "first"}, names)
}

func TestGormGateway_UpdateByIDOnlyNamedFields(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gw := NewGormGateway(newTestDB(t), WithClock(clock.Now))
	ctx := context.Background()

	id, err := gw.Insert(ctx, sampleForm("Cam1", "StoreA", models.StatusOnline))
	require.NoError(t, err)
	before, err := gw.GetByID(ctx, id)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	affected, err := gw.UpdateByID(ctx, id, []models.FieldUpdate{
		{Column: "status", Value: "offline"},
		{Column: "channels_working", Value: 0},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	after, err := gw.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, after)

	assert.Equal(t, models.StatusOffline, after.Status)
	assert.Equal(t, 0, after.ChannelsWorking)

	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.IP, after.IP)
	assert.Equal(t, before.Serial, after.Serial)
	assert.Equal(t, before.Location, after.Location)
	assert.Equal(t, before.Store, after.Store)
	assert.Equal(t, before.ChannelsTotal, after.ChannelsTotal)
	assert.Equal(t, before.ChannelsBlackscreen, after.ChannelsBlackscreen)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	assert.True(t, after.UpdatedAt.Equal(clock.now))
}

func TestGormGateway_UpdatedAtStrictlyIncreasesWithStalledClock(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	gw := NewGormGateway(newTestDB(t), WithClock(clock.Now))
	ctx := context.Background()

	id, err := gw.Insert(ctx, sampleForm("Cam1", "StoreA", models.StatusOnline))
	require.NoError(t, err)

	previous, err := gw.GetByID(ctx, id)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := gw.UpdateByID(ctx, id, []models.FieldUpdate{{Column: "name", Value: "renamed"}})
		require.NoError(t, err)

		current, err := gw.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, current.UpdatedAt.After(previous.UpdatedAt), "update %d", i)
		previous = current
	}
}

func TestGormGateway_UpdateByIDMissingRow(t *testing.T) {
	gw := NewGormGateway(newTestDB(t))

	affected, err := gw.UpdateByID(context.Background(), 404, []models.FieldUpdate{{Column: "name", Value: "x"}})
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestGormGateway_UpdateByIDRejectsUnknownColumns(t *testing.T) {
	gw := NewGormGateway(newTestDB(t))
	ctx := context.Background()

	id, err := gw.Insert(ctx, sampleForm("Cam1", "StoreA", models.StatusOnline))
	require.NoError(t, err)

	_, err = gw.UpdateByID(ctx, id, []models.FieldUpdate{{Column: "id", Value: 9}})
	assert.Error(t, err)

	_, err = gw.UpdateByID(ctx, id, []models.FieldUpdate{{Column: "name = 'x'; --", Value: 1}})
	assert.Error(t, err)

	_, err = gw.UpdateByID(ctx, id, nil)
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestGormGateway_DeleteByID(t *testing.T) {
	gw := NewGormGateway(newTestDB(t))
	ctx := context.Background()

	id, err := gw.Insert(ctx, sampleForm("Cam1", "StoreA", models.StatusOnline))
	require.NoError(t, err)

	affected, err := gw.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	camera, err := gw.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, camera, "delete is permanent")

	affected, err = gw.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
