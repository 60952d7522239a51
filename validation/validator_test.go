package validation

import (
	"errors"
	"testing"

	"github.com/devsparksuporte-web/PotencialCameras/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCamera = `{
	"name": "Cam1",
	"ip": "10.0.0.1",
	"serial": "S1",
	"location": "Door",
	"store": "StoreA",
	"status": "online",
	"channels_total": 4,
	"channels_working": 4,
	"channels_blackscreen": 0
}`

func TestValidateCreate_Valid(t *testing.T) {
	form, err := ValidateCreate([]byte(validCamera))
	require.NoError(t, err)

	assert.Equal(t, models.CameraFormData{
		Name:                "Cam1",
		IP:                  "10.0.0.1",
		Serial:              "S1",
		Location:            "Door",
		Store:               "StoreA",
		Status:              models.StatusOnline,
		ChannelsTotal:       4,
		ChannelsWorking:     4,
		ChannelsBlackscreen: 0,
	}, form)
}

func TestValidateCreate_IgnoresUnknownAndServerFields(t *testing.T) {
	raw := `{"id": 99, "created_at": "yesterday", "extra": true,
		"name": "Cam1", "ip": "10.0.0.1", "serial": "S1", "location": "Door", "store": "StoreA",
		"status": "reparo", "channels_total": 0, "channels_working": 0, "channels_blackscreen": 0}`

	form, err := ValidateCreate([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, models.StatusReparo, form.Status)
}

func TestValidateCreate_CollectsEveryViolation(t *testing.T) {
	raw := `{"name": "", "ip": 10, "serial": "S1", "location": "Door",
		"status": "broken", "channels_total": -1, "channels_working": 2.5, "channels_blackscreen": "0"}`

	_, err := ValidateCreate([]byte(raw))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)

	got := map[string]string{}
	for _, v := range verr.Violations {
		got[v.Field] = v.Message
	}

	assert.Equal(t, map[string]string{
		"name":                 "must not be empty",
		"ip":                   "must be a string",
		"store":                "is required",
		"status":               "must be one of online, offline, aviso, erro, reparo",
		"channels_total":       "must be greater than or equal to 0",
		"channels_working":     "must be an integer",
		"channels_blackscreen": "must be an integer",
	}, got)

	// reported in column order
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Equal(t, []string{"name", "ip", "store", "status", "channels_total", "channels_working", "channels_blackscreen"}, fields)
}

func TestValidateCreate_NonObjectBody(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `"camera"`, `{bad json`} {
		_, err := ValidateCreate([]byte(raw))

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "body %q", raw)
		assert.True(t, verr.Has("body"), "body %q", raw)
	}
}

func TestValidateCreate_NullIsNotAString(t *testing.T) {
	raw := `{"name": null, "ip": "10.0.0.1", "serial": "S1", "location": "Door", "store": "StoreA",
		"status": "online", "channels_total": null, "channels_working": 0, "channels_blackscreen": 0}`

	_, err := ValidateCreate([]byte(raw))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("name"))
	assert.True(t, verr.Has("channels_total"))
}

func TestValidateCreate_WholeFloatIsInteger(t *testing.T) {
	raw := `{"name": "Cam1", "ip": "10.0.0.1", "serial": "S1", "location": "Door", "store": "StoreA",
		"status": "online", "channels_total": 4.0, "channels_working": 1e1, "channels_blackscreen": 0}`

	form, err := ValidateCreate([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 4, form.ChannelsTotal)
	assert.Equal(t, 10, form.ChannelsWorking)
}

func TestValidateCreate_NoCrossFieldChannelRule(t *testing.T) {
	raw := `{"name": "Cam1", "ip": "10.0.0.1", "serial": "S1", "location": "Door", "store": "StoreA",
		"status": "aviso", "channels_total": 1, "channels_working": 5, "channels_blackscreen": 5}`

	_, err := ValidateCreate([]byte(raw))
	assert.NoError(t, err)
}

func TestValidateUpdate_Partial(t *testing.T) {
	patch, err := ValidateUpdate([]byte(`{"status": "offline", "channels_blackscreen": 0}`))
	require.NoError(t, err)

	require.NotNil(t, patch.Status)
	assert.Equal(t, models.StatusOffline, *patch.Status)
	require.NotNil(t, patch.ChannelsBlackscreen)
	assert.Equal(t, 0, *patch.ChannelsBlackscreen)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.ChannelsTotal)

	assert.Equal(t, []models.FieldUpdate{
		{Column: "status", Value: "offline"},
		{Column: "channels_blackscreen", Value: 0},
	}, patch.Fields())
}

func TestValidateUpdate_EmptyObject(t *testing.T) {
	patch, err := ValidateUpdate([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, patch.Empty())

	patch, err = ValidateUpdate([]byte(`{"id": 3, "updated_at": "now"}`))
	require.NoError(t, err)
	assert.True(t, patch.Empty())
}

func TestValidateUpdate_RejectsWholePatch(t *testing.T) {
	patch, err := ValidateUpdate([]byte(`{"name": "ok", "store": "", "channels_total": -2}`))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Has("name"))
	assert.True(t, verr.Has("store"))
	assert.True(t, verr.Has("channels_total"))
	assert.True(t, patch.Empty(), "no field may be partially accepted")
}

func TestValidateForm(t *testing.T) {
	assert.NoError(t, ValidateForm(models.CameraFormData{
		Name: "a", IP: "b", Serial: "c", Location: "d", Store: "e", Status: models.StatusErro,
	}))

	err := ValidateForm(models.CameraFormData{Name: "a", Status: "nope"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("ip"))
	assert.True(t, verr.Has("status"))
}
