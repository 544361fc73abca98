package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/spatial"
)

// nearbyLat returns a latitude offset north of 50 degrees by km.
func nearbyLat(km float64) *float64 {
	const kmPerDegLat = spatial.EarthRadiusKm * 3.141592653589793 / 180
	return floatp(50.0 + km/kmPerDegLat)
}

func newWeatherEnv(t *testing.T) (*testEnv, *WeatherService) {
	env := newTestEnv(t)
	return env, NewWeatherService(env.fields, env.weather)
}

func TestWeatherService_TargetsOnePerCluster(t *testing.T) {
	env, svc := newWeatherEnv(t)

	// Two clustered fields, one distant field, one locationless field.
	env.mustCreateField(t, "a", "Alpha", nearbyLat(0), floatp(8))
	env.mustCreateField(t, "b", "Beta", nearbyLat(1), floatp(8))
	env.mustCreateField(t, "c", "Charlie", nearbyLat(100), floatp(8))
	env.mustCreateField(t, "d", "Delta", nil, nil)

	targets, err := svc.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 3)

	byID := make(map[string]models.WeatherTarget)
	for _, tgt := range targets {
		byID[tgt.FieldID] = tgt
	}
	assert.ElementsMatch(t, []string{"a", "b"}, byID["a"].MemberIDs)
	assert.Equal(t, []string{"c"}, byID["c"].MemberIDs)
	assert.Equal(t, []string{"d"}, byID["d"].MemberIDs)
	assert.Nil(t, byID["d"].Lat, "locationless target carries no coordinates")
}

func TestWeatherService_BroadcastRead(t *testing.T) {
	env, svc := newWeatherEnv(t)

	env.mustCreateField(t, "a", "Alpha", nearbyLat(0), floatp(8))
	env.mustCreateField(t, "b", "Beta", nearbyLat(1), floatp(8))

	// Collector pushes against the representative (field list is name
	// ordered, so "a" seeds the cluster).
	ok, err := svc.Ingest(models.WeatherObservation{
		FieldID: "a", ObsDate: "2024-05-01", TempMaxC: floatp(19),
	})
	require.NoError(t, err)
	require.True(t, ok)

	// Every member reads the representative's observations.
	for _, fieldID := range []string{"a", "b"} {
		weather, err := svc.ForField(fieldID, "", "")
		require.NoError(t, err)
		require.NotNil(t, weather, "field %s", fieldID)
		assert.Equal(t, "a", weather.RepresentativeID)
		require.Len(t, weather.Observations, 1)
		assert.Equal(t, "2024-05-01", weather.Observations[0].ObsDate)
	}
}

func TestWeatherService_IngestUnknownField(t *testing.T) {
	_, svc := newWeatherEnv(t)

	ok, err := svc.Ingest(models.WeatherObservation{FieldID: "ghost", ObsDate: "2024-05-01"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWeatherService_ForFieldUnknown(t *testing.T) {
	_, svc := newWeatherEnv(t)

	weather, err := svc.ForField("ghost", "", "")
	require.NoError(t, err)
	assert.Nil(t, weather)
}
