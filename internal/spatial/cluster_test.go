package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/spatial"
)

func floatp(v float64) *float64 { return &v }

// fieldAt places a field at a given north offset in kilometers from a
// reference latitude. One degree of latitude is ~111.19 km at the 6371
// km earth radius.
func fieldAt(id string, northKm float64) models.Field {
	const kmPerDegLat = spatial.EarthRadiusKm * 3.141592653589793 / 180
	return models.Field{
		ID:   id,
		Name: id,
		Lat:  floatp(50.0 + northKm/kmPerDegLat),
		Lon:  floatp(8.0),
	}
}

func TestHaversineDistanceKm(t *testing.T) {
	a := fieldAt("a", 0)
	b := fieldAt("b", 1.5)
	d := spatial.HaversineDistanceKm(*a.Lat, *a.Lon, *b.Lat, *b.Lon)
	assert.InDelta(t, 1.5, d, 0.01)

	assert.InDelta(t, 1500, spatial.HaversineDistance(*a.Lat, *a.Lon, *b.Lat, *b.Lon), 10)
}

func TestClusterFields_ChainLinkage(t *testing.T) {
	// 0 km, 1.5 km and 3 km along a line with a 2 km radius: ends are
	// 3 km apart but chained through the middle field, so all three
	// land in one cluster.
	fields := []models.Field{
		fieldAt("f0", 0),
		fieldAt("f1", 1.5),
		fieldAt("f2", 3),
	}

	clusters := spatial.ClusterFields(fields, 2)
	require.Len(t, clusters, 1)
	assert.ElementsMatch(t, []string{"f0", "f1", "f2"}, clusters[0].MemberIDs)
	assert.Equal(t, "f0", clusters[0].Representative.ID)
	assert.Equal(t, "f0", clusters[0].ID)
}

func TestClusterFields_BeyondRadiusSplits(t *testing.T) {
	fields := []models.Field{
		fieldAt("f0", 0),
		fieldAt("f1", 3),
	}

	clusters := spatial.ClusterFields(fields, 2)
	require.Len(t, clusters, 2)
	assert.Equal(t, []string{"f0"}, clusters[0].MemberIDs)
	assert.Equal(t, []string{"f1"}, clusters[1].MemberIDs)
}

func TestClusterFields_Partition(t *testing.T) {
	fields := []models.Field{
		fieldAt("a", 0),
		fieldAt("b", 1),
		fieldAt("c", 10),
		fieldAt("d", 10.5),
		{ID: "e", Name: "no center"},
		fieldAt("f", 40),
	}

	clusters := spatial.ClusterFields(fields, 2)

	seen := make(map[string]int)
	for _, c := range clusters {
		for _, id := range c.MemberIDs {
			seen[id]++
		}
	}
	require.Len(t, seen, len(fields), "every field appears in the output")
	for id, n := range seen {
		assert.Equal(t, 1, n, "field %s must belong to exactly one cluster", id)
	}
}

func TestClusterFields_LocationlessAlwaysSingleton(t *testing.T) {
	fields := []models.Field{
		fieldAt("a", 0),
		{ID: "ghost", Name: "no center"},
		fieldAt("b", 0.1),
	}

	clusters := spatial.ClusterFields(fields, 1000)
	require.Len(t, clusters, 2)

	var ghost *models.FieldCluster
	for i := range clusters {
		if clusters[i].ID == "ghost" {
			ghost = &clusters[i]
		}
	}
	require.NotNil(t, ghost)
	assert.Equal(t, []string{"ghost"}, ghost.MemberIDs)
	assert.Nil(t, ghost.CentroidLat)
	assert.Nil(t, ghost.CentroidLon)
}

func TestClusterFields_RepresentativeIsSeed(t *testing.T) {
	fields := []models.Field{
		fieldAt("b", 1),
		fieldAt("a", 0),
	}

	clusters := spatial.ClusterFields(fields, 2)
	require.Len(t, clusters, 1)
	assert.Equal(t, "b", clusters[0].Representative.ID, "seed is the first field in input order")
}

func TestClusterFields_CentroidOfMembers(t *testing.T) {
	fields := []models.Field{
		fieldAt("a", 0),
		fieldAt("b", 1),
	}

	clusters := spatial.ClusterFields(fields, 2)
	require.Len(t, clusters, 1)
	require.NotNil(t, clusters[0].CentroidLat)
	assert.InDelta(t, (*fields[0].Lat+*fields[1].Lat)/2, *clusters[0].CentroidLat, 1e-9)
	assert.InDelta(t, 8.0, *clusters[0].CentroidLon, 1e-9)
}

func TestClusterFields_Empty(t *testing.T) {
	assert.Empty(t, spatial.ClusterFields(nil, 2))
}
