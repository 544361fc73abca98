package spatial

import (
	"github.com/croftview/fieldops-backend-go/internal/models"
)

// DefaultClusterRadiusKm is the fixed linkage radius used for weather
// sharing: fields connected by a chain of pairwise distances within
// this radius share one weather lookup.
const DefaultClusterRadiusKm = 5.0

// ClusterFields partitions fields into single-linkage connectivity
// clusters under radiusKm: two fields share a cluster iff a chain of
// pairwise distances each <= radiusKm links them. A member may
// therefore sit farther than radiusKm from another member of its own
// cluster; that is the intended linkage semantics, not a defect.
//
// Fields without a resolvable center are never merged geometrically;
// each becomes a singleton cluster keyed by its own id. Each cluster's
// representative is the first field that entered it (the BFS seed), and
// the cluster id is the representative's field id. Clusters are emitted
// in input order of their seeds, members in visit order; the result is
// always a partition of the input.
//
// O(n^2) distance checks per expansion; fine at tens to low hundreds of
// fields. A grid or k-d tree could replace the scan without changing
// the contract.
func ClusterFields(fields []models.Field, radiusKm float64) []models.FieldCluster {
	assigned := make([]bool, len(fields))
	clusters := make([]models.FieldCluster, 0, len(fields))

	for seed := range fields {
		if assigned[seed] {
			continue
		}
		assigned[seed] = true

		if !fields[seed].HasCenter() {
			clusters = append(clusters, models.FieldCluster{
				ID:             fields[seed].ID,
				Representative: fields[seed],
				MemberIDs:      []string{fields[seed].ID},
			})
			continue
		}

		members := []int{seed}
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for cand := range fields {
				if assigned[cand] || !fields[cand].HasCenter() {
					continue
				}
				d := HaversineDistanceKm(
					*fields[cur].Lat, *fields[cur].Lon,
					*fields[cand].Lat, *fields[cand].Lon,
				)
				if d <= radiusKm {
					assigned[cand] = true
					members = append(members, cand)
					queue = append(queue, cand)
				}
			}
		}

		cluster := models.FieldCluster{
			ID:             fields[seed].ID,
			Representative: fields[seed],
			MemberIDs:      make([]string, 0, len(members)),
		}
		var sumLat, sumLon float64
		for _, idx := range members {
			cluster.MemberIDs = append(cluster.MemberIDs, fields[idx].ID)
			sumLat += *fields[idx].Lat
			sumLon += *fields[idx].Lon
		}
		lat := sumLat / float64(len(members))
		lon := sumLon / float64(len(members))
		cluster.CentroidLat = &lat
		cluster.CentroidLon = &lon
		clusters = append(clusters, cluster)
	}

	return clusters
}
