package models

// FieldCluster is one spatial cluster of fields. The representative is
// the first field that entered the cluster during construction and acts
// as the canonical key for shared external lookups (one weather query
// per cluster, broadcast to all members). Locationless fields always
// form singleton clusters and carry no centroid.
type FieldCluster struct {
	ID             string   `json:"id"`
	Representative Field    `json:"representative"`
	MemberIDs      []string `json:"memberIds"`
	CentroidLat    *float64 `json:"centroidLat,omitempty"`
	CentroidLon    *float64 `json:"centroidLon,omitempty"`
}
