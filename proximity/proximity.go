// Package proximity orders nodes by great-circle distance from a reference point.
package proximity

import (
	"sort"

	"depin-monitor/geo"
	"depin-monitor/models"
)

// RankedNode pairs a node with its distance from the reference point.
// HasDistance is false when no reference point was available.
type RankedNode struct {
	Node           models.Node `json:"node"`
	DistanceMeters float64     `json:"distance_meters"`
	HasDistance    bool        `json:"has_distance"`
}

// RankByProximity returns a new slice with nodes ordered nearest first.
// Nodes at equal distance keep their input order. The input is not modified.
func RankByProximity(nodes []models.Node, reference geo.GeoPoint) []models.Node {
	ranked := Rank(nodes, &reference)
	out := make([]models.Node, len(ranked))
	for i, r := range ranked {
		out[i] = r.Node
	}
	return out
}

// Rank decorates each node with its distance from reference and sorts by it.
// A nil reference leaves the input order unchanged.
func Rank(nodes []models.Node, reference *geo.GeoPoint) []RankedNode {
	ranked := make([]RankedNode, len(nodes))
	for i, n := range nodes {
		ranked[i] = RankedNode{Node: n}
		if reference != nil {
			ranked[i].DistanceMeters = geo.DistanceMeters(*reference, n.Location)
			ranked[i].HasDistance = true
		}
	}
	if reference == nil {
		return ranked
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})
	return ranked
}

// Nearest returns at most limit ranked nodes. limit <= 0 returns all of them.
func Nearest(nodes []models.Node, reference *geo.GeoPoint, limit int) []RankedNode {
	ranked := Rank(nodes, reference)
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
