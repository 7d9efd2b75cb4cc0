package proximity

import (
	"fmt"
	"sort"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depin-monitor/geo"
	"depin-monitor/models"
)

var center = geo.GeoPoint{Latitude: 37.7749, Longitude: -122.4194}

func node(id string, lat, lon float64) models.Node {
	return models.Node{NodeID: id, Location: geo.GeoPoint{Latitude: lat, Longitude: lon}}
}

func sampleNodes() []models.Node {
	return []models.Node{
		node("node-1", 37.7849, -122.4094),
		node("node-2", 37.7649, -122.4194),
		node("node-3", 37.7749, -122.4294),
		node("node-4", 37.7549, -122.4394),
		node("node-5", 37.7949, -122.3994),
	}
}

func ids(nodes []models.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.NodeID
	}
	return out
}

func TestRankByProximity_Order(t *testing.T) {
	got := RankByProximity(sampleNodes(), center)
	assert.Equal(t, []string{"node-3", "node-2", "node-1", "node-5", "node-4"}, ids(got))
}

func TestRankByProximity_DoesNotMutateInput(t *testing.T) {
	in := sampleNodes()
	before := append([]models.Node(nil), in...)

	_ = RankByProximity(in, center)

	assert.Equal(t, before, in)
}

func TestRankByProximity_Empty(t *testing.T) {
	assert.Empty(t, RankByProximity(nil, center))
	assert.Empty(t, RankByProximity([]models.Node{}, center))
}

func TestRankByProximity_TiesKeepInputOrder(t *testing.T) {
	in := []models.Node{
		node("far", 38.0, -122.0),
		node("twin-a", 37.78, -122.42),
		node("twin-b", 37.78, -122.42),
		node("twin-c", 37.78, -122.42),
	}
	got := RankByProximity(in, center)
	assert.Equal(t, []string{"twin-a", "twin-b", "twin-c", "far"}, ids(got))
}

func TestRank_NilReferenceKeepsInputOrder(t *testing.T) {
	ranked := Rank(sampleNodes(), nil)
	require.Len(t, ranked, 5)
	for i, r := range ranked {
		assert.Equal(t, fmt.Sprintf("node-%d", i+1), r.Node.NodeID)
		assert.False(t, r.HasDistance)
		assert.Zero(t, r.DistanceMeters)
	}
}

func TestRank_CarriesDistance(t *testing.T) {
	ranked := Rank(sampleNodes(), &center)
	require.Len(t, ranked, 5)
	assert.True(t, ranked[0].HasDistance)
	assert.InDelta(t, 878.9, ranked[0].DistanceMeters, 0.5)
}

func TestNearest(t *testing.T) {
	assert.Len(t, Nearest(sampleNodes(), &center, 2), 2)
	assert.Len(t, Nearest(sampleNodes(), &center, 0), 5)
	assert.Len(t, Nearest(sampleNodes(), &center, 10), 5)
	assert.Equal(t, "node-1", Nearest(sampleNodes(), nil, 1)[0].Node.NodeID)
}

func genPoint() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(-90, 90),
		gen.Float64Range(-180, 180),
	).Map(func(v []interface{}) geo.GeoPoint {
		return geo.GeoPoint{Latitude: v[0].(float64), Longitude: v[1].(float64)}
	})
}

// genNodes builds nodes whose ids record their input position. Every point is
// used twice so ties are always present.
func genNodes() gopter.Gen {
	return gen.SliceOf(genPoint()).Map(func(points []geo.GeoPoint) []models.Node {
		nodes := make([]models.Node, 0, 2*len(points))
		for _, p := range points {
			nodes = append(nodes, models.Node{Location: p})
		}
		for _, p := range points {
			nodes = append(nodes, models.Node{Location: p})
		}
		for i := range nodes {
			nodes[i].NodeID = strconv.Itoa(i)
		}
		return nodes
	})
}

func TestRankingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("output is a permutation of the input", prop.ForAll(
		func(nodes []models.Node, ref geo.GeoPoint) bool {
			got := ids(RankByProximity(nodes, ref))
			want := ids(nodes)
			sort.Strings(got)
			sort.Strings(want)
			return assert.ObjectsAreEqual(want, got)
		},
		genNodes(),
		genPoint(),
	))

	properties.Property("distances are non-decreasing", prop.ForAll(
		func(nodes []models.Node, ref geo.GeoPoint) bool {
			got := RankByProximity(nodes, ref)
			for i := 1; i < len(got); i++ {
				if geo.DistanceMeters(ref, got[i-1].Location) > geo.DistanceMeters(ref, got[i].Location) {
					return false
				}
			}
			return true
		},
		genNodes(),
		genPoint(),
	))

	properties.Property("equal distances keep input order", prop.ForAll(
		func(nodes []models.Node, ref geo.GeoPoint) bool {
			got := RankByProximity(nodes, ref)
			for i := 1; i < len(got); i++ {
				if geo.DistanceMeters(ref, got[i-1].Location) != geo.DistanceMeters(ref, got[i].Location) {
					continue
				}
				prev, _ := strconv.Atoi(got[i-1].NodeID)
				cur, _ := strconv.Atoi(got[i].NodeID)
				if prev > cur {
					return false
				}
			}
			return true
		},
		genNodes(),
		genPoint(),
	))

	properties.Property("ranking twice gives the same result", prop.ForAll(
		func(nodes []models.Node, ref geo.GeoPoint) bool {
			first := RankByProximity(nodes, ref)
			second := RankByProximity(nodes, ref)
			return assert.ObjectsAreEqual(first, second)
		},
		genNodes(),
		genPoint(),
	))

	properties.TestingRun(t)
}
