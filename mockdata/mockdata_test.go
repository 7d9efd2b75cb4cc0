package mockdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depin-monitor/db"
	"depin-monitor/repository"
)

func TestSeed(t *testing.T) {
	ldb, err := db.NewMemLevelDB()
	require.NoError(t, err)
	defer ldb.Close()
	repo := repository.NewRepository(ldb)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(repo, now))

	nodes, err := repo.GetAllNodes()
	require.NoError(t, err)
	assert.Len(t, nodes, 5)

	opps, err := repo.GetAllOpportunities()
	require.NoError(t, err)
	require.Len(t, opps, 2)
	assert.True(t, opps[0].StartTime.Equal(now.Add(-30*time.Minute)))

	earnings, err := repo.GetAllEarnings()
	require.NoError(t, err)
	require.Len(t, earnings, 3)
	assert.Equal(t, "2025-06-01", earnings[0].Date)

	protocols, err := repo.GetAllProtocols()
	require.NoError(t, err)
	assert.Len(t, protocols, 4)
}

func TestOpportunitiesReferenceKnownNodes(t *testing.T) {
	now := time.Now()
	known := map[string]bool{}
	for _, n := range Nodes(now) {
		known[n.NodeID] = true
	}
	for _, o := range Opportunities(now) {
		assert.True(t, known[o.NodeID], "opportunity %s points at unknown node %s", o.OpportunityID, o.NodeID)
	}
}

func TestSeed_ReplacesPreviousData(t *testing.T) {
	ldb, err := db.NewMemLevelDB()
	require.NoError(t, err)
	defer ldb.Close()
	repo := repository.NewRepository(ldb)

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(repo, first))

	stale := Nodes(first)[0]
	stale.NodeID = "node-stale"
	require.NoError(t, repo.PutNode(&stale))

	second := first.Add(24 * time.Hour)
	require.NoError(t, Seed(repo, second))

	nodes, err := repo.GetAllNodes()
	require.NoError(t, err)
	require.Len(t, nodes, 5)
	for _, n := range nodes {
		assert.NotEqual(t, "node-stale", n.NodeID)
	}

	earnings, err := repo.GetAllEarnings()
	require.NoError(t, err)
	require.Len(t, earnings, 3)
	assert.Equal(t, "2025-06-02", earnings[0].Date)
}
