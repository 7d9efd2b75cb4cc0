// Package mockdata seeds the store with the static sample network shown by
// the dashboard. Timestamps are relative to the supplied clock reading.
package mockdata

import (
	"time"

	"depin-monitor/geo"
	"depin-monitor/models"
	"depin-monitor/repository"
)

// DefaultMapCenter is downtown San Francisco, where the sample nodes live.
var DefaultMapCenter = geo.GeoPoint{Latitude: 37.7749, Longitude: -122.4194}

func Protocols() []models.Protocol {
	return []models.Protocol{
		{ProtocolID: "helium", Name: "Helium", IconURL: "/icons/helium.svg", Color: "#00D4AA"},
		{ProtocolID: "hivemapper", Name: "Hivemapper", IconURL: "/icons/hivemapper.svg", Color: "#FFD700"},
		{ProtocolID: "render", Name: "Render", IconURL: "/icons/render.svg", Color: "#FF6B35"},
		{ProtocolID: "filecoin", Name: "Filecoin", IconURL: "/icons/filecoin.svg", Color: "#0090FF"},
	}
}

func Nodes(now time.Time) []models.Node {
	return []models.Node{
		{
			NodeID:      "node-1",
			Type:        models.NodeTypeWiFi,
			Location:    geo.GeoPoint{Latitude: 37.7849, Longitude: -122.4094},
			Status:      models.NodeStatusActive,
			HealthScore: 95,
			LastUpdated: now.Add(-5 * time.Minute),
			ProtocolID:  "helium",
			RewardRate:  0.25,
			Uptime:      99.8,
		},
		{
			NodeID:      "node-2",
			Type:        models.NodeTypeStorage,
			Location:    geo.GeoPoint{Latitude: 37.7649, Longitude: -122.4194},
			Status:      models.NodeStatusActive,
			HealthScore: 87,
			LastUpdated: now.Add(-10 * time.Minute),
			ProtocolID:  "filecoin",
			RewardRate:  0.18,
			Uptime:      98.5,
		},
		{
			NodeID:      "node-3",
			Type:        models.NodeTypeCompute,
			Location:    geo.GeoPoint{Latitude: 37.7749, Longitude: -122.4294},
			Status:      models.NodeStatusActive,
			HealthScore: 92,
			LastUpdated: now.Add(-3 * time.Minute),
			ProtocolID:  "render",
			RewardRate:  0.32,
			Uptime:      99.2,
		},
		{
			NodeID:      "node-4",
			Type:        models.NodeTypeSensor,
			Location:    geo.GeoPoint{Latitude: 37.7549, Longitude: -122.4394},
			Status:      models.NodeStatusMaintenance,
			HealthScore: 45,
			LastUpdated: now.Add(-time.Hour),
			ProtocolID:  "hivemapper",
			RewardRate:  0.12,
			Uptime:      85.3,
		},
		{
			NodeID:      "node-5",
			Type:        models.NodeTypeWiFi,
			Location:    geo.GeoPoint{Latitude: 37.7949, Longitude: -122.3994},
			Status:      models.NodeStatusActive,
			HealthScore: 78,
			LastUpdated: now.Add(-15 * time.Minute),
			ProtocolID:  "helium",
			RewardRate:  0.21,
			Uptime:      96.7,
		},
	}
}

func Opportunities(now time.Time) []models.OpportunityWindow {
	return []models.OpportunityWindow{
		{
			OpportunityID:    "opp-1",
			NodeID:           "node-1",
			ProtocolID:       "helium",
			StartTime:        now.Add(-30 * time.Minute),
			EndTime:          now.Add(time.Hour),
			RewardMultiplier: 2.5,
			Type:             models.OpportunitySurge,
			Description:      "High demand period - 2.5x rewards!",
		},
		{
			OpportunityID:    "opp-2",
			NodeID:           "node-3",
			ProtocolID:       "render",
			StartTime:        now.Add(30 * time.Minute),
			EndTime:          now.Add(2 * time.Hour),
			RewardMultiplier: 1.8,
			Type:             models.OpportunityBonus,
			Description:      "Weekend bonus event starting soon!",
		},
	}
}

func Earnings(now time.Time) []models.EarningsReport {
	day := now.UTC().Format(time.DateOnly)
	return []models.EarningsReport{
		{ReportID: "earn-1", UserID: "user-1", ProtocolID: "helium", Date: day, Amount: 12.45, Currency: "HNT"},
		{ReportID: "earn-2", UserID: "user-1", ProtocolID: "filecoin", Date: day, Amount: 8.32, Currency: "FIL"},
		{ReportID: "earn-3", UserID: "user-1", ProtocolID: "render", Date: day, Amount: 15.67, Currency: "RNDR"},
	}
}

// Seed replaces whatever repo holds with the whole sample network.
func Seed(repo repository.RepositoryInterface, now time.Time) error {
	if err := repo.Clear(); err != nil {
		return err
	}
	for _, p := range Protocols() {
		if err := repo.PutProtocol(&p); err != nil {
			return err
		}
	}
	for _, n := range Nodes(now) {
		if err := repo.PutNode(&n); err != nil {
			return err
		}
	}
	for _, o := range Opportunities(now) {
		if err := repo.PutOpportunity(&o); err != nil {
			return err
		}
	}
	for _, e := range Earnings(now) {
		if err := repo.PutEarnings(&e); err != nil {
			return err
		}
	}
	return nil
}
