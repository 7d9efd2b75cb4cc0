package models

import (
	"time"

	"depin-monitor/geo"
)

type NodeType string

const (
	NodeTypeWiFi    NodeType = "wifi"
	NodeTypeStorage NodeType = "storage"
	NodeTypeCompute NodeType = "compute"
	NodeTypeSensor  NodeType = "sensor"
)

var nodeTypeLabels = map[NodeType]string{
	NodeTypeWiFi:    "WiFi Hotspot",
	NodeTypeStorage: "Storage Node",
	NodeTypeCompute: "Compute Node",
	NodeTypeSensor:  "Sensor Node",
}

// Label returns the human readable name of the node type.
func (t NodeType) Label() string {
	if l, ok := nodeTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

type NodeStatus string

const (
	NodeStatusActive      NodeStatus = "active"
	NodeStatusInactive    NodeStatus = "inactive"
	NodeStatusMaintenance NodeStatus = "maintenance"
)

// Node is a single piece of DePIN hardware as reported by the data source.
type Node struct {
	NodeID      string       `json:"node_id" validate:"required"`                                  // unique id
	Type        NodeType     `json:"type" validate:"required,oneof=wifi storage compute sensor"`   // hardware category
	Location    geo.GeoPoint `json:"location"`                                                     // where the node is deployed
	Status      NodeStatus   `json:"status" validate:"required,oneof=active inactive maintenance"` // operational state
	HealthScore int          `json:"health_score" validate:"gte=0,lte=100"`                        // 0-100
	LastUpdated time.Time    `json:"last_updated" validate:"required"`                             // last report from the node
	ProtocolID  string       `json:"protocol_id" validate:"required"`                              // network the node earns on
	RewardRate  float64      `json:"reward_rate" validate:"gte=0"`                                 // tokens per hour
	Uptime      float64      `json:"uptime" validate:"gte=0,lte=100"`                              // percent
}
