package dashboard

import (
	"fmt"

	"depin-monitor/health"
	"depin-monitor/models"
)

type AlertKind string

const (
	AlertOpportunity AlertKind = "opportunity"
	AlertHealth      AlertKind = "health"
	AlertMaintenance AlertKind = "maintenance"
)

// AlertVariant selects the banner style in the UI.
type AlertVariant string

const (
	VariantSuccess AlertVariant = "success"
	VariantWarning AlertVariant = "warning"
	VariantError   AlertVariant = "error"
)

type Alert struct {
	Kind          AlertKind    `json:"kind"`
	Variant       AlertVariant `json:"variant"`
	Title         string       `json:"title"`
	Message       string       `json:"message"`
	NodeID        string       `json:"node_id"`
	OpportunityID string       `json:"opportunity_id,omitempty"`
}

// Alerts lists active opportunities first, then nodes in the poor health
// tier, then nodes under maintenance.
func (s *Service) Alerts() ([]Alert, error) {
	now := s.clock()

	opps, err := s.activeOpportunities(now)
	if err != nil {
		return nil, err
	}
	nodes, err := s.repo.GetAllNodes()
	if err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(opps)+len(nodes))
	for _, o := range opps {
		msg := o.Description
		if o.Node != nil {
			msg = fmt.Sprintf("%s at %s node", o.Description, o.Node.Type)
		}
		alerts = append(alerts, Alert{
			Kind:          AlertOpportunity,
			Variant:       VariantSuccess,
			Title:         o.Title,
			Message:       msg,
			NodeID:        o.NodeID,
			OpportunityID: o.OpportunityID,
		})
	}

	for _, n := range nodes {
		if s.thresholds.Classify(n.HealthScore) != health.TierPoor {
			continue
		}
		alerts = append(alerts, Alert{
			Kind:    AlertHealth,
			Variant: VariantError,
			Title:   "Low health score",
			Message: fmt.Sprintf("%s %s health score is %d%%", n.Type.Label(), n.NodeID, n.HealthScore),
			NodeID:  n.NodeID,
		})
	}

	for _, n := range nodes {
		if n.Status != models.NodeStatusMaintenance {
			continue
		}
		alerts = append(alerts, Alert{
			Kind:    AlertMaintenance,
			Variant: VariantWarning,
			Title:   "Node under maintenance",
			Message: fmt.Sprintf("%s %s is under maintenance", n.Type.Label(), n.NodeID),
			NodeID:  n.NodeID,
		})
	}

	return alerts, nil
}
