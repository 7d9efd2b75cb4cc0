package models

import "time"

type OpportunityType string

const (
	OpportunityBonus OpportunityType = "bonus"
	OpportunitySurge OpportunityType = "surge"
	OpportunityEvent OpportunityType = "event"
)

// OpportunityWindow is a period during which a node pays boosted rewards.
// Whether it is active is derived from the clock, never stored.
type OpportunityWindow struct {
	OpportunityID    string          `json:"opportunity_id" validate:"required"`
	NodeID           string          `json:"node_id" validate:"required"`
	ProtocolID       string          `json:"protocol_id"`
	StartTime        time.Time       `json:"start_time" validate:"required"`
	EndTime          time.Time       `json:"end_time" validate:"required,gtfield=StartTime"`
	RewardMultiplier float64         `json:"reward_multiplier" validate:"gt=0"`
	Type             OpportunityType `json:"type" validate:"omitempty,oneof=bonus surge event"`
	Description      string          `json:"description"`
}
