package models

// Protocol is a DePIN network nodes earn rewards on.
type Protocol struct {
	ProtocolID string `json:"protocol_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	IconURL    string `json:"icon_url"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
}

// EarningsReport is one day's earnings of a user on a protocol.
type EarningsReport struct {
	ReportID   string  `json:"report_id" validate:"required"`
	UserID     string  `json:"user_id" validate:"required"`
	ProtocolID string  `json:"protocol_id" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Amount     float64 `json:"amount" validate:"gte=0"`
	Currency   string  `json:"currency" validate:"required"`
}
