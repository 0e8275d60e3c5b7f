// Package trace provides reorder-decision recording for policy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// ReorderRecord captures a single reorder policy consultation.
type ReorderRecord struct {
	Day        int     `json:"day"`
	Policy     string  `json:"policy"`
	Inventory  float64 `json:"inventory"` // on-hand after today's arrivals
	Projected  float64 `json:"projected"` // position compared against the reorder level
	Disrupted  bool    `json:"disrupted"`
	Ordered    bool    `json:"ordered"`
	Quantity   int     `json:"quantity,omitempty"`
	LeadTime   int     `json:"leadTime,omitempty"`
	ArrivalDay int     `json:"arrivalDay,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}
